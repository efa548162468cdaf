// Package linkbase holds helpers shared by the XLink linkbase parsers.
package linkbase

import "strings"

// BareID extracts the bare field identifier from an XLink locator href.
// Locators follow the "<document>#<prefix>_<ID>" convention, so
// "schema.xsd#tax_TGate" resolves to "TGate". Hrefs without a fragment or
// prefix resolve to their remaining text unchanged.
func BareID(href string) string {
	fragment := href
	if i := strings.LastIndexByte(href, '#'); i >= 0 {
		fragment = href[i+1:]
	}
	if i := strings.IndexByte(fragment, '_'); i >= 0 {
		return fragment[i+1:]
	}
	return fragment
}
