// Package labelparse reads the label linkbase artifact and resolves, per
// field, a short label and an optional verbose label.
package labelparse

import (
	"encoding/xml"
	"io"
	"io/fs"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/htmltext"
	"github.com/avitran/taxoform/internal/linkbase"
	"github.com/avitran/taxoform/internal/types"
)

// Recognized label roles. All other roles are ignored.
const (
	roleLabel   = "http://www.xbrl.org/2003/role/label"
	roleVerbose = "http://www.xbrl.org/2003/role/verboseLabel"
)

type labelLinkbase struct {
	Links []labelLink `xml:"labelLink"`
}

type labelLink struct {
	Locs   []locator  `xml:"loc"`
	Arcs   []labelArc `xml:"labelArc"`
	Labels []labelRes `xml:"label"`
}

type locator struct {
	Href  string `xml:"href,attr"`
	Label string `xml:"label,attr"`
}

type labelArc struct {
	From string `xml:"from,attr"`
	To   string `xml:"to,attr"`
}

type labelRes struct {
	Label string `xml:"label,attr"`
	Role  string `xml:"role,attr"`
	Body  string `xml:",innerxml"`
}

// ParseFS reads and parses the label artifact at name.
func ParseFS(fsys fs.FS, name string) (map[string]types.Labels, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Missing(name, err)
	}
	defer f.Close()
	labels, err := Parse(f)
	if err != nil {
		if load, ok := errors.AsLoad(err); ok && load.Artifact == "" {
			load.Artifact = name
		}
		return nil, err
	}
	return labels, nil
}

// Parse parses the label linkbase from r into a wire-id keyed label map.
// Resolution runs locator to arc to label element; label markup is stripped
// to plain text.
func Parse(r io.Reader) (map[string]types.Labels, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	var doc labelLinkbase
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Malformed("", err)
	}

	labels := make(map[string]types.Labels)
	for _, link := range doc.Links {
		resolveLink(link, labels)
	}
	return labels, nil
}

func resolveLink(link labelLink, out map[string]types.Labels) {
	wireIDs := make(map[string]string, len(link.Locs))
	for _, loc := range link.Locs {
		wireIDs[loc.Label] = linkbase.BareID(loc.Href)
	}
	resources := make(map[string][]labelRes)
	for _, res := range link.Labels {
		resources[res.Label] = append(resources[res.Label], res)
	}

	for _, arc := range link.Arcs {
		wireID, ok := wireIDs[arc.From]
		if !ok || wireID == "" {
			continue
		}
		entry := out[wireID]
		for _, res := range resources[arc.To] {
			// innerxml keeps label markup escaped; decode before stripping.
			text := htmltext.Strip(htmltext.Decode(res.Body))
			switch res.Role {
			case roleLabel:
				entry.Label = text
			case roleVerbose:
				entry.Verbose = text
			}
		}
		out[wireID] = entry
	}
}
