package linkbase

import "testing"

func TestBareID(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{href: "schema.xsd#tax_TGate", want: "TGate"},
		{href: "http://example.org/taxo/schema.xsd#acme_Q0001", want: "Q0001"},
		{href: "#tax_PaysFR", want: "PaysFR"},
		{href: "tax_T001", want: "T001"},
		{href: "schema.xsd#NoPrefix", want: "NoPrefix"},
		{href: "", want: ""},
	}

	for _, tc := range cases {
		if got := BareID(tc.href); got != tc.want {
			t.Fatalf("BareID(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}
