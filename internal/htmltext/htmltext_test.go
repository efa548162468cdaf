package htmltext

import "testing"

func TestStrip(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "Total assets", want: "Total assets"},
		{name: "plain-padded", input: "  Total assets ", want: "Total assets"},
		{name: "simple-markup", input: "<p>Total <b>assets</b></p>", want: "Total assets"},
		{name: "nested-markup", input: "<div><span>Contr&ocirc;le</span> interne</div>", want: "Contrôle interne"},
		{name: "entity-only", input: "R&amp;D expenses", want: "R&D expenses"},
		{name: "line-breaks", input: "<p>first</p>\n<p>second</p>", want: "first second"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Strip(tc.input); got != tc.want {
				t.Fatalf("Strip(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Oui", want: "Oui"},
		{input: "R&amp;D", want: "R&D"},
		{input: "&lt;1 an", want: "<1 an"},
		{input: "d&eacute;rogation", want: "dérogation"},
	}

	for _, tc := range cases {
		if got := Decode(tc.input); got != tc.want {
			t.Fatalf("Decode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
