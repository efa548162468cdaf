package defparse

import (
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/avitran/taxoform/errors"
)

const sampleLinkbase = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
               xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:definitionLink>
    <link:loc xlink:label="loc_table" xlink:href="schema.xsd#tax_PaysTable"/>
    <link:loc xlink:label="loc_dim" xlink:href="schema.xsd#tax_PaysDimension"/>
    <link:loc xlink:label="loc_domain" xlink:href="schema.xsd#tax_PaysDomain"/>
    <link:loc xlink:label="loc_fr" xlink:href="schema.xsd#tax_PaysFR"/>
    <link:loc xlink:label="loc_de" xlink:href="schema.xsd#tax_PaysDE"/>
    <link:loc xlink:label="loc_group" xlink:href="schema.xsd#tax_VentilationAbstract"/>
    <link:loc xlink:label="loc_t010" xlink:href="schema.xsd#tax_T010"/>
    <link:loc xlink:label="loc_t011" xlink:href="schema.xsd#tax_T011"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/hypercube-dimension"
                        xlink:from="loc_table" xlink:to="loc_dim"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/dimension-domain"
                        xlink:from="loc_dim" xlink:to="loc_domain"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"
                        xlink:from="loc_domain" xlink:to="loc_fr"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"
                        xlink:from="loc_domain" xlink:to="loc_de"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"
                        xlink:from="loc_group" xlink:to="loc_t010"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"
                        xlink:from="loc_group" xlink:to="loc_t011"/>
  </link:definitionLink>
</link:linkbase>`

func TestParseDefinition(t *testing.T) {
	dims, err := Parse(strings.NewReader(sampleLinkbase), Config{})
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if dims.Name != "PaysDimension" {
		t.Fatalf("Name = %q, want PaysDimension", dims.Name)
	}
	if dims.MemberPrefix != "Pays" {
		t.Fatalf("MemberPrefix = %q, want Pays", dims.MemberPrefix)
	}
	for _, wireID := range []string{"T010", "T011"} {
		if _, ok := dims.Fields[wireID]; !ok {
			t.Fatalf("Fields missing %s, got %v", wireID, dims.Fields)
		}
	}
	if len(dims.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2 (members are not dimensional fields)", len(dims.Fields))
	}
}

func TestParseDefinitionCustomPatterns(t *testing.T) {
	const doc = `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:definitionLink>
    <link:loc xlink:label="loc_g" xlink:href="s.xsd#tax_GroupeVentile"/>
    <link:loc xlink:label="loc_q" xlink:href="s.xsd#tax_Q900"/>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"
                        xlink:from="loc_g" xlink:to="loc_q"/>
  </link:definitionLink>
</link:linkbase>`

	cfg := Config{AbstractPattern: regexp.MustCompile(`Ventile$`)}
	dims, err := Parse(strings.NewReader(doc), cfg)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if _, ok := dims.Fields["Q900"]; !ok {
		t.Fatalf("Fields = %v, want Q900 via custom abstract pattern", dims.Fields)
	}
}

func TestParseDefinitionSkipsUnresolvedArcs(t *testing.T) {
	const doc = `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:definitionLink>
    <link:definitionArc xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"
                        xlink:from="loc_nowhere" xlink:to="loc_nothing"/>
  </link:definitionLink>
</link:linkbase>`

	dims, err := Parse(strings.NewReader(doc), Config{})
	if err != nil {
		t.Fatalf("Parse error = %v, want skip not failure", err)
	}
	if len(dims.Fields) != 0 {
		t.Fatalf("Fields = %v, want empty", dims.Fields)
	}
}

func TestParseFSMissingIsEmpty(t *testing.T) {
	dims, err := ParseFS(fstest.MapFS{}, "taxonomy/definition.xml", Config{})
	if err != nil {
		t.Fatalf("ParseFS missing error = %v, want nil", err)
	}
	if len(dims.Fields) != 0 || dims.Name != "" || dims.MemberPrefix != "" {
		t.Fatalf("ParseFS missing = %+v, want empty descriptor", dims)
	}
}

func TestParseFSMalformed(t *testing.T) {
	fsys := fstest.MapFS{
		"definition.xml": &fstest.MapFile{Data: []byte("<broken")},
	}
	if _, err := ParseFS(fsys, "definition.xml", Config{}); !errors.IsCode(err, errors.ErrMalformedArtifact) {
		t.Fatalf("ParseFS error = %v, want ErrMalformedArtifact", err)
	}
}
