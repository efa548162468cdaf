package taxoform_test

import (
	"fmt"
	"testing/fstest"
	"time"

	"github.com/avitran/taxoform"
)

const exampleSchema = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:xbrli="http://www.xbrl.org/2003/instance"
           targetNamespace="urn:example:assurance:2026">
  <xs:element name="HasIncidents">
    <xs:simpleType>
      <xs:restriction base="xs:string">
        <xs:enumeration value="Oui"/>
        <xs:enumeration value="Non"/>
      </xs:restriction>
    </xs:simpleType>
  </xs:element>
  <xs:element name="IncidentCount" type="xbrli:integerItemType"/>
</xs:schema>`

const exampleRules = `output HasIncidents-IncidentCount
if {@tax:HasIncidents} == "oui"
    exists({@tax:IncidentCount})
`

const exampleStructure = `parts:
  - title: Reporting
    sections:
      - title: Incidents
        subsections:
          - title: General
            questions:
              - field: HasIncidents
              - field: IncidentCount
`

func exampleFS() fstest.MapFS {
	return fstest.MapFS{
		"schema.xsd":     &fstest.MapFile{Data: []byte(exampleSchema)},
		"rules.xule":     &fstest.MapFile{Data: []byte(exampleRules)},
		"structure.yaml": &fstest.MapFile{Data: []byte(exampleStructure)},
	}
}

func ExampleLoad() {
	q, err := taxoform.Load(exampleFS(), taxoform.ArtifactSet{
		Industry:  "assurance",
		Year:      2026,
		Schema:    "schema.xsd",
		Rules:     "rules.xule",
		Structure: "structure.yaml",
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(q.Namespace)
	fmt.Println(len(q.Fields()), "fields")
	// Output:
	// urn:example:assurance:2026
	// 2 fields
}

func ExampleSubmission_Generate() {
	q, err := taxoform.Load(exampleFS(), taxoform.ArtifactSet{
		Industry:  "assurance",
		Year:      2026,
		Schema:    "schema.xsd",
		Rules:     "rules.xule",
		Structure: "structure.yaml",
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	s := taxoform.NewSubmission(q, "969500HJKLT2Q0WXYZ12", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	if err := s.Set("hasincidents", "Oui"); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := s.Set("incidentcount", 3); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	out, err := s.Generate(taxoform.NewGenerateOptions().WithPretty(true))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%s", out)
	// Output:
	// <?xml version="1.0" encoding="UTF-8"?>
	// <xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance" xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:xbrldi="http://xbrl.org/2006/xbrldi" xmlns:tax="urn:example:assurance:2026">
	//   <xbrli:context id="ctx">
	//     <xbrli:entity>
	//       <xbrli:identifier scheme="http://standards.iso.org/iso/17442">969500HJKLT2Q0WXYZ12</xbrli:identifier>
	//     </xbrli:entity>
	//     <xbrli:period>
	//       <xbrli:instant>2026-12-31</xbrli:instant>
	//     </xbrli:period>
	//   </xbrli:context>
	//   <tax:HasIncidents contextRef="ctx">Oui</tax:HasIncidents>
	//   <tax:IncidentCount contextRef="ctx" decimals="0">3</tax:IncidentCount>
	// </xbrli:xbrl>
}
