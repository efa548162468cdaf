// Package schemaparse reads the taxonomy schema artifact: field declarations,
// their types and enumerations, and the taxonomy's global namespace.
package schemaparse

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/htmltext"
	"github.com/avitran/taxoform/internal/types"
)

// DefaultMaxFields bounds the number of declared fields accepted from a
// single schema artifact.
const DefaultMaxFields = 10_000

// booleanPairs lists the two-valued enumerations recognized as booleans,
// each lowercased and sorted.
var booleanPairs = [][2]string{
	{"non", "oui"},
	{"no", "yes"},
}

// Schema is the parsed schema artifact.
type Schema struct {
	// Namespace is the document's target namespace.
	Namespace string
	// Decls holds field declarations in document order.
	Decls []types.Decl
}

// Decl returns the declaration for a wire id, if present.
func (s *Schema) Decl(wireID string) (types.Decl, bool) {
	if s == nil {
		return types.Decl{}, false
	}
	return lo.Find(s.Decls, func(d types.Decl) bool { return d.WireID == wireID })
}

type xsdDocument struct {
	TargetNamespace string       `xml:"targetNamespace,attr"`
	Elements        []xsdElement `xml:"element"`
}

type xsdElement struct {
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Abstract   string         `xml:"abstract,attr"`
	SimpleType *xsdSimpleType `xml:"simpleType"`
}

type xsdSimpleType struct {
	Restriction *xsdRestriction `xml:"restriction"`
}

type xsdRestriction struct {
	Base         string           `xml:"base,attr"`
	Enumerations []xsdEnumeration `xml:"enumeration"`
}

type xsdEnumeration struct {
	Value string `xml:"value,attr"`
}

// ParseFS reads and parses the schema artifact at name.
func ParseFS(fsys fs.FS, name string, maxFields int) (*Schema, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Missing(name, err)
	}
	defer f.Close()
	schema, err := Parse(f, maxFields)
	if err != nil {
		if load, ok := errors.AsLoad(err); ok && load.Artifact == "" {
			load.Artifact = name
		}
		return nil, err
	}
	return schema, nil
}

// Parse parses the schema artifact from r. A non-positive maxFields applies
// DefaultMaxFields.
func Parse(r io.Reader, maxFields int) (*Schema, error) {
	if maxFields <= 0 {
		maxFields = DefaultMaxFields
	}

	decoder := xml.NewDecoder(r)
	// Taxonomy schemas carry HTML entities in enumeration values; non-strict
	// mode leaves unknown entity references intact for htmltext.Decode.
	decoder.Strict = false

	var doc xsdDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Malformed("", err)
	}
	if doc.TargetNamespace == "" {
		return nil, errors.Malformed("", fmt.Errorf("schema has no targetNamespace"))
	}

	schema := &Schema{Namespace: doc.TargetNamespace}
	for _, element := range doc.Elements {
		if element.Name == "" || element.Abstract == "true" {
			continue
		}
		if len(schema.Decls) >= maxFields {
			return nil, errors.NewLoadf(errors.ErrFieldCountExceeded,
				"schema declares more than %d fields", maxFields)
		}
		schema.Decls = append(schema.Decls, declFor(element))
	}
	return schema, nil
}

func declFor(element xsdElement) types.Decl {
	rawType := element.Type
	var enums []string
	if element.SimpleType != nil && element.SimpleType.Restriction != nil {
		restriction := element.SimpleType.Restriction
		if rawType == "" {
			rawType = restriction.Base
		}
		enums = lo.Map(restriction.Enumerations, func(e xsdEnumeration, _ int) string {
			return htmltext.Decode(e.Value)
		})
	}

	decl := types.Decl{
		WireID:  element.Name,
		RawType: rawType,
	}
	switch {
	case len(enums) > 0:
		decl.Enums = enums
		decl.Type = types.TypeEnum
		if isBooleanPair(enums) {
			decl.Type = types.TypeBoolean
		}
	default:
		decl.Type = typeFor(rawType)
	}
	return decl
}

// typeFor classifies a declared type reference. Matching is by local-name
// substring so prefixed references (xbrli:monetaryItemType) resolve without
// namespace bookkeeping.
func typeFor(rawType string) types.ValueType {
	lower := strings.ToLower(rawType)
	switch {
	case strings.Contains(lower, "monetary"):
		return types.TypeMonetary
	case strings.Contains(lower, "percent"), strings.Contains(lower, "pure"):
		return types.TypePercentage
	case strings.Contains(lower, "int"):
		return types.TypeInteger
	case strings.Contains(lower, "date"):
		return types.TypeDate
	case strings.Contains(lower, "decimal"):
		return types.TypeMonetary
	default:
		return types.TypeText
	}
}

func isBooleanPair(enums []string) bool {
	if len(enums) != 2 {
		return false
	}
	pair := [2]string{strings.ToLower(enums[0]), strings.ToLower(enums[1])}
	sort.Strings(pair[:])
	return lo.Contains(booleanPairs, pair)
}
