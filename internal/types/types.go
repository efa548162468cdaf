// Package types holds the shared value and artifact record types produced by
// the taxonomy artifact parsers and consumed by the loader.
package types

// ValueType classifies the answer a field accepts.
type ValueType uint8

const (
	// TypeText accepts any free-form string.
	TypeText ValueType = iota
	// TypeInteger accepts whole numbers.
	TypeInteger
	// TypeMonetary accepts exact decimal amounts.
	TypeMonetary
	// TypePercentage accepts exact decimal ratios.
	TypePercentage
	// TypeDate accepts calendar dates.
	TypeDate
	// TypeBoolean accepts one of a recognized two-valued enumeration.
	TypeBoolean
	// TypeEnum accepts one of the field's enumeration literals.
	TypeEnum
)

// String returns the lexical name of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeMonetary:
		return "monetary"
	case TypePercentage:
		return "percentage"
	case TypeDate:
		return "date"
	case TypeBoolean:
		return "boolean"
	case TypeEnum:
		return "enum"
	default:
		return "text"
	}
}

// Numeric reports whether values of this type carry a decimals attribute on
// the wire.
func (t ValueType) Numeric() bool {
	switch t {
	case TypeInteger, TypeMonetary, TypePercentage:
		return true
	default:
		return false
	}
}

// Decl is one schema-declared field.
type Decl struct {
	// WireID is the schema-exact-case identifier.
	WireID string
	// Type is the classified value type.
	Type ValueType
	// RawType is the declared type reference as written in the schema.
	RawType string
	// Enums holds the declared enumeration literals in document order,
	// entity-decoded. Nil unless Type is TypeEnum or TypeBoolean.
	Enums []string
}

// Labels carries the display strings resolved for one field.
type Labels struct {
	Label   string
	Verbose string
}

// Dimensions is the dimensional-breakdown descriptor extracted from the
// definition linkbase.
type Dimensions struct {
	// Fields holds the wire ids requiring per-category answers.
	Fields map[string]struct{}
	// Name is the bare identifier of the dimension, empty when absent.
	Name string
	// MemberPrefix is the shared prefix of category member identifiers.
	MemberPrefix string
}

// Rules is the gate-dependency subset extracted from the rule artifact.
type Rules struct {
	// Dependencies maps a controlled id to its visibility requirements,
	// each a controlling id mapped to the required answer literal.
	Dependencies map[string]map[string]string
	// Gates holds every controlling id.
	Gates map[string]struct{}
}

// Structure is the parsed human-authored questionnaire layout.
type Structure struct {
	Sections []StructureSection
}

// StructureSection is one positioned section of the structure artifact.
type StructureSection struct {
	Number      int
	Title       string
	Subsections []StructureSubsection
}

// StructureSubsection is one positioned subsection.
type StructureSubsection struct {
	Number    int
	Title     string
	Questions []StructureQuestion
}

// StructureQuestion is one positioned question referencing a field by its
// normalized (lowercased) identifier.
type StructureQuestion struct {
	Number       int
	FieldID      string
	Instructions string
}
