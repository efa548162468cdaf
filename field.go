// Package taxoform assembles regulatory-taxonomy artifacts into an immutable
// questionnaire model, accepts typed answers against that model, and
// serializes the answers as the namespaced XBRL instance document the
// regulator consumes.
package taxoform

import (
	"strings"

	"github.com/avitran/taxoform/internal/types"
)

// ValueType classifies the answer a field accepts.
type ValueType = types.ValueType

// Value type constants re-exported for callers of the public API.
const (
	TypeText       = types.TypeText
	TypeInteger    = types.TypeInteger
	TypeMonetary   = types.TypeMonetary
	TypePercentage = types.TypePercentage
	TypeDate       = types.TypeDate
	TypeBoolean    = types.TypeBoolean
	TypeEnum       = types.TypeEnum
)

// Field is one taxonomy-declared question. Fields are immutable after
// loading and safe for concurrent reads.
type Field struct {
	// NormalizedID is the lowercased identifier used for all lookups.
	NormalizedID string
	// WireID is the schema-exact-case identifier used only on the wire.
	WireID string
	// Type is the classified value type.
	Type ValueType
	// RawType is the declared type reference as written in the schema.
	RawType string
	// Enums holds the allowed literals for enum and boolean fields,
	// entity-decoded, in declaration order.
	Enums []string
	// Label and VerboseLabel are display strings, stripped to plain text.
	// Label defaults to the wire id when the label artifact has none.
	Label        string
	VerboseLabel string
	// Dimensional marks fields answered per category rather than once.
	Dimensional bool
	// IsGate marks fields whose answer controls other fields' visibility.
	IsGate bool
	// VisibilityRule maps a controlling field's normalized id to the
	// answer literal that makes this field visible. Empty means always
	// visible.
	VisibilityRule map[string]string
}

// Visible reports whether the field should be shown given the current
// answers, keyed by normalized id. Every rule entry must match; a missing or
// mismatched controlling answer hides the field.
func (f *Field) Visible(answers map[string]any) bool {
	for controlling, required := range f.VisibilityRule {
		answer, ok := answers[controlling].(string)
		if !ok || !strings.EqualFold(answer, required) {
			return false
		}
	}
	return true
}
