package taxoform

import (
	"strings"

	"github.com/samber/lo"
)

// Question wraps one field with its structural metadata.
type Question struct {
	// Number is the display number, sequential within the section.
	Number int
	// Instructions is optional guidance text, empty when absent.
	Instructions string
	Field        *Field
}

// Subsection is an ordered group of questions.
type Subsection struct {
	Number    int
	Title     string
	Questions []Question
}

// Section is an ordered group of subsections.
type Section struct {
	Number      int
	Title       string
	Subsections []Subsection
}

// Questions returns the section's questions flattened in subsection order.
func (s Section) Questions() []Question {
	return lo.FlatMap(s.Subsections, func(sub Subsection, _ int) []Question {
		return sub.Questions
	})
}

// Questionnaire is the immutable model assembled from one taxonomy's
// artifacts. It is built once per (industry, year) and may be shared by any
// number of submissions.
type Questionnaire struct {
	// Industry and Year identify the taxonomy this model was built from.
	Industry string
	Year     int
	// Namespace is the taxonomy's global wire namespace.
	Namespace string
	// Dimension carries the dimensional-breakdown descriptor, zero-valued
	// when the taxonomy declares none.
	Dimension Dimension
	Sections  []Section

	index map[string]*Field
}

// Dimension describes the per-category breakdown declared by the taxonomy.
type Dimension struct {
	// Name is the bare identifier of the dimension element.
	Name string
	// MemberPrefix prepends category keys to form member identifiers.
	MemberPrefix string
}

// Field resolves a field by identifier, case-insensitively.
func (q *Questionnaire) Field(id string) (*Field, bool) {
	if q == nil {
		return nil, false
	}
	field, ok := q.index[strings.ToLower(strings.TrimSpace(id))]
	return field, ok
}

// Questions returns every question in document order.
func (q *Questionnaire) Questions() []Question {
	if q == nil {
		return nil
	}
	return lo.FlatMap(q.Sections, func(s Section, _ int) []Question {
		return s.Questions()
	})
}

// Fields returns every field in document order.
func (q *Questionnaire) Fields() []*Field {
	return lo.Map(q.Questions(), func(question Question, _ int) *Field {
		return question.Field
	})
}
