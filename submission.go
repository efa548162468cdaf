package taxoform

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/cast"
)

// Submission is a mutable answer store against one questionnaire. It is
// owned by its creator and not safe for concurrent use; the questionnaire it
// references is immutable and may be shared freely.
type Submission struct {
	entityID      string
	period        time.Time
	questionnaire *Questionnaire
	answers       map[string]any
}

// NewSubmission creates an empty submission for the given entity and
// reporting period.
func NewSubmission(q *Questionnaire, entityID string, period time.Time) *Submission {
	return &Submission{
		entityID:      entityID,
		period:        period,
		questionnaire: q,
		answers:       make(map[string]any),
	}
}

// Questionnaire returns the model this submission answers.
func (s *Submission) Questionnaire() *Questionnaire {
	if s == nil {
		return nil
	}
	return s.questionnaire
}

// EntityID returns the reporting entity identifier.
func (s *Submission) EntityID() string {
	if s == nil {
		return ""
	}
	return s.entityID
}

// Period returns the reporting period.
func (s *Submission) Period() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.period
}

// Set casts raw and stores it as the answer for the identified field.
// Malformed scalar input degrades to an absent answer; ambiguous dimensional
// category keys fail with a duplicate-category-key error. Unknown field ids
// fail.
func (s *Submission) Set(fieldID string, raw any) error {
	field, ok := s.questionnaire.Field(fieldID)
	if !ok {
		return errors.NewLoadf(errors.ErrUnknownField, "field %s is not part of the questionnaire", strings.ToLower(fieldID))
	}

	if field.Dimensional {
		categories, err := categoryMap(raw)
		if err != nil {
			return fmt.Errorf("set %s: %w", field.NormalizedID, err)
		}
		if categories == nil {
			delete(s.answers, field.NormalizedID)
			return nil
		}
		value, err := cast.Dimensional(field.Type, categories)
		if err != nil {
			return fmt.Errorf("set %s: %w", field.NormalizedID, err)
		}
		s.answers[field.NormalizedID] = value
		return nil
	}

	value := cast.Scalar(field.Type, raw)
	if value == nil {
		delete(s.answers, field.NormalizedID)
		return nil
	}
	s.answers[field.NormalizedID] = value
	return nil
}

// Answer returns the stored answer for a field, if any.
func (s *Submission) Answer(fieldID string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.answers[strings.ToLower(strings.TrimSpace(fieldID))]
	return value, ok
}

// Answers returns a copy of the answer map keyed by normalized id.
func (s *Submission) Answers() map[string]any {
	if s == nil {
		return nil
	}
	return maps.Clone(s.answers)
}

// Visible reports whether the identified field is currently visible given
// the submission's answers. Unknown fields are not visible.
func (s *Submission) Visible(fieldID string) bool {
	field, ok := s.questionnaire.Field(fieldID)
	if !ok {
		return false
	}
	return field.Visible(s.answers)
}

// Complete reports whether every visible field has an answer.
func (s *Submission) Complete() bool {
	return s.remaining() == 0
}

// Progress returns the ratio of answered visible fields to visible fields.
// An all-invisible questionnaire counts as fully answered.
func (s *Submission) Progress() float64 {
	visible, answered := s.counts()
	if visible == 0 {
		return 1
	}
	return float64(answered) / float64(visible)
}

func (s *Submission) remaining() int {
	visible, answered := s.counts()
	return visible - answered
}

func (s *Submission) counts() (visible, answered int) {
	if s == nil || s.questionnaire == nil {
		return 0, 0
	}
	for _, field := range s.questionnaire.Fields() {
		if !field.Visible(s.answers) {
			continue
		}
		visible++
		if _, ok := s.answers[field.NormalizedID]; ok {
			answered++
		}
	}
	return visible, answered
}

// categoryMap coerces raw dimensional input into a category-keyed map.
func categoryMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("dimensional answer must be a category map, got %T", raw)
	}
}
