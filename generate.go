package taxoform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Wire document constants. The taxonomy namespace is bound to a fixed local
// prefix; element names reuse each field's schema-exact wire id.
const (
	nsXbrli  = "http://www.xbrl.org/2003/instance"
	nsLink   = "http://www.xbrl.org/2003/linkbase"
	nsXlink  = "http://www.w3.org/1999/xlink"
	nsXbrldi = "http://xbrl.org/2006/xbrldi"

	taxPrefix    = "tax"
	entityScheme = "http://standards.iso.org/iso/17442"
	contextID    = "ctx"

	wireDateLayout = "2006-01-02"
)

// Generate serializes the submission as the wire XBRL instance document.
// Invisible fields are skipped entirely; unanswered visible fields are
// skipped unless the include-empty option is set, so incomplete submissions
// always generate.
func (s *Submission) Generate(opts GenerateOptions) ([]byte, error) {
	if s == nil || s.questionnaire == nil {
		return nil, fmt.Errorf("generate: no questionnaire")
	}
	if s.period.IsZero() {
		return nil, fmt.Errorf("generate: submission has no reporting period")
	}

	facts := s.wireFacts(opts)

	w := newWireWriter(opts.pretty)
	w.raw(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.open("xbrli:xbrl",
		attr{"xmlns:xbrli", nsXbrli},
		attr{"xmlns:link", nsLink},
		attr{"xmlns:xlink", nsXlink},
		attr{"xmlns:xbrldi", nsXbrldi},
		attr{"xmlns:" + taxPrefix, s.questionnaire.Namespace},
	)

	s.writeContext(w, contextID, "")
	for _, key := range categoryKeys(facts) {
		s.writeContext(w, categoryContextID(key), key)
	}

	for _, fact := range facts {
		fact.write(w)
	}

	w.close("xbrli:xbrl")
	return w.bytes(), nil
}

type attr struct {
	name  string
	value string
}

// wireFact is one fact element ready for emission.
type wireFact struct {
	name       string
	contextRef string
	decimals   string
	value      string
	empty      bool
	category   string
}

func (f wireFact) write(w *wireWriter) {
	attrs := []attr{{"contextRef", f.contextRef}}
	if f.decimals != "" {
		attrs = append(attrs, attr{"decimals", f.decimals})
	}
	if f.empty {
		w.selfClose(f.name, attrs...)
		return
	}
	w.leaf(f.name, f.value, attrs...)
}

// wireFacts flattens the visible answers into fact elements in document
// order, expanding dimensional answers into one fact per category.
func (s *Submission) wireFacts(opts GenerateOptions) []wireFact {
	var facts []wireFact
	for _, field := range s.questionnaire.Fields() {
		if !field.Visible(s.answers) {
			continue
		}
		name := taxPrefix + ":" + field.WireID
		answer, answered := s.answers[field.NormalizedID]

		if field.Dimensional {
			categories, _ := answer.(map[string]any)
			keys := make([]string, 0, len(categories))
			for key := range categories {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				value := categories[key]
				if value == nil {
					continue
				}
				facts = append(facts, wireFact{
					name:       name,
					contextRef: categoryContextID(key),
					decimals:   decimalsFor(field.Type),
					value:      formatValue(field, value),
					category:   key,
				})
			}
			continue
		}

		switch {
		case answered:
			facts = append(facts, wireFact{
				name:       name,
				contextRef: contextID,
				decimals:   decimalsFor(field.Type),
				value:      formatValue(field, answer),
			})
		case opts.includeEmpty:
			facts = append(facts, wireFact{
				name:       name,
				contextRef: contextID,
				decimals:   decimalsFor(field.Type),
				empty:      true,
			})
		}
	}
	return facts
}

func (s *Submission) writeContext(w *wireWriter, id, category string) {
	w.open("xbrli:context", attr{"id", id})
	w.open("xbrli:entity")
	w.leaf("xbrli:identifier", s.entityID, attr{"scheme", entityScheme})
	w.close("xbrli:entity")
	w.open("xbrli:period")
	w.leaf("xbrli:instant", s.period.Format(wireDateLayout))
	w.close("xbrli:period")
	if category != "" {
		dim := s.questionnaire.Dimension
		w.open("xbrli:scenario")
		w.leaf("xbrldi:explicitMember",
			taxPrefix+":"+dim.MemberPrefix+category,
			attr{"dimension", taxPrefix + ":" + dim.Name})
		w.close("xbrli:scenario")
	}
	w.close("xbrli:context")
}

func categoryContextID(key string) string {
	return contextID + "_" + key
}

func categoryKeys(facts []wireFact) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, fact := range facts {
		if fact.category == "" {
			continue
		}
		if _, ok := seen[fact.category]; ok {
			continue
		}
		seen[fact.category] = struct{}{}
		keys = append(keys, fact.category)
	}
	sort.Strings(keys)
	return keys
}

// decimalsFor returns the decimals attribute value for numeric types and
// empty for everything else, which omits the attribute.
func decimalsFor(t ValueType) string {
	switch t {
	case TypeInteger:
		return "0"
	case TypeMonetary, TypePercentage:
		return "2"
	default:
		return ""
	}
}

func formatValue(field *Field, value any) string {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case decimal.Decimal:
		return v.StringFixed(2)
	case time.Time:
		return v.Format(wireDateLayout)
	case string:
		if field.Type == TypeBoolean {
			return booleanLiteral(field, v)
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// booleanLiteral re-expresses a boolean answer as the field's actual
// enumeration literal, never a generic true/false token.
func booleanLiteral(field *Field, answer string) string {
	for _, literal := range field.Enums {
		if strings.EqualFold(literal, answer) {
			return literal
		}
	}
	var affirmative, negative string
	for _, literal := range field.Enums {
		if matchesAffirmative(literal) {
			affirmative = literal
		} else {
			negative = literal
		}
	}
	switch strings.ToLower(answer) {
	case "true", "1":
		if affirmative != "" {
			return affirmative
		}
	case "false", "0":
		if negative != "" {
			return negative
		}
	}
	return answer
}

// wireWriter emits the wire document either minified or indented. Both
// forms are well-formed XML.
type wireWriter struct {
	b      strings.Builder
	pretty bool
	depth  int
}

func newWireWriter(pretty bool) *wireWriter {
	return &wireWriter{pretty: pretty}
}

func (w *wireWriter) bytes() []byte {
	return []byte(w.b.String())
}

func (w *wireWriter) raw(s string) {
	w.b.WriteString(s)
	w.newline()
}

func (w *wireWriter) open(name string, attrs ...attr) {
	w.indent()
	w.startTag(name, attrs)
	w.b.WriteByte('>')
	w.newline()
	w.depth++
}

func (w *wireWriter) close(name string) {
	w.depth--
	w.indent()
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteByte('>')
	w.newline()
}

func (w *wireWriter) leaf(name, text string, attrs ...attr) {
	w.indent()
	w.startTag(name, attrs)
	w.b.WriteByte('>')
	w.b.WriteString(escapeWire(text))
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteByte('>')
	w.newline()
}

func (w *wireWriter) selfClose(name string, attrs ...attr) {
	w.indent()
	w.startTag(name, attrs)
	w.b.WriteString("/>")
	w.newline()
}

func (w *wireWriter) startTag(name string, attrs []attr) {
	w.b.WriteByte('<')
	w.b.WriteString(name)
	for _, a := range attrs {
		w.b.WriteByte(' ')
		w.b.WriteString(a.name)
		w.b.WriteString(`="`)
		w.b.WriteString(escapeWire(a.value))
		w.b.WriteByte('"')
	}
}

func (w *wireWriter) indent() {
	if !w.pretty {
		return
	}
	for range w.depth {
		w.b.WriteString("  ")
	}
}

func (w *wireWriter) newline() {
	if w.pretty {
		w.b.WriteByte('\n')
	}
}

// escapeWire escapes XML specials and re-encodes non-ASCII runes as numeric
// character references so enumeration literals round-trip to the schema's
// encoded byte sequence.
func escapeWire(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool {
		return r == '&' || r == '<' || r == '>' || r == '"' || r > 0x7F
	}) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r > 0x7F:
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
