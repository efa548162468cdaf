// Package cast coerces raw answer input into the typed values a field
// accepts. Scalar casting is forgiving: malformed input degrades to absent
// rather than failing. Dimensional casting is strict about ambiguous
// category keys, which are a caller bug.
package cast

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avitran/taxoform/errors"
	"github.com/avitran/taxoform/internal/types"
)

// MaxScalarLength bounds numeric and date input length. Longer input casts
// to absent.
const MaxScalarLength = 100

// dateLayout is the lexical form of date answers.
const dateLayout = "2006-01-02"

// Scalar casts raw into the representation for t, or nil when the input is
// absent, blank, over-long, or (for numeric and date types) malformed.
func Scalar(t types.ValueType, raw any) any {
	if raw == nil {
		return nil
	}
	switch t {
	case types.TypeInteger:
		return castInteger(raw)
	case types.TypeMonetary, types.TypePercentage:
		return castDecimal(raw)
	case types.TypeDate:
		return castDate(raw)
	default:
		return castString(raw)
	}
}

// Dimensional casts a category-keyed mapping. Keys normalize to uppercase;
// two distinct keys collapsing to the same normalized key fail with a
// duplicate-category-key error naming the collision. An empty mapping casts
// to an empty mapping.
func Dimensional(t types.ValueType, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	seen := make(map[string]string, len(raw))

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		normalized := strings.ToUpper(key)
		if first, ok := seen[normalized]; ok && first != key {
			return nil, errors.NewLoadf(errors.ErrDuplicateCategoryKey,
				"category keys %q and %q collide as %q", first, key, normalized)
		}
		seen[normalized] = key
		out[normalized] = Scalar(t, raw[key])
	}
	return out, nil
}

func castInteger(raw any) any {
	switch v := raw.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return nil
	case decimal.Decimal:
		if v.IsInteger() {
			return v.IntPart()
		}
		return nil
	case string:
		s, ok := numericLexical(v)
		if !ok {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		// Scientific or decimal-pointed notation for a whole number.
		d, err := decimal.NewFromString(s)
		if err != nil || !d.IsInteger() {
			return nil
		}
		return d.IntPart()
	default:
		return nil
	}
}

func castDecimal(raw any) any {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		s, ok := numericLexical(v)
		if !ok {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		return d
	default:
		return nil
	}
}

func castDate(raw any) any {
	switch v := raw.(type) {
	case time.Time:
		return v
	case string:
		s, ok := numericLexical(v)
		if !ok {
			return nil
		}
		date, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return nil
		}
		return date
	default:
		return nil
	}
}

func castString(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// numericLexical trims s and applies the blank and length guards shared by
// numeric and date casting.
func numericLexical(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxScalarLength {
		return "", false
	}
	return s, true
}
