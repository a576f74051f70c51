// Package numutil converts loosely typed provider values into numbers.
// Upstream feeds deliver prices as floats, quoted strings, or strings
// with currency symbols and thousands separators; everything funnels
// through Coerce so callers never see a parse error.
package numutil

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce converts an arbitrary decoded JSON value into a float64.
// Numeric inputs are returned unchanged. String inputs are stripped of
// everything that is not a digit, sign, or decimal point before
// parsing ("$1,234.56" -> 1234.56). Anything else, including nil,
// booleans, objects, and unparseable strings, coerces to 0.
//
// 0 is the documented "unknown/absent" sentinel. It is only
// distinguishable from a real zero by context; callers must check for
// zero explicitly where zero is implausible (e.g. a price).
func Coerce(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return coerceString(val)
	default:
		return 0
	}
}

// CoerceInt64 converts an arbitrary decoded JSON value into an int64,
// truncating any fractional part. Same sentinel semantics as Coerce.
func CoerceInt64(v interface{}) int64 {
	return int64(Coerce(v))
}

func coerceString(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
