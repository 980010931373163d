package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseValue turns a line of input into an element. The line becomes a
// float64 only when it is a finite number written exactly the way
// FormatValue prints it, so FormatValue(ParseValue(s)) == s for every s.
// Anything else ("007", "1e3", " 5", "NaN", "0x10") stays text; num(x)
// converts it inside an expression.
func ParseValue(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if FormatValue(f) != s {
		return s
	}
	return f
}

// FormatValue renders an element for output. Floats use the shortest
// representation, so 12.0 prints as 12.
func FormatValue(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// ToFloat converts an element to float64.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
