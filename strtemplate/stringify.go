package strtemplate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stringify converts a substituted value to text:
//
//   - nil renders as ""
//   - strings and []byte pass through
//   - bools render as "true" or "false"
//   - integers render in decimal
//   - floats use the shortest round-trip form, switching to
//     exponent notation outside [1e-6, 1e21); NaN and the
//     infinities render as "NaN", "Infinity", "-Infinity"
//   - errors and fmt.Stringers use their own methods
//   - []any joins its elements with ","
//   - anything else goes through fmt.Sprint
func Stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int8:
		return strconv.FormatInt(int64(typed), 10)
	case int16:
		return strconv.FormatInt(int64(typed), 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint8:
		return strconv.FormatUint(uint64(typed), 10)
	case uint16:
		return strconv.FormatUint(uint64(typed), 10)
	case uint32:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float32:
		return formatFloat(float64(typed), 32)
	case float64:
		return formatFloat(typed, 64)
	case error:
		return typed.Error()
	case fmt.Stringer:
		return typed.String()
	case []any:
		parts := make([]string, len(typed))
		for idx, elem := range typed {
			parts[idx] = Stringify(elem)
		}

		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// Covers negative zero.
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	// strconv pads the exponent to two digits ("1e-07").
	s := strconv.FormatFloat(f, 'e', -1, bitSize)

	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")

	return mant + "e" + sign + digits
}
