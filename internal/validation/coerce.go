package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNotFinite = errors.New("number out of range")

// AsString renders a decoded JSON value the way checks see it: absent and
// null are empty, numbers use their shortest decimal form. Numbers outside
// the float64 range keep their literal text.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil || math.IsInf(f, 0) {
			return t.String()
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// AsFloat converts a value that passed IsNumeric. The result is always
// finite; values that underflow become 0.
func AsFloat(v any) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(AsString(v)), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not a number: %w", errNotFinite)
	}
	return f, nil
}

// AsBool converts a value that passed IsBoolean. ok is false when v does not
// parse as a boolean.
func AsBool(v any) (b bool, ok bool) {
	if t, isBool := v.(bool); isBool {
		return t, true
	}
	b, err := strconv.ParseBool(AsString(v))
	return b, err == nil
}
