package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DisplayDateLayout is the day-first layout exam dates are rendered in.
	DisplayDateLayout = "02/01/2006"

	// isoDateLayout accepts both zero-padded and bare month/day numbers.
	isoDateLayout = "2006-1-2"

	// timestampLayout is the string form of date cells before formatting.
	timestampLayout = "2006-01-02 15:04:05"
)

// Clean converts a raw cell value to a trimmed string with internal
// whitespace runs collapsed to a single space.
// nil, NaN and empty values become "".
func Clean(value any) string {
	s := stringify(value)
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// FormatDate renders a date-like value as DD/MM/YYYY.
//
// time.Time values are formatted directly. Strings containing "-" are parsed
// as YYYY-MM-DD (anything after the first space is ignored); strings that do
// not parse, and strings without "-", are returned unchanged. Falsy input
// yields "".
func FormatDate(value any) string {
	if isFalsy(value) {
		return ""
	}

	switch v := value.(type) {
	case time.Time:
		return v.Format(DisplayDateLayout)
	case *time.Time:
		return v.Format(DisplayDateLayout)
	case string:
		if strings.Contains(v, "-") {
			if t, ok := ParseISODate(v); ok {
				return t.Format(DisplayDateLayout)
			}
		}
		return v
	default:
		return stringify(v)
	}
}

// ParseISODate parses the first whitespace-separated token of s as
// YYYY-MM-DD. The second return value reports whether parsing succeeded.
func ParseISODate(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, false
	}

	t, err := time.Parse(isoDateLayout, fields[0])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// isEmpty reports whether a cell holds no value at all.
// Whitespace-only strings are not empty; they are cleaned later.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case *time.Time:
		return v == nil
	default:
		return false
	}
}

func isFalsy(value any) bool {
	if isEmpty(value) {
		return true
	}

	switch v := value.(type) {
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v.IsZero()
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}

func stringify(value any) string {
	if isEmpty(value) {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(timestampLayout)
	case *time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(timestampLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
