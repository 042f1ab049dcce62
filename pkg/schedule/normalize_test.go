package schedule

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "empty string", value: "", want: ""},
		{name: "whitespace only", value: "   ", want: ""},
		{name: "NaN", value: math.NaN(), want: ""},
		{name: "collapses inner runs", value: "  a   b  ", want: "a b"},
		{name: "tabs and newlines", value: "\tCông nghệ\n  thông tin ", want: "Công nghệ thông tin"},
		{name: "integer float", value: float64(101), want: "101"},
		{name: "fractional float", value: 7.5, want: "7.5"},
		{name: "int", value: 42, want: "42"},
		{name: "time", value: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), want: "2024-05-03 00:00:00"},
		{name: "zero time", value: time.Time{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Clean(tt.value))
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "iso date", value: "2024-05-03", want: "03/05/2024"},
		{name: "iso date with time", value: "2024-05-03 10:00", want: "03/05/2024"},
		{name: "unpadded month and day", value: "2024-5-3", want: "03/05/2024"},
		{name: "not a date", value: "not-a-date", want: "not-a-date"},
		{name: "no dash", value: "03/05/2024", want: "03/05/2024"},
		{name: "free text", value: "Thứ 2", want: "Thứ 2"},
		{name: "empty", value: "", want: ""},
		{name: "nil", value: nil, want: ""},
		{name: "time value", value: time.Date(2024, 12, 1, 8, 30, 0, 0, time.UTC), want: "01/12/2024"},
		{name: "zero time", value: time.Time{}, want: ""},
		{name: "number", value: float64(45000), want: "45000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDate(tt.value))
		})
	}
}

func TestParseISODate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		got, ok := ParseISODate("  2025-01-15 07:30:00")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "   ", "2025-13-01", "15-01-2025", "soon-ish"} {
			_, ok := ParseISODate(s)
			assert.False(t, ok, s)
		}
	})
}
