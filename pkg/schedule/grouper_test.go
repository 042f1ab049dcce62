package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow(email, name, subject string) RawRow {
	return RawRow{
		"Email":         email,
		"Giang_vien":    name,
		"Nganh":         "Computer Science",
		"Lop":           "CS101",
		"Hoc_phan":      subject,
		"Hinh_thuc_thi": "Written",
		"Ngay":          "2024-05-03",
		"Gio_thi":       "07:30",
	}
}

func TestFilterAddressed(t *testing.T) {
	t.Parallel()

	cols := DefaultColumns()
	rows := []RawRow{
		{"Email": "a@x.com"},
		{"Email": ""},
		{"Email": nil},
		{"Giang_vien": "No email column"},
		{"Email": "   "},
		{"Email": "not-an-address"},
	}

	got := FilterAddressed(rows, cols)
	require.Len(t, got, 2)
	assert.Equal(t, "a@x.com", got[0]["Email"])
	assert.Equal(t, "not-an-address", got[1]["Email"])
}

func TestGroup(t *testing.T) {
	t.Parallel()

	cols := DefaultColumns()

	t.Run("groups by address in first-appearance order", func(t *testing.T) {
		t.Parallel()

		rows := []RawRow{
			fullRow("b@y.com", "Tran B", "Networks"),
			fullRow("a@x.com", "Nguyen A", "Databases"),
			fullRow("b@y.com", "Someone Else", "Compilers"),
		}

		m := Group(rows, cols)
		require.Equal(t, 2, m.Len())
		assert.Equal(t, []string{"b@y.com", "a@x.com"}, m.Addresses())

		b, ok := m.Get("b@y.com")
		require.True(t, ok)
		assert.Equal(t, "Tran B", b.Name, "name comes from the first row")
		require.Len(t, b.Classes, 2)
		assert.Equal(t, "Networks", b.Classes[0].Subject)
		assert.Equal(t, "Compilers", b.Classes[1].Subject)
	})

	t.Run("skips addresses without @", func(t *testing.T) {
		t.Parallel()

		m := Group([]RawRow{
			fullRow("lecturer.example.com", "X", "Y"),
			fullRow("ok@example.com", "Z", "W"),
		}, cols)

		assert.Equal(t, []string{"ok@example.com"}, m.Addresses())
	})

	t.Run("trims only surrounding whitespace of the address", func(t *testing.T) {
		t.Parallel()

		m := Group([]RawRow{
			fullRow("  a@x.com\t", "A", "1"),
			fullRow("a@x.com", "A", "2"),
			fullRow("first  last@x.com", "B", "3"),
		}, cols)

		assert.Equal(t, []string{"a@x.com", "first  last@x.com"}, m.Addresses())
		a, ok := m.Get("a@x.com")
		require.True(t, ok)
		assert.Len(t, a.Classes, 2)
	})

	t.Run("resolves accented aliases and keeps raw dates", func(t *testing.T) {
		t.Parallel()

		examDay := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		m := Group([]RawRow{{
			"Email":         "a@x.com",
			"Giảng_viên":    "  Lê   Văn C ",
			"Ngành":         "Kế toán",
			"Lớp":           "KT01",
			"Môn_thi":       "Thuế",
			"Hình_thức_thi": "Tự luận",
			"Ngày_thi":      examDay,
			"Giờ_thi":       "13:30",
		}}, cols)

		r, ok := m.Get("a@x.com")
		require.True(t, ok)
		assert.Equal(t, "Lê Văn C", r.Name)
		require.Len(t, r.Classes, 1)

		c := r.Classes[0]
		assert.Equal(t, "Kế toán", c.FieldGroup)
		assert.Equal(t, "KT01", c.Section)
		assert.Equal(t, "Thuế", c.Subject)
		assert.Equal(t, "Tự luận", c.ExamMode)
		assert.Equal(t, examDay, c.ExamDate)
		assert.Equal(t, "13:30", c.ExamTime)
	})

	t.Run("first non-empty alias wins", func(t *testing.T) {
		t.Parallel()

		m := Group([]RawRow{{
			"Email":    "a@x.com",
			"Hoc_phan": "",
			"Môn_thi":  "Second",
			"Học_phần": "Third",
			"Ngay":     nil,
			"Ngày":     "2024-01-02",
		}}, cols)

		r, _ := m.Get("a@x.com")
		assert.Equal(t, "Second", r.Classes[0].Subject)
		assert.Equal(t, "2024-01-02", r.Classes[0].ExamDate)
	})

	t.Run("record count equals addressed rows", func(t *testing.T) {
		t.Parallel()

		rows := []RawRow{
			fullRow("a@x.com", "A", "1"),
			{"Email": "a@x.com"},
			fullRow("b@y.com", "B", "2"),
			fullRow("", "C", "3"),
			fullRow("broken", "D", "4"),
			{"Email": "c@z.com", "Hoc_phan": "only subject"},
		}

		m := Group(FilterAddressed(rows, cols), cols)

		want := 0
		for _, row := range rows {
			if s := Clean(row["Email"]); strings.Contains(s, "@") {
				want++
			}
		}
		assert.Equal(t, want, m.ClassCount())
		assert.Equal(t, 4, m.ClassCount())
	})
}

func TestRecipientMap(t *testing.T) {
	t.Parallel()

	list := []*Recipient{
		{Address: "a@x.com", Name: "A", Classes: []ClassRecord{{Subject: "1"}}},
		nil,
		{Address: "b@y.com", Name: "B"},
		{Address: "a@x.com", Name: "ignored", Classes: []ClassRecord{{Subject: "2"}}},
	}

	m := FromRecipients(list)
	require.Equal(t, 2, m.Len())

	var seen []string
	for addr, r := range m.All() {
		seen = append(seen, addr+"="+r.Name)
	}
	assert.Equal(t, []string{"a@x.com=A", "b@y.com=B"}, seen)

	a, _ := m.Get("a@x.com")
	assert.Len(t, a.Classes, 2)
	assert.Equal(t, 2, m.ClassCount())

	_, ok := m.Get("missing@x.com")
	assert.False(t, ok)
}
