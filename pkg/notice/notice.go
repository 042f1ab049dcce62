// Package notice renders the exam schedule email sent to each lecturer.
//
// The layout is fixed: a 600px, table-based document with inline styles and
// mso- attributes for Outlook-family clients. The same output is used for
// the sent email and for every preview, so Render must stay a pure function
// of the recipient.
//
// Interpolated values are HTML-escaped by html/template; plain text renders
// unchanged.
package notice

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/exammail/pkg/schedule"
)

// Title is the header text of every notice.
const Title = "EXAM SCHEDULE NOTICE"

//go:embed notice.html
var layoutSource string

var layout = template.Must(template.New("layout").Funcs(template.FuncMap{
	"even": func(i int) bool { return i%2 == 0 },
}).Parse(layoutSource))

type view struct {
	Title string
	Name  string
	Rows  []schedule.ClassRow
}

// Render returns the HTML document for r.
// A recipient without any displayable class gets a single
// "No exam schedule." paragraph instead of the full layout.
func Render(r *schedule.Recipient) (string, error) {
	if r == nil {
		return "", ErrNilRecipient
	}

	rows := schedule.ValidClasses(r.Classes)

	name := "notice"
	if len(rows) == 0 {
		name = "empty"
	}

	var buf strings.Builder
	if err := layout.ExecuteTemplate(&buf, name, view{
		Title: Title,
		Name:  r.Name,
		Rows:  rows,
	}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

// Subject returns the email subject for r: the title followed by the
// upper-cased display name.
func Subject(r *schedule.Recipient) string {
	if r == nil {
		return Title
	}
	return Title + " - " + cases.Upper(language.Vietnamese).String(r.Name)
}
