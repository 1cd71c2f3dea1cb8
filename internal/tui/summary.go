package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// summaryWidth bounds the rendered summary, including wrapped text.
const summaryWidth = 72

// Summary describes a committed habit record for terminal display.
type Summary struct {
	Title       string // record title
	PageID      string // identifier returned by the commit
	URL         string // page URL, may be empty
	Database    string // parent database title
	Description string // parent database description, wrapped on render
}

// RenderSummary formats a committed record as a styled block for the
// terminal. Long descriptions are word-wrapped to the summary width.
func RenderSummary(s Summary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(s.Title))
	b.WriteString("\n")

	writeRow(&b, "Page", s.PageID)
	writeRow(&b, "Database", s.Database)
	writeRow(&b, "URL", s.URL)

	if s.Description != "" {
		b.WriteString("\n")
		wrapped := wordwrap.String(s.Description, summaryWidth-2)
		b.WriteString(DescriptionStyle.Render(wrapped))
		b.WriteString("\n")
	}

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(LabelStyle.Render(label + ": "))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}
