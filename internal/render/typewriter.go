package render

import (
	"io"
	"strings"
	"time"
)

// DefaultTypeDelay is the per-rune delay of the advice reveal.
const DefaultTypeDelay = 12 * time.Millisecond

// Typewriter reveals text rune by rune, mirroring the web client's
// advice animation. A zero or negative delay writes everything at once.
type Typewriter struct {
	Writer io.Writer
	Delay  time.Duration
}

// Reveal writes s to the underlying writer. The full text is always
// written, regardless of delay.
func (t *Typewriter) Reveal(s string) {
	if t.Delay <= 0 {
		io.WriteString(t.Writer, s)
		return
	}
	for _, r := range s {
		io.WriteString(t.Writer, string(r))
		time.Sleep(t.Delay)
	}
}

// StripMarkdown removes the bold/heading/bullet markers the backend's
// advice uses, leaving readable plain text for terminals and PDF reports.
func StripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if after, ok := strings.CutPrefix(trimmed, "* "); ok {
			trimmed = "- " + after
		}
		lines[i] = trimmed
	}
	return strings.Join(lines, "\n")
}
