package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinColumnFields is the field count from which a plain line is forced into columns.
const MinColumnFields = 4

var (
	lineBreak  = regexp.MustCompile(`\r?\n`)
	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// FormatPlainText guesses a column layout for text that came without token
// geometry. It is tuned for short numeric or label fields (tickers, receipt
// lines); prose that happens to split into four or more fields gets
// columnized too.
func FormatPlainText(raw string, opts Options) string {
	opts = opts.normalized()

	lines := lineBreak.Split(raw, -1)
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 && line == "" {
			continue
		}
		out = append(out, formatPlainLine(line, opts))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func formatPlainLine(line string, opts Options) string {
	// Already spaced out by the recognizer: keep it, only expand tabs.
	if strings.Contains(line, "\t") || multiSpace.MatchString(line) {
		return strings.ReplaceAll(line, "\t", strings.Repeat(" ", opts.TabWidth))
	}

	fields := strings.Fields(line)
	if len(fields) < MinColumnFields {
		return line
	}

	var b strings.Builder
	for i, f := range fields {
		b.WriteString(f)
		pad := opts.columnWidth(i) - utf8.RuneCountInString(f)
		if pad < 1 {
			// An overflowing field still gets a separator so it does not merge with the next one.
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", pad))
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
