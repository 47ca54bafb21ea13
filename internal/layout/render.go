package layout

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"ocrdesk/internal/domain"
)

// RenderRow lays one row out left to right, turning pixel gaps into runs of
// spaces. Every token is separated from the previous one by at least one
// space. The horizontal cursor starts at zero for each row.
func RenderRow(row Row, opts Options) string {
	opts = opts.normalized()

	tokens := make([]domain.Token, len(row.Tokens))
	copy(tokens, row.Tokens)
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].BBox.X0 < tokens[j].BBox.X0
	})

	var b strings.Builder
	lastX := 0
	for _, t := range tokens {
		gap := roundHalfUp(float64(t.BBox.X0-lastX) / float64(opts.PixelsPerChar))
		if gap < 1 {
			gap = 1
		}
		b.WriteString(strings.Repeat(" ", gap))
		b.WriteString(t.Text)
		lastX = t.BBox.X0 + utf8.RuneCountInString(t.Text)*opts.CharAdvancePx
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// RenderRows renders each row on its own line and trims the block.
func RenderRows(rows []Row, opts Options) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, RenderRow(r, opts))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
