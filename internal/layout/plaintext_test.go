package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ocrdesk/internal/layout"
)

func TestFormatPlainText_ThreeFieldsUnchanged(t *testing.T) {
	assert.Equal(t, "Total due 12.50", layout.FormatPlainText("Total due 12.50", layout.DefaultOptions()))
}

func TestFormatPlainText_ForcesColumns(t *testing.T) {
	got := layout.FormatPlainText("9.19 6.89 ABX 7.52 -0.10", layout.DefaultOptions())

	assert.Equal(t, "9.19      6.89      ABX                 7.52      -0.10", got)
}

func TestFormatPlainText_FiveFieldTicker(t *testing.T) {
	got := layout.FormatPlainText("AAA 1.2 BBB 3.4 CCC", layout.DefaultOptions())

	assert.Equal(t, "AAA       1.2       BBB                 3.4       CCC", got)
	// Slots of 10, 10, 20 and 10 put the fifth field at column 50.
	assert.Equal(t, 50, strings.Index(got, "CCC"))
}

func TestFormatPlainText_AlreadySpacedLineUnchanged(t *testing.T) {
	line := "AAA  1.2   BBB   3.4   CCC"

	assert.Equal(t, line, layout.FormatPlainText(line, layout.DefaultOptions()))
}

func TestFormatPlainText_ExpandsTabs(t *testing.T) {
	assert.Equal(t, "Item    4.00", layout.FormatPlainText("Item\t4.00", layout.DefaultOptions()))
}

func TestFormatPlainText_CustomTabWidth(t *testing.T) {
	opts := layout.DefaultOptions()
	opts.TabWidth = 2

	assert.Equal(t, "a  b", layout.FormatPlainText("a\tb", opts))
}

func TestFormatPlainText_LastWidthRepeats(t *testing.T) {
	got := layout.FormatPlainText("a b c d e f g", layout.DefaultOptions())

	assert.Equal(t, "a         b         c                   d         e         f         g", got)
}

func TestFormatPlainText_OverflowKeepsSeparator(t *testing.T) {
	got := layout.FormatPlainText("ABCDEFGHIJKLM 1 2 3", layout.DefaultOptions())

	assert.Equal(t, "ABCDEFGHIJKLM 1         2                   3", got)
}

func TestFormatPlainText_MinimumLength(t *testing.T) {
	line := "w x y z"

	got := layout.FormatPlainText(line, layout.DefaultOptions())

	assert.GreaterOrEqual(t, len(got), 10+10+20+len("z"))
}

func TestFormatPlainText_LeadingBlankLineDropped(t *testing.T) {
	got := layout.FormatPlainText("\nHeader\n\nfoo bar", layout.DefaultOptions())

	assert.Equal(t, "Header\n\nfoo bar", got)
}

func TestFormatPlainText_CRLF(t *testing.T) {
	got := layout.FormatPlainText("one two\r\nthree", layout.DefaultOptions())

	assert.Equal(t, "one two\nthree", got)
}

func TestFormatPlainText_CustomColumnWidths(t *testing.T) {
	opts := layout.DefaultOptions()
	opts.ColumnWidths = []int{4}

	assert.Equal(t, "a   b   c   d", layout.FormatPlainText("a b c d", opts))
}

func TestFormatPlainText_Empty(t *testing.T) {
	assert.Equal(t, "", layout.FormatPlainText("", layout.DefaultOptions()))
}
