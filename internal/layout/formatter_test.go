package layout_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/layout"
	"ocrdesk/internal/port"
)

func TestFormatter_TotalLine(t *testing.T) {
	out := port.RecognitionOutput{
		Text: "Total 12.50",
		Words: []domain.Token{
			{Text: "Total", BBox: domain.BBox{X0: 0, Y0: 0}},
			{Text: "12.50", BBox: domain.BBox{X0: 100, Y0: 2}},
		},
	}

	res := layout.NewFormatter(layout.DefaultOptions()).Select(out)

	// Cursor after "Total" is 5*7 = 35, so the gap is round(65/20) = 3.
	assert.Equal(t, "Total   12.50", res.Text)
	assert.Equal(t, layout.StrategyGeometry, res.Strategy)
}

func TestFormatter_PlainTextWithoutWords(t *testing.T) {
	res := layout.NewFormatter(layout.DefaultOptions()).Select(port.RecognitionOutput{Text: "  AAA 1.2 BBB 3.4 CCC \n"})

	assert.Equal(t, "AAA       1.2       BBB                 3.4       CCC", res.Text)
	assert.Equal(t, layout.StrategyHeuristic, res.Strategy)
}

func TestFormatter_BlankWordsFallBackToHeuristic(t *testing.T) {
	out := port.RecognitionOutput{
		Text:  "hello world",
		Words: []domain.Token{{Text: "  "}, {Text: ""}},
	}

	res := layout.NewFormatter(layout.DefaultOptions()).Select(out)

	assert.Equal(t, "hello world", res.Text)
	assert.Equal(t, layout.StrategyHeuristic, res.Strategy)
}

func TestFormatter_NothingRecognized(t *testing.T) {
	res := layout.NewFormatter(layout.DefaultOptions()).Select(port.RecognitionOutput{Text: " \n\t "})

	assert.Equal(t, "", res.Text)
	assert.Equal(t, layout.StrategyEmpty, res.Strategy)
}

func TestFormatter_NonEmptyRawNeverEmpty(t *testing.T) {
	f := layout.NewFormatter(layout.DefaultOptions())
	inputs := []string{"x", "  x  ", "\n\nx", "a\tb", "a  b", "1 2 3 4 5 6", "\r\n\r\nreceipt\r\n", "."}

	for _, in := range inputs {
		assert.NotEmpty(t, f.Format(port.RecognitionOutput{Text: in}), "input %q", in)
	}
}

func TestFormatter_Deterministic(t *testing.T) {
	out := port.RecognitionOutput{Text: "ignored", Words: gridTokens()}
	f := layout.NewFormatter(layout.DefaultOptions())

	first := f.Format(out)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, f.Format(out))
	}
	assert.Equal(t, first, layout.Format(out))
}

func TestFormatter_EveryTokenOnceInGeometricOrder(t *testing.T) {
	tokens := gridTokens()

	got := layout.Format(port.RecognitionOutput{Words: tokens})

	expected := make([]domain.Token, len(tokens))
	copy(expected, tokens)
	sort.SliceStable(expected, func(i, j int) bool {
		ki, kj := layout.RowKey(expected[i].BBox.Y0, 10), layout.RowKey(expected[j].BBox.Y0, 10)
		if ki != kj {
			return ki < kj
		}
		return expected[i].BBox.X0 < expected[j].BBox.X0
	})
	want := make([]string, 0, len(expected))
	for _, e := range expected {
		want = append(want, e.Text)
	}

	require.Equal(t, want, strings.Fields(got))
}

func TestFormatter_ZeroOptionsUseDefaults(t *testing.T) {
	out := port.RecognitionOutput{Words: gridTokens()}

	assert.Equal(t, layout.Format(out), layout.NewFormatter(layout.Options{}).Format(out))
}

// gridTokens builds a shuffled 4x5 grid with some vertical jitter.
func gridTokens() []domain.Token {
	var tokens []domain.Token
	for r := 3; r >= 0; r-- {
		for c := 4; c >= 0; c-- {
			jitter := (r + c) % 3
			tokens = append(tokens, domain.Token{
				Text: fmt.Sprintf("r%dc%d", r, c),
				BBox: domain.BBox{X0: c*120 + jitter, Y0: r*40 + jitter, X1: c*120 + 60, Y1: r*40 + 15},
			})
		}
	}
	return tokens
}
