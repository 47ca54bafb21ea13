package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/layout"
)

func tok(text string, x0, y0 int) domain.Token {
	return domain.Token{Text: text, BBox: domain.BBox{X0: x0, Y0: y0, X1: x0 + 7*len(text), Y1: y0 + 12}}
}

func TestCluster_Empty(t *testing.T) {
	assert.Empty(t, layout.Cluster(nil, 10))
	assert.Empty(t, layout.Cluster([]domain.Token{}, 10))
}

func TestCluster_CloseTokensShareRow(t *testing.T) {
	rows := layout.Cluster([]domain.Token{tok("a", 0, 0), tok("b", 50, 3)}, 10)

	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Tokens, 2)
}

func TestCluster_DistantTokensSplitRows(t *testing.T) {
	rows := layout.Cluster([]domain.Token{tok("a", 0, 0), tok("b", 0, 25)}, 10)

	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Tokens[0].Text)
	assert.Equal(t, "b", rows[1].Tokens[0].Text)
}

func TestCluster_RowsOrderedTopToBottom(t *testing.T) {
	rows := layout.Cluster([]domain.Token{
		tok("third", 0, 40),
		tok("first", 0, 0),
		tok("second", 0, 21),
	}, 10)

	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 2, 4}, []int{rows[0].Key, rows[1].Key, rows[2].Key})
	assert.Equal(t, "first", rows[0].Tokens[0].Text)
	assert.Equal(t, "second", rows[1].Tokens[0].Text)
	assert.Equal(t, "third", rows[2].Tokens[0].Text)
}

func TestCluster_KeepsInputOrderWithinRow(t *testing.T) {
	rows := layout.Cluster([]domain.Token{tok("z", 300, 1), tok("y", 100, 2), tok("x", 0, 0)}, 10)

	require.Len(t, rows, 1)
	texts := []string{rows[0].Tokens[0].Text, rows[0].Tokens[1].Text, rows[0].Tokens[2].Text}
	assert.Equal(t, []string{"z", "y", "x"}, texts)
}

func TestCluster_BandBoundaryApproximation(t *testing.T) {
	// 4/10 rounds to 0 and 7/10 rounds to 1: three pixels apart, two bands.
	rows := layout.Cluster([]domain.Token{tok("a", 0, 4), tok("b", 0, 7)}, 10)

	assert.Len(t, rows, 2)
}

func TestCluster_CustomBandHeight(t *testing.T) {
	tokens := []domain.Token{tok("a", 0, 0), tok("b", 0, 25)}

	assert.Len(t, layout.Cluster(tokens, 100), 1)
}

func TestRowKey(t *testing.T) {
	assert.Equal(t, 0, layout.RowKey(0, 10))
	assert.Equal(t, 0, layout.RowKey(4, 10))
	assert.Equal(t, 1, layout.RowKey(5, 10))
	assert.Equal(t, 3, layout.RowKey(25, 10))
	assert.Equal(t, 1, layout.RowKey(5, 0), "non-positive band height falls back to the default")
}
