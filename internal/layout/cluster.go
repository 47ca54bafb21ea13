package layout

import (
	"sort"

	"ocrdesk/internal/domain"
)

// Row is a group of tokens that fell into the same vertical band.
type Row struct {
	Key    int
	Tokens []domain.Token
}

// RowKey returns the band a token with the given top edge belongs to.
func RowKey(y0, bandHeight int) int {
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}
	return roundHalfUp(float64(y0) / float64(bandHeight))
}

// Cluster buckets tokens by RowKey and returns the rows top to bottom.
// Tokens keep their input order inside a row.
//
// This is quantization, not line segmentation: two tokens a few pixels apart
// can straddle a band boundary and end up on different rows.
func Cluster(tokens []domain.Token, bandHeight int) []Row {
	if len(tokens) == 0 {
		return nil
	}

	byKey := make(map[int][]domain.Token)
	for _, t := range tokens {
		key := RowKey(t.BBox.Y0, bandHeight)
		byKey[key] = append(byKey[key], t)
	}

	keys := make([]int, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Row{Key: k, Tokens: byKey[k]})
	}
	return rows
}
