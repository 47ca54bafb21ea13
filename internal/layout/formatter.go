package layout

import (
	"strings"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/port"
)

// Strategy names the path that produced a formatted result.
type Strategy string

const (
	StrategyGeometry  Strategy = "geometry"
	StrategyHeuristic Strategy = "heuristic"
	StrategyRaw       Strategy = "raw"
	StrategyEmpty     Strategy = "empty"
)

// Result is a formatted rendering and how it was obtained.
type Result struct {
	Text     string
	Strategy Strategy
}

// Formatter picks the best rendering for a recognizer result.
type Formatter struct {
	opts Options
}

// NewFormatter creates a Formatter with the given tuning.
func NewFormatter(opts Options) *Formatter {
	return &Formatter{opts: opts.normalized()}
}

// Options returns the effective tuning.
func (f *Formatter) Options() Options {
	return f.opts
}

// Select formats out, preferring token geometry, then the plain-text
// heuristic, then the raw text. The result is empty only when the recognizer
// returned no text at all.
func (f *Formatter) Select(out port.RecognitionOutput) Result {
	raw := strings.TrimSpace(out.Text)
	tokens := usableTokens(out.Words)

	var res Result
	switch {
	case len(tokens) > 0:
		res = Result{Text: RenderRows(Cluster(tokens, f.opts.BandHeight), f.opts), Strategy: StrategyGeometry}
	case raw != "":
		res = Result{Text: FormatPlainText(raw, f.opts), Strategy: StrategyHeuristic}
	default:
		return Result{Strategy: StrategyEmpty}
	}

	if res.Text == "" && raw != "" {
		return Result{Text: raw, Strategy: StrategyRaw}
	}
	return res
}

// Format returns only the text of Select.
func (f *Formatter) Format(out port.RecognitionOutput) string {
	return f.Select(out).Text
}

// Format formats out with DefaultOptions.
func Format(out port.RecognitionOutput) string {
	return NewFormatter(DefaultOptions()).Format(out)
}

// usableTokens drops tokens whose text is blank; they carry nothing to render.
func usableTokens(words []domain.Token) []domain.Token {
	tokens := make([]domain.Token, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
