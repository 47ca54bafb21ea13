// Package tesseract implements port.Recognizer on top of the Tesseract engine.
package tesseract

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/port"
)

const engineName = "tesseract"

// Engine recognizes text with a fresh gosseract client per call.
type Engine struct {
	clientFactory func() *gosseract.Client
	tessdata      string
	pageSegMode   int
	language      string
}

// NewEngine constructs a Tesseract-backed recognizer from OCR settings.
func NewEngine(cfg *config.OCRConfig) *Engine {
	lang := cfg.Language
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	return &Engine{
		clientFactory: gosseract.NewClient,
		tessdata:      cfg.TessdataPrefix,
		pageSegMode:   cfg.PageSegMode,
		language:      lang,
	}
}

func (e *Engine) Name() string { return engineName }

// Recognize runs OCR on one image and returns the page text, mean word
// confidence and word tokens with their bounding boxes.
func (e *Engine) Recognize(ctx context.Context, input port.RecognitionInput) (*port.RecognitionOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(input.Image) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	c := e.clientFactory()
	defer c.Close()

	if e.tessdata != "" {
		c.TessdataPrefix = e.tessdata
	}
	if err := c.SetLanguage(splitLanguages(input.Language, e.language)...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if e.pageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.pageSegMode)); err != nil {
			return nil, fmt.Errorf("set page seg mode: %w", err)
		}
	}
	if err := c.SetImageFromBytes(input.Image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &port.RecognitionOutput{Text: text}
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	applyWordBoxes(out, boxes, err)
	return out, nil
}

// applyWordBoxes fills tokens and confidence from word boxes. Without boxes the
// output keeps only the text and layout falls back to the plain-text heuristic.
func applyWordBoxes(out *port.RecognitionOutput, boxes []gosseract.BoundingBox, err error) {
	if err != nil {
		log.Printf("tesseract.Recognize: word boxes unavailable: %v", err)
		return
	}
	out.Words, out.Confidence = tokensFromBoxes(boxes)
}

// tokensFromBoxes converts word boxes to tokens and averages their confidence.
func tokensFromBoxes(boxes []gosseract.BoundingBox) ([]domain.Token, float64) {
	if len(boxes) == 0 {
		return nil, 0
	}
	tokens := make([]domain.Token, 0, len(boxes))
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
		tokens = append(tokens, domain.Token{
			Text: b.Word,
			BBox: domain.BBox{
				X0: b.Box.Min.X,
				Y0: b.Box.Min.Y,
				X1: b.Box.Max.X,
				Y1: b.Box.Max.Y,
			},
		})
	}
	return tokens, clampConfidence(sum / float64(len(boxes)))
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}

// splitLanguages turns "eng+deu" into tesseract language codes.
func splitLanguages(requested, fallback string) []string {
	lang := strings.TrimSpace(requested)
	if lang == "" {
		lang = fallback
	}
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return []string{domain.DefaultLanguage}
	}
	return langs
}
