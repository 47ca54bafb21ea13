package tesseract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log"
	"os"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/port"
)

func TestTokensFromBoxes(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(0, 0, 35, 10), Word: "Total", Confidence: 90},
		{Box: image.Rect(100, 1, 135, 11), Word: "12.50", Confidence: 80},
	}

	tokens, conf := tokensFromBoxes(boxes)

	require.Len(t, tokens, 2)
	assert.Equal(t, domain.Token{Text: "Total", BBox: domain.BBox{X0: 0, Y0: 0, X1: 35, Y1: 10}}, tokens[0])
	assert.Equal(t, 100, tokens[1].BBox.X0)
	assert.Equal(t, 1, tokens[1].BBox.Y0)
	assert.InDelta(t, 85.0, conf, 0.0001)
}

func TestTokensFromBoxes_Empty(t *testing.T) {
	tokens, conf := tokensFromBoxes(nil)

	assert.Nil(t, tokens)
	assert.Equal(t, 0.0, conf)
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0.0, clampConfidence(-1))
	assert.Equal(t, 100.0, clampConfidence(120))
	assert.Equal(t, 42.5, clampConfidence(42.5))
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"eng", "deu"}, splitLanguages("eng+deu", "eng"))
	assert.Equal(t, []string{"fra"}, splitLanguages("  ", "fra"))
	assert.Equal(t, []string{"eng"}, splitLanguages("+", ""))
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(&config.OCRConfig{})

	assert.Equal(t, "tesseract", e.Name())
	assert.Equal(t, domain.DefaultLanguage, e.language)
}

func TestRecognize_RejectsEmptyImage(t *testing.T) {
	e := NewEngine(&config.OCRConfig{Language: "eng"})

	_, err := e.Recognize(context.Background(), port.RecognitionInput{})

	assert.Error(t, err)
}

func TestRecognize_CanceledContext(t *testing.T) {
	e := NewEngine(&config.OCRConfig{Language: "eng"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Recognize(ctx, port.RecognitionInput{Image: []byte{1}})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestApplyWordBoxes(t *testing.T) {
	out := &port.RecognitionOutput{Text: "Total 12.50"}

	applyWordBoxes(out, []gosseract.BoundingBox{
		{Box: image.Rect(0, 0, 35, 10), Word: "Total", Confidence: 70},
	}, nil)

	require.Len(t, out.Words, 1)
	assert.Equal(t, 70.0, out.Confidence)
}

func TestApplyWordBoxes_ErrorLoggedAndTextKept(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	out := &port.RecognitionOutput{Text: "Total 12.50"}

	applyWordBoxes(out, nil, errors.New("iterator unavailable"))

	assert.Empty(t, out.Words)
	assert.Equal(t, 0.0, out.Confidence)
	assert.Equal(t, "Total 12.50", out.Text)
	assert.Contains(t, buf.String(), "tesseract.Recognize: word boxes unavailable: iterator unavailable")
}
