package port

import (
	"context"

	"ocrdesk/internal/domain"
)

// RecognitionInput carries one image for text recognition.
type RecognitionInput struct {
	Image    []byte
	Language string
}

// RecognitionOutput is the raw recognizer result. Words is empty when the
// engine could not provide geometry; Text may still carry the flat text.
// Confidence is on a 0-100 scale.
type RecognitionOutput struct {
	Text       string
	Confidence float64
	Words      []domain.Token
}

// Recognizer abstracts the OCR engine.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, input RecognitionInput) (*RecognitionOutput, error)
}
