package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ocrdesk/internal/port"
)

// MockRecognizer is a mock implementation of port.Recognizer.
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRecognizer) Recognize(ctx context.Context, input port.RecognitionInput) (*port.RecognitionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RecognitionOutput), args.Error(1)
}
