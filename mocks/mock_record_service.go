package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/service"
)

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Begin(ctx context.Context, input service.BeginInput) (*domain.OcrRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OcrRecord), args.Error(1)
}

func (m *MockRecordService) Complete(ctx context.Context, rec *domain.OcrRecord, text string, confidence float64) (*domain.OcrRecord, error) {
	args := m.Called(ctx, rec, text, confidence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OcrRecord), args.Error(1)
}

func (m *MockRecordService) MarkFailed(ctx context.Context, rec *domain.OcrRecord) {
	m.Called(ctx, rec)
}

func (m *MockRecordService) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.OcrRecord, error) {
	args := m.Called(ctx, userID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OcrRecord), args.Error(1)
}

func (m *MockRecordService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OcrRecord), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	args := m.Called(ctx, userID, recordID)
	return args.Error(0)
}
