package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ocrdesk/internal/domain"
)

// MockOcrRecordRepo is a mock implementation of port.OcrRecordRepository.
type MockOcrRecordRepo struct {
	mock.Mock
}

func (m *MockOcrRecordRepo) Create(ctx context.Context, rec *domain.OcrRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockOcrRecordRepo) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.OcrRecord, error) {
	args := m.Called(ctx, userID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OcrRecord), args.Error(1)
}

func (m *MockOcrRecordRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OcrRecord), args.Error(1)
}

func (m *MockOcrRecordRepo) Complete(ctx context.Context, userID, recordID uuid.UUID, text string, confidence float64) error {
	args := m.Called(ctx, userID, recordID, text, confidence)
	return args.Error(0)
}

func (m *MockOcrRecordRepo) MarkFailed(ctx context.Context, userID, recordID uuid.UUID) error {
	args := m.Called(ctx, userID, recordID)
	return args.Error(0)
}

func (m *MockOcrRecordRepo) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	args := m.Called(ctx, userID, recordID)
	return args.Error(0)
}

func (m *MockOcrRecordRepo) ListStale(ctx context.Context, before time.Time) ([]domain.OcrRecord, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OcrRecord), args.Error(1)
}
