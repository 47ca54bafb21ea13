package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ocrdesk/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OcrRecordRepository defines the contract for OCR record persistence.
// Every method takes the owning userID and filters on (id, user_id), so a
// record owned by another user behaves exactly like a missing one.
type OcrRecordRepository interface {
	Create(ctx context.Context, rec *domain.OcrRecord) error
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.OcrRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error)
	// Complete moves a processing record to completed. It returns
	// domain.ErrInvalidTransition when no processing record matched.
	Complete(ctx context.Context, userID, recordID uuid.UUID, text string, confidence float64) error
	// MarkFailed moves a processing record to failed. It returns
	// domain.ErrInvalidTransition when no processing record matched.
	MarkFailed(ctx context.Context, userID, recordID uuid.UUID) error
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
	// ListStale returns processing records created before the cutoff, across all users.
	ListStale(ctx context.Context, before time.Time) ([]domain.OcrRecord, error)
}
