package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/port"
)

// BeginInput is the DTO for starting an OCR job record.
type BeginInput struct {
	UserID    uuid.UUID
	ImagePath string
	Language  string
}

// RecordService owns the lifecycle of OCR job records.
// Allowed transitions: processing -> completed, processing -> failed.
type RecordService interface {
	Begin(ctx context.Context, input BeginInput) (*domain.OcrRecord, error)
	Complete(ctx context.Context, rec *domain.OcrRecord, text string, confidence float64) (*domain.OcrRecord, error)
	MarkFailed(ctx context.Context, rec *domain.OcrRecord)
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.OcrRecord, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error)
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
}

type recordService struct {
	repo port.OcrRecordRepository
}

// NewRecordService creates a new RecordService implementation.
func NewRecordService(repo port.OcrRecordRepository) RecordService {
	return &recordService{repo: repo}
}

func (s *recordService) Begin(ctx context.Context, input BeginInput) (*domain.OcrRecord, error) {
	if input.UserID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "user_id", Message: "an owning user is required"}
	}
	lang := input.Language
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	rec := &domain.OcrRecord{
		ID:        uuid.New(),
		UserID:    input.UserID,
		ImagePath: input.ImagePath,
		Status:    domain.OcrStatusProcessing,
		Language:  lang,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		log.Printf("recordService.Begin: failed to create record for user %s: %v", input.UserID, err)
		return nil, err
	}
	return rec, nil
}

func (s *recordService) Complete(ctx context.Context, rec *domain.OcrRecord, text string, confidence float64) (*domain.OcrRecord, error) {
	if !rec.Status.CanTransitionTo(domain.OcrStatusCompleted) {
		return nil, fmt.Errorf("completing record %s in status %s: %w", rec.ID, rec.Status, domain.ErrInvalidTransition)
	}
	confidence = clampConfidence(confidence)

	if err := s.repo.Complete(ctx, rec.UserID, rec.ID, text, confidence); err != nil {
		return nil, err
	}

	done := *rec
	done.Status = domain.OcrStatusCompleted
	done.ExtractedText = &text
	done.Confidence = &confidence
	return &done, nil
}

// MarkFailed is the compensating write after a failed recognition. It never
// reports an error; a failed write leaves the record in processing.
func (s *recordService) MarkFailed(ctx context.Context, rec *domain.OcrRecord) {
	if !rec.Status.CanTransitionTo(domain.OcrStatusFailed) {
		log.Printf("recordService.MarkFailed: record %s already %s, skipping", rec.ID, rec.Status)
		return
	}
	if err := s.repo.MarkFailed(context.WithoutCancel(ctx), rec.UserID, rec.ID); err != nil {
		log.Printf("recordService.MarkFailed: compensating write failed for record %s, left in processing: %v", rec.ID, err)
		return
	}
	rec.Status = domain.OcrStatusFailed
}

func (s *recordService) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.OcrRecord, error) {
	return s.repo.GetByID(ctx, userID, recordID)
}

func (s *recordService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *recordService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	log.Printf("recordService.Delete: deleting record %s for user %s", recordID, userID)
	return s.repo.Delete(ctx, userID, recordID)
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
