package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/port"
)

type ocrRecordRepo struct {
	db *sqlx.DB
}

// NewOcrRecordRepo creates a new PostgreSQL-backed OcrRecordRepository.
func NewOcrRecordRepo(db *sqlx.DB) port.OcrRecordRepository {
	return &ocrRecordRepo{db: db}
}

func (r *ocrRecordRepo) Create(ctx context.Context, rec *domain.OcrRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO ocr_records
		(id, user_id, image_path, status, language, extracted_text, confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.ImagePath, rec.Status, rec.Language,
		rec.ExtractedText, rec.Confidence, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return &domain.PersistenceError{Op: "ocrRecordRepo.Create", Err: err}
	}
	return nil
}

func (r *ocrRecordRepo) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.OcrRecord, error) {
	var rec domain.OcrRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM ocr_records WHERE id = $1 AND user_id = $2", recordID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "ocrRecordRepo.GetByID", Err: err}
	}
	return &rec, nil
}

func (r *ocrRecordRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error) {
	records := []domain.OcrRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM ocr_records
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "ocrRecordRepo.ListByUser", Err: err}
	}
	return records, nil
}

func (r *ocrRecordRepo) Complete(ctx context.Context, userID, recordID uuid.UUID, text string, confidence float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ocr_records
		 SET status = $1, extracted_text = $2, confidence = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6 AND status = $7`,
		domain.OcrStatusCompleted, text, confidence, time.Now().UTC(),
		recordID, userID, domain.OcrStatusProcessing)
	if err != nil {
		return &domain.PersistenceError{Op: "ocrRecordRepo.Complete", Err: err}
	}
	return requireRow(result, "ocrRecordRepo.Complete", domain.ErrInvalidTransition)
}

func (r *ocrRecordRepo) MarkFailed(ctx context.Context, userID, recordID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ocr_records SET status = $1, updated_at = $2
		 WHERE id = $3 AND user_id = $4 AND status = $5`,
		domain.OcrStatusFailed, time.Now().UTC(), recordID, userID, domain.OcrStatusProcessing)
	if err != nil {
		return &domain.PersistenceError{Op: "ocrRecordRepo.MarkFailed", Err: err}
	}
	return requireRow(result, "ocrRecordRepo.MarkFailed", domain.ErrInvalidTransition)
}

func (r *ocrRecordRepo) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM ocr_records WHERE id = $1 AND user_id = $2", recordID, userID)
	if err != nil {
		return &domain.PersistenceError{Op: "ocrRecordRepo.Delete", Err: err}
	}
	return requireRow(result, "ocrRecordRepo.Delete", domain.ErrNotFound)
}

func (r *ocrRecordRepo) ListStale(ctx context.Context, before time.Time) ([]domain.OcrRecord, error) {
	records := []domain.OcrRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM ocr_records
		 WHERE status = $1 AND created_at < $2
		 ORDER BY created_at`, domain.OcrStatusProcessing, before.UTC())
	if err != nil {
		return nil, &domain.PersistenceError{Op: "ocrRecordRepo.ListStale", Err: err}
	}
	return records, nil
}

// requireRow returns missing when the statement touched no row.
func requireRow(result sql.Result, op string, missing error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return &domain.PersistenceError{Op: op, Err: err}
	}
	if rows == 0 {
		return missing
	}
	return nil
}
