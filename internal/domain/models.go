package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns OCR records.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// OcrRecord is one OCR job and its outcome. It is owned exclusively by UserID.
// ExtractedText and Confidence are set only once Status is OcrStatusCompleted.
type OcrRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	ImagePath     string    `db:"image_path" json:"image_path"`
	Status        OcrStatus `db:"status" json:"status"`
	Language      string    `db:"language" json:"language"`
	ExtractedText *string   `db:"extracted_text" json:"extracted_text"`
	Confidence    *float64  `db:"confidence" json:"confidence"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// BBox is a token bounding box in pixel units, origin at the top-left corner.
type BBox struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Token is one recognized word or fragment with its position on the image.
type Token struct {
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`
}
