package handler

import (
	"github.com/google/uuid"

	"ocrdesk/internal/domain"
)

// Swagger type definitions for API documentation.

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"reader"`
	Email    string `json:"email" binding:"required" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ProcessResponse is returned by POST /ocr/process.
type ProcessResponse struct {
	RecordID   uuid.UUID        `json:"record_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status     domain.OcrStatus `json:"status" example:"completed"`
	Language   string           `json:"language" example:"eng"`
	Text       string           `json:"text" example:"Total   12.50"`
	Confidence float64          `json:"confidence" example:"91.5"`
	Layout     string           `json:"layout" example:"geometry"`
	ImageURL   string           `json:"image_url,omitempty"`
}

// HistoryResponse wraps a user's records.
type HistoryResponse struct {
	Records []domain.OcrRecord `json:"records"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"record deleted"`
}

// Response is the success envelope as shown in API docs.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// ErrorResponseBody is the error envelope as shown in API docs.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
