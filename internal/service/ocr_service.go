package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/export"
	"ocrdesk/internal/imaging"
	"ocrdesk/internal/layout"
	"ocrdesk/internal/port"
)

// Tesseract language codes, optionally combined with "+" (e.g. "eng+chi_sim").
var languagePattern = regexp.MustCompile(`^[a-z]{3}(_[a-z]+)?(\+[a-z]{3}(_[a-z]+)?)*$`)

// ProcessInput is the DTO for an OCR request.
type ProcessInput struct {
	UserID   uuid.UUID
	File     multipart.File
	Header   *multipart.FileHeader
	Language string
}

// ProcessResult is the outcome of a completed OCR job.
type ProcessResult struct {
	Record     *domain.OcrRecord
	Text       string
	Confidence float64
	Strategy   layout.Strategy
	ImageURL   string
}

// HistoryEntry is a record together with a short-lived link to its image.
type HistoryEntry struct {
	domain.OcrRecord
	ImageURL string `json:"image_url,omitempty"`
}

// ExportFile is a rendered history download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// OCRService runs OCR jobs and serves a user's history.
type OCRService interface {
	Process(ctx context.Context, input ProcessInput) (*ProcessResult, error)
	History(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error)
	Get(ctx context.Context, userID, recordID uuid.UUID) (*HistoryEntry, error)
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
	Export(ctx context.Context, userID uuid.UUID, format export.Format) (*ExportFile, error)
}

type ocrService struct {
	records    RecordService
	store      port.ImageStore
	recognizer port.Recognizer
	formatter  *layout.Formatter
	upload     *config.UploadConfig
	language   string
}

// NewOCRService creates a new OCRService implementation.
func NewOCRService(
	records RecordService,
	store port.ImageStore,
	recognizer port.Recognizer,
	formatter *layout.Formatter,
	upload *config.UploadConfig,
	defaultLanguage string,
) OCRService {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguage
	}
	return &ocrService{
		records:    records,
		store:      store,
		recognizer: recognizer,
		formatter:  formatter,
		upload:     upload,
		language:   defaultLanguage,
	}
}

// ImageKey returns the storage key for a user's uploaded image.
func ImageKey(userID, imageID uuid.UUID, ext string) string {
	return fmt.Sprintf("users/%s/images/%s.%s", userID, imageID, ext)
}

func (s *ocrService) Process(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	if input.UserID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "user_id", Message: "an owning user is required"}
	}
	lang := strings.TrimSpace(input.Language)
	if lang == "" {
		lang = s.language
	}
	if !languagePattern.MatchString(lang) {
		return nil, &domain.ValidationError{Field: "language", Message: fmt.Sprintf("unsupported language code %q", lang)}
	}

	img, err := s.readImage(input)
	if err != nil {
		return nil, err
	}

	key := ImageKey(input.UserID, uuid.New(), img.Extension())
	log.Printf("ocrService.Process: storing %s (%s, %d bytes) for user %s",
		input.Header.Filename, img.ContentType, len(img.Data), input.UserID)

	if _, err := s.store.Put(ctx, port.PutObjectInput{
		Key:         key,
		Body:        bytes.NewReader(img.Data),
		ContentType: img.ContentType,
		Size:        int64(len(img.Data)),
	}); err != nil {
		log.Printf("ocrService.Process: image upload failed for user %s: %v", input.UserID, err)
		return nil, domain.ErrUploadFailed
	}

	rec, err := s.records.Begin(ctx, BeginInput{UserID: input.UserID, ImagePath: key, Language: lang})
	if err != nil {
		s.removeImage(ctx, key)
		return nil, err
	}

	// Once the record exists the job runs to a terminal write even if the caller goes away.
	jobCtx := context.WithoutCancel(ctx)

	out, err := s.recognizer.Recognize(jobCtx, port.RecognitionInput{Image: img.Data, Language: lang})
	if err != nil {
		log.Printf("ocrService.Process: recognition failed for record %s: %v", rec.ID, err)
		s.records.MarkFailed(jobCtx, rec)
		return nil, &domain.RecognitionError{Engine: s.recognizer.Name(), Err: err}
	}

	formatted := s.formatter.Select(*out)
	done, err := s.records.Complete(jobCtx, rec, formatted.Text, out.Confidence)
	if err != nil {
		log.Printf("ocrService.Process: completing record %s failed: %v", rec.ID, err)
		s.records.MarkFailed(jobCtx, rec)
		return nil, err
	}

	log.Printf("ocrService.Process: record %s completed via %s layout (%d chars, confidence %.1f)",
		done.ID, formatted.Strategy, len(formatted.Text), *done.Confidence)

	return &ProcessResult{
		Record:     done,
		Text:       formatted.Text,
		Confidence: *done.Confidence,
		Strategy:   formatted.Strategy,
		ImageURL:   s.imageURL(ctx, key),
	}, nil
}

func (s *ocrService) History(ctx context.Context, userID uuid.UUID) ([]domain.OcrRecord, error) {
	return s.records.ListForUser(ctx, userID)
}

func (s *ocrService) Get(ctx context.Context, userID, recordID uuid.UUID) (*HistoryEntry, error) {
	rec, err := s.records.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	return &HistoryEntry{OcrRecord: *rec, ImageURL: s.imageURL(ctx, rec.ImagePath)}, nil
}

func (s *ocrService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	rec, err := s.records.GetByID(ctx, userID, recordID)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, userID, recordID); err != nil {
		return err
	}
	s.removeImage(ctx, rec.ImagePath)
	return nil
}

func (s *ocrService) Export(ctx context.Context, userID uuid.UUID, format export.Format) (*ExportFile, error) {
	records, err := s.records.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case export.FormatXLSX:
		err = export.WriteXLSX(&buf, records)
	default:
		format = export.FormatCSV
		err = export.WriteCSV(&buf, records)
	}
	if err != nil {
		return nil, fmt.Errorf("ocrService.Export: %w", err)
	}

	return &ExportFile{
		Name:        export.BuildFilename(format, time.Now()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func (s *ocrService) readImage(input ProcessInput) (*imaging.Image, error) {
	if input.File == nil || input.Header == nil {
		return nil, &domain.ValidationError{Field: "image", Message: "no image uploaded"}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.upload.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	return imaging.Normalize(data)
}

func (s *ocrService) imageURL(ctx context.Context, key string) string {
	url, err := s.store.PresignGet(ctx, key)
	if err != nil {
		log.Printf("ocrService: presigning %s failed: %v", key, err)
		return ""
	}
	return url
}

func (s *ocrService) removeImage(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Printf("ocrService: removing image %s failed: %v", key, err)
	}
}
