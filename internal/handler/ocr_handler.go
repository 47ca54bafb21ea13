package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/export"
	"ocrdesk/internal/service"
)

// OCRHandler handles OCR processing and history endpoints.
type OCRHandler struct {
	ocrService service.OCRService
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(ocrService service.OCRService) *OCRHandler {
	return &OCRHandler{ocrService: ocrService}
}

// Process handles POST /api/v1/ocr/process
// @Summary Recognize text in an image
// @Description Upload an image (PNG, JPG, TIFF, BMP, WebP) and get its text with the layout reconstructed
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to recognize"
// @Param language formData string false "Tesseract language code, e.g. eng or eng+deu" default(eng)
// @Success 201 {object} Response{data=ProcessResponse} "Recognition result"
// @Failure 400 {object} ErrorResponseBody "Missing image or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "Image too large"
// @Failure 500 {object} ErrorResponseBody "Recognition failed"
// @Security BearerAuth
// @Router /ocr/process [post]
func (h *OCRHandler) Process(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.ocrService.Process(c.Request.Context(), service.ProcessInput{
		UserID:   userID,
		File:     file,
		Header:   header,
		Language: c.PostForm("language"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, ProcessResponse{
		RecordID:   result.Record.ID,
		Status:     result.Record.Status,
		Language:   result.Record.Language,
		Text:       result.Text,
		Confidence: result.Confidence,
		Layout:     string(result.Strategy),
		ImageURL:   result.ImageURL,
	})
}

// History handles GET /api/v1/ocr/history
// @Summary List OCR history
// @Description All records of the caller, newest first
// @Tags ocr
// @Produce json
// @Success 200 {object} Response{data=HistoryResponse,meta=ListMeta}
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /ocr/history [get]
func (h *OCRHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.ocrService.History(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if records == nil {
		records = []domain.OcrRecord{}
	}

	RespondList(c, HistoryResponse{Records: records}, len(records))
}

// Get handles GET /api/v1/ocr/history/:id
// @Summary Get one OCR record
// @Tags ocr
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} Response{data=service.HistoryEntry}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Record not found"
// @Security BearerAuth
// @Router /ocr/history/{id} [get]
func (h *OCRHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return
	}

	entry, err := h.ocrService.Get(c.Request.Context(), userID, recordID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Delete handles DELETE /api/v1/ocr/history/:id
// @Summary Delete an OCR record
// @Description Records that do not exist and records of other users both answer 404
// @Tags ocr
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Record not found or not owned"
// @Security BearerAuth
// @Router /ocr/history/{id} [delete]
func (h *OCRHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return
	}

	if err := h.ocrService.Delete(c.Request.Context(), userID, recordID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "record deleted"})
}

// Export handles GET /api/v1/ocr/history/export
// @Summary Download OCR history
// @Tags ocr
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Security BearerAuth
// @Router /ocr/history/export [get]
func (h *OCRHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	file, err := h.ocrService.Export(c.Request.Context(), userID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
