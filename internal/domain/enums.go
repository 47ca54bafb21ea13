package domain

// ImageType represents the image formats accepted for recognition.
type ImageType string

const (
	ImageTypePNG  ImageType = "png"
	ImageTypeJPG  ImageType = "jpg"
	ImageTypeTIFF ImageType = "tiff"
	ImageTypeBMP  ImageType = "bmp"
	ImageTypeWEBP ImageType = "webp"
)

// AllowedImageTypes maps ImageType to its MIME content type.
var AllowedImageTypes = map[ImageType]string{
	ImageTypePNG:  "image/png",
	ImageTypeJPG:  "image/jpeg",
	ImageTypeTIFF: "image/tiff",
	ImageTypeBMP:  "image/bmp",
	ImageTypeWEBP: "image/webp",
}

// AllowedExtensions maps file extensions (without dot) to ImageType.
var AllowedExtensions = map[string]ImageType{
	"png":  ImageTypePNG,
	"jpg":  ImageTypeJPG,
	"jpeg": ImageTypeJPG,
	"tif":  ImageTypeTIFF,
	"tiff": ImageTypeTIFF,
	"bmp":  ImageTypeBMP,
	"webp": ImageTypeWEBP,
}

// OcrStatus represents the lifecycle of an OCR record.
// Allowed transitions: processing -> completed, processing -> failed.
type OcrStatus string

const (
	OcrStatusProcessing OcrStatus = "processing"
	OcrStatusCompleted  OcrStatus = "completed"
	OcrStatusFailed     OcrStatus = "failed"
)

// IsTerminal reports whether no further transition may leave the status.
func (s OcrStatus) IsTerminal() bool {
	return s == OcrStatusCompleted || s == OcrStatusFailed
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OcrStatus) CanTransitionTo(next OcrStatus) bool {
	return s == OcrStatusProcessing && next.IsTerminal()
}

// DefaultLanguage is the recognition language used when none is requested.
const DefaultLanguage = "eng"
