// Package imaging sniffs uploaded images and converts formats the recognizer
// and browsers handle poorly into PNG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"ocrdesk/internal/domain"
)

// Image is a decoded-and-checked upload ready for storage and recognition.
type Image struct {
	Data        []byte
	Type        domain.ImageType
	ContentType string
	Width       int
	Height      int
}

// Extension returns the canonical file extension of the image type.
func (i *Image) Extension() string {
	return string(i.Type)
}

// Normalize validates data as an image of an allowed type. PNG and JPEG pass
// through untouched; TIFF, BMP and WebP are re-encoded as PNG.
func Normalize(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrUnsupportedFileType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, sniff(data))
	}
	b := img.Bounds()

	switch format {
	case "png", "jpeg":
		t := domain.ImageTypePNG
		if format == "jpeg" {
			t = domain.ImageTypeJPG
		}
		return &Image{
			Data:        data,
			Type:        t,
			ContentType: domain.AllowedImageTypes[t],
			Width:       b.Dx(),
			Height:      b.Dy(),
		}, nil
	case "tiff", "bmp", "webp":
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding %s as png: %w", format, err)
		}
		return &Image{
			Data:        buf.Bytes(),
			Type:        domain.ImageTypePNG,
			ContentType: domain.AllowedImageTypes[domain.ImageTypePNG],
			Width:       b.Dx(),
			Height:      b.Dy(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, format)
	}
}

func sniff(data []byte) string {
	return http.DetectContentType(data)
}
