package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// JPEGQuality is used for every JPEG export.
const JPEGQuality = 95

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Extensions lists the file extensions offered by save dialogs.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".pdf"}
}

// FormatFromPath picks the format from the file extension. A path without
// an extension is exported as PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".pdf":
		return PDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case PDF:
		return encodePDF(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
