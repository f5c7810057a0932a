package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/nfnt/resize"

	"rental-pricing-backend/internal/domain"
)

var ErrUnsupportedImage = errors.New("unsupported image data")

// MaxDimension returns the bounding box edge of a printed image size.
func MaxDimension(size domain.ImageSize) uint {
	switch size {
	case domain.ImageSizeBig:
		return 1024
	case domain.ImageSizeMedium:
		return 128
	default:
		return 64
	}
}

// Normalize decodes an uploaded image and re-encodes it as PNG, shrunk to
// fit the largest printed size.
func Normalize(data []byte) ([]byte, error) {
	return Resize(data, domain.ImageSizeBig)
}

// Resize fits the image into the bounding box of size, keeping its aspect
// ratio, and encodes the result as PNG. Smaller images are not enlarged.
func Resize(data []byte, size domain.ImageSize) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	edge := MaxDimension(size)
	resized := resize.Thumbnail(edge, edge, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
