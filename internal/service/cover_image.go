package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/travelmada/internal/model"
)

var (
	// ErrUnsupportedImage is returned for uploads that cannot be decoded.
	ErrUnsupportedImage = errors.New("unsupported image format")
	// ErrImageTooLarge is returned for uploads above MaxCoverUploadSize.
	ErrImageTooLarge = errors.New("image is too large")
)

const (
	// MaxCoverUploadSize bounds the accepted upload.
	MaxCoverUploadSize = 10 << 20
	maxCoverWidth      = 1600
	coverJPEGQuality   = 82
)

// ProcessCoverImage decodes an uploaded image, downscales it to the cover
// width and re-encodes it as an embedded JPEG.
func ProcessCoverImage(src io.Reader) (model.ImageRef, error) {
	data, err := io.ReadAll(io.LimitReader(src, MaxCoverUploadSize+1))
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxCoverUploadSize {
		return model.ImageRef{}, ErrImageTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: coverJPEGQuality}); err != nil {
		return model.ImageRef{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return model.EmbeddedImage("image/jpeg", buf.Bytes()), nil
}
