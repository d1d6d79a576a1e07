package image

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apierrors "ocr-gateway/internal/platform/errors"
)

// Decode turns compressed image bytes into a Decoded raster. The container
// format is recognized by content, never by filename. Malformed bytes and
// zero-dimension rasters are ordinary classified outcomes, not panics.
func Decode(data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, apierrors.New(apierrors.KindUnsupportedFormat, "decode", "Invalid image format")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apierrors.New(apierrors.KindUnsupportedFormat, "decode", "Invalid image format")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, apierrors.New(apierrors.KindUnsupportedFormat, "decode", "Invalid image format")
	}

	pixels, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apierrors.New(apierrors.KindUnsupportedFormat, "decode", "Invalid image format")
	}

	return &Decoded{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Pixels: pixels,
		Raw:    data,
	}, nil
}
