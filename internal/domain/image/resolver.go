package image

import (
	"context"
	"encoding/base64"
	"io"
	"mime/multipart"

	"ocr-gateway/internal/platform/config"
	apierrors "ocr-gateway/internal/platform/errors"
	"ocr-gateway/internal/platform/logging"
)

// Resolver turns the three ingestion shapes into one canonical Decoded
// image. Every failure is classified; size ceilings are enforced before any
// decode is attempted.
type Resolver struct {
	maxBytes int64
	fetcher  *Fetcher
	logger   *logging.Logger
}

// NewResolver constructs the acquisition funnel. maxBytes <= 0 falls back
// to the payload ceiling.
func NewResolver(maxBytes int64, fetcher *Fetcher, logger *logging.Logger) *Resolver {
	if maxBytes <= 0 {
		maxBytes = config.MaxPayloadBytes
	}
	return &Resolver{
		maxBytes: maxBytes,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// ResolveUpload handles the multipart file path. A nil header means the
// form carried no image field.
func (r *Resolver) ResolveUpload(header *multipart.FileHeader) (*Decoded, error) {
	const op = "resolve_upload"

	if header == nil {
		return nil, apierrors.New(apierrors.KindMissingInput, op,
			"No image file provided. Use 'image' field in form data.")
	}

	if header.Size > r.maxBytes {
		return nil, apierrors.New(apierrors.KindPayloadTooLarge, op, "File size exceeds 10MB limit")
	}

	file, err := header.Open()
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindMissingInput, op, "Failed to read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, r.maxBytes+1))
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindMissingInput, op, "Failed to read uploaded file", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, apierrors.New(apierrors.KindPayloadTooLarge, op, "File size exceeds 10MB limit")
	}

	r.logger.Info("Received file: %s (%d bytes)", header.Filename, len(data))

	decoded, err := Decode(data)
	if err != nil {
		return nil, apierrors.New(apierrors.KindUnsupportedFormat, op,
			"Invalid image format. Supported: JPEG, PNG, BMP, TIFF")
	}

	r.logger.Info("Image decoded: %dx%d", decoded.Width, decoded.Height)
	return decoded, nil
}

// ResolveBase64 handles the JSON base64 path. Only the standard alphabet
// with canonical padding is accepted.
func (r *Resolver) ResolveBase64(encoded string) (*Decoded, error) {
	const op = "resolve_base64"

	if encoded == "" {
		return nil, apierrors.New(apierrors.KindMissingInput, op, "Missing 'image' field in JSON body")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apierrors.New(apierrors.KindInvalidEncoding, op, "Invalid base64 encoding")
	}

	if int64(len(data)) > r.maxBytes {
		return nil, apierrors.New(apierrors.KindPayloadTooLarge, op, "File size exceeds 10MB limit")
	}

	return Decode(data)
}

// ResolveURL handles the remote-URL path: fetch through the transport
// branch, cap the body, then decode.
func (r *Resolver) ResolveURL(ctx context.Context, rawURL string) (*Decoded, error) {
	const op = "resolve_url"

	if rawURL == "" {
		return nil, apierrors.New(apierrors.KindMissingInput, op, "Missing 'url' field in JSON body")
	}

	r.logger.Info("Fetching image from URL: %s", rawURL)

	data, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	decoded, err := Decode(data)
	if err != nil {
		return nil, apierrors.New(apierrors.KindUnsupportedFormat, op,
			"Failed to download or decode image from URL")
	}

	r.logger.Info("Image downloaded: %dx%d", decoded.Width, decoded.Height)
	return decoded, nil
}
