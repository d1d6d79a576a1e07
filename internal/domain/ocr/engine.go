// Package ocr defines the inference engine contract consumed by the HTTP
// handlers and its tesseract-backed implementation.
package ocr

import (
	"context"
	"encoding/json"

	domainimage "ocr-gateway/internal/domain/image"
)

// Result codes on the wire. 100 carries recognized lines, 101 means the
// image decoded fine but no text was found.
const (
	CodeOK     = 100
	CodeNoText = 101
)

// Box is the four corner points of a recognized region, clockwise from the
// top-left, each as [x, y].
type Box [4][2]int

// Line is one recognized text region.
type Line struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Box   Box     `json:"box"`
}

// Result is the JSON-shaped recognition outcome.
type Result struct {
	Code int    `json:"code"`
	Data []Line `json:"data"`
}

// Engine is the inference collaborator. One long-lived instance is shared
// by all handlers; implementations must be safe for concurrent Recognize
// calls. The gateway treats the returned payload as opaque JSON.
type Engine interface {
	Recognize(ctx context.Context, img *domainimage.Decoded) (json.RawMessage, error)
	Close() error
}
