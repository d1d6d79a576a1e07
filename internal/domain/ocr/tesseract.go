package ocr

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	domainimage "ocr-gateway/internal/domain/image"
	"ocr-gateway/internal/platform/config"
	apierrors "ocr-gateway/internal/platform/errors"
	"ocr-gateway/internal/platform/logging"
)

// Tesseract is the gosseract-backed engine. The client is not documented as
// reentrant, so every inference runs inside one critical section.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
	logger *logging.Logger
}

// NewTesseract initializes the long-lived engine instance.
func NewTesseract(cfg config.EngineConfig, logger *logging.Logger) (*Tesseract, error) {
	const op = "engine_init"

	client := gosseract.NewClient()

	if len(cfg.Languages) > 0 {
		if err := client.SetLanguage(cfg.Languages...); err != nil {
			client.Close()
			return nil, apierrors.Wrap(apierrors.KindEngine, op, "set languages", err)
		}
	}
	if cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			client.Close()
			return nil, apierrors.Wrap(apierrors.KindEngine, op, "set page segmentation mode", err)
		}
	}

	logger.Info("OCR engine initialized (languages: %s)", strings.Join(cfg.Languages, "+"))

	return &Tesseract{
		client: client,
		logger: logger,
	}, nil
}

// Recognize runs synchronous inference on the decoded image. There is no
// cancellation once the call is in flight; ctx is only consulted before it
// starts.
func (t *Tesseract) Recognize(ctx context.Context, img *domainimage.Decoded) (json.RawMessage, error) {
	const op = "recognize"

	if img.Empty() {
		return nil, apierrors.New(apierrors.KindEngine, op, "Internal server error: empty image")
	}
	select {
	case <-ctx.Done():
		return nil, apierrors.Wrap(apierrors.KindEngine, op, "Internal server error", ctx.Err())
	default:
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.client.SetImageFromBytes(img.Raw); err != nil {
		return nil, apierrors.Wrap(apierrors.KindEngine, op, "Internal server error", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindEngine, op, "Internal server error", err)
	}

	result := buildResult(strings.TrimSpace(text), t.lineBoxes())

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindEngine, op, "Internal server error", err)
	}
	return payload, nil
}

// lineBoxes extracts per-line regions with confidences. Box extraction is
// best-effort; a failure degrades to a plain-text result.
func (t *Tesseract) lineBoxes() []Line {
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		return nil
	}

	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		min, max := b.Box.Min, b.Box.Max
		lines = append(lines, Line{
			Text:  text,
			Score: b.Confidence / 100.0,
			Box: Box{
				{min.X, min.Y},
				{max.X, min.Y},
				{max.X, max.Y},
				{min.X, max.Y},
			},
		})
	}
	return lines
}

func buildResult(text string, lines []Line) Result {
	if text == "" && len(lines) == 0 {
		return Result{Code: CodeNoText, Data: []Line{}}
	}
	if len(lines) == 0 {
		// No region data; surface the full text as a single entry.
		lines = []Line{{Text: text, Score: 0}}
	}
	return Result{Code: CodeOK, Data: lines}
}

// Close releases the tesseract client.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
