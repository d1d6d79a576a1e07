// Package ocrapi implements the five gateway routes: health, version and
// the three OCR ingestion channels.
package ocrapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainimage "ocr-gateway/internal/domain/image"
	"ocr-gateway/internal/domain/ocr"
	apierrors "ocr-gateway/internal/platform/errors"
	"ocr-gateway/internal/platform/logging"
	httptransport "ocr-gateway/internal/transport/http"
)

// Service wires the acquisition subsystem and the engine collaborator into
// HTTP handlers.
type Service struct {
	logger   *logging.Logger
	resolver *domainimage.Resolver
	engine   ocr.Engine
}

// NewService creates the OCR API service.
func NewService(
	resolver *domainimage.Resolver,
	engine ocr.Engine,
	logger *logging.Logger,
) (*Service, error) {
	if resolver == nil {
		return nil, apierrors.New(apierrors.KindConfig, "ocrapi.new", "image resolver is required")
	}
	if engine == nil {
		return nil, apierrors.New(apierrors.KindConfig, "ocrapi.new", "ocr engine is required")
	}
	if logger == nil {
		return nil, apierrors.New(apierrors.KindConfig, "ocrapi.new", "logger is required")
	}

	return &Service{
		logger:   logger,
		resolver: resolver,
		engine:   engine,
	}, nil
}

// Register binds the gateway routes onto the /api group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/health", s.handleHealth)
	router.GET("/version", s.handleVersion)
	router.POST("/ocr", s.handleOCRUpload)
	router.POST("/ocr/base64", s.handleOCRBase64)
	router.POST("/ocr/url", s.handleOCRURL)

	s.logger.Info("OCR API routes registered")
	return nil
}

// handleHealth reports liveness. Pure and side-effect-free.
func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   Version,
		Timestamp: time.Now().Unix(),
	})
}

// handleVersion reports the service identity. Pure and side-effect-free.
func (s *Service) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Name:       ServiceName,
		Version:    Version,
		APIVersion: APIVersion,
	})
}

// handleOCRUpload accepts a multipart form with a binary "image" field.
func (s *Service) handleOCRUpload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		if formErr := classifyFormError(err); formErr != nil {
			httptransport.RespondError(c, formErr)
			return
		}
		// Absent field; the resolver emits the missing-input outcome.
		header = nil
	}

	decoded, err := s.resolver.ResolveUpload(header)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}

	start := time.Now()
	result, err := s.runEngine(c, decoded)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}

	// Attach timing when the engine payload is structurally parseable;
	// otherwise pass it through untouched.
	var parsed map[string]interface{}
	if json.Unmarshal(result, &parsed) == nil {
		parsed["processing_time_ms"] = time.Since(start).Milliseconds()
		c.JSON(http.StatusOK, parsed)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// handleOCRBase64 accepts a JSON body with a base64-encoded "image" field.
func (s *Service) handleOCRBase64(c *gin.Context) {
	var req Base64Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c,
			apierrors.Wrap(apierrors.KindMalformedBody, "parse_body", "Invalid JSON", err))
		return
	}

	decoded, err := s.resolver.ResolveBase64(req.Image)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}

	result, err := s.runEngine(c, decoded)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// handleOCRURL accepts a JSON body with a "url" field pointing at a remote
// image.
func (s *Service) handleOCRURL(c *gin.Context) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c,
			apierrors.Wrap(apierrors.KindMalformedBody, "parse_body", "Invalid JSON", err))
		return
	}

	decoded, err := s.resolver.ResolveURL(c.Request.Context(), req.URL)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}

	result, err := s.runEngine(c, decoded)
	if err != nil {
		httptransport.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// classifyFormError sorts multipart failures from c.FormFile. Requests
// without a declared Content-Length slip past the pre-dispatch cap and trip
// the MaxBytesReader mid-parse; that is still the payload ceiling, not a
// missing field. A nil return means the image field is simply absent.
func classifyFormError(err error) error {
	const op = "resolve_upload"

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge),
		strings.Contains(err.Error(), "request body too large"):
		return apierrors.New(apierrors.KindPayloadTooLarge, op, "Request body exceeds 10MB limit")
	case errors.Is(err, http.ErrMissingFile),
		errors.Is(err, http.ErrNotMultipart):
		return nil
	default:
		return apierrors.Wrap(apierrors.KindMalformedBody, op, "Invalid multipart form", err)
	}
}

// runEngine performs one synchronous inference call. No retries.
func (s *Service) runEngine(c *gin.Context, decoded *domainimage.Decoded) (json.RawMessage, error) {
	result, err := s.engine.Recognize(c.Request.Context(), decoded)
	if err != nil {
		s.logger.Warn("OCR inference failed: %v", err)
		return nil, apierrors.Wrap(apierrors.KindEngine, "recognize", "Internal server error", err)
	}
	return result, nil
}
