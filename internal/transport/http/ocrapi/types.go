package ocrapi

// Service identity surfaced by /api/health and /api/version.
const (
	ServiceName = "ocr-gateway"
	Version     = "v1.0.0"
	APIVersion  = "v1"
)

// Base64Request is the body of POST /api/ocr/base64.
type Base64Request struct {
	Image string `json:"image"`
}

// URLRequest is the body of POST /api/ocr/url.
type URLRequest struct {
	URL string `json:"url"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

// VersionResponse is the body of GET /api/version.
type VersionResponse struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
}
