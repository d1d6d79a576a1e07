package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ocr-gateway/internal/platform/config"
	apierrors "ocr-gateway/internal/platform/errors"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		want    target
		wantErr apierrors.Kind
	}{
		{
			name:   "https defaults",
			rawURL: "https://example.com",
			want:   target{scheme: "https", host: "example.com", port: "443", path: "/"},
		},
		{
			name:   "http defaults",
			rawURL: "http://example.com",
			want:   target{scheme: "http", host: "example.com", port: "80", path: "/"},
		},
		{
			name:   "explicit port and path",
			rawURL: "http://example.com:8080/images/cat.jpg",
			want:   target{scheme: "http", host: "example.com", port: "8080", path: "/images/cat.jpg"},
		},
		{
			name:   "query preserved",
			rawURL: "https://example.com/img?id=7&size=big",
			want:   target{scheme: "https", host: "example.com", port: "443", path: "/img?id=7&size=big"},
		},
		{
			name:    "ftp rejected",
			rawURL:  "ftp://example.com/x.jpg",
			wantErr: apierrors.KindUnsupportedScheme,
		},
		{
			name:    "no scheme rejected",
			rawURL:  "example.com/x.jpg",
			wantErr: apierrors.KindUnsupportedScheme,
		},
		{
			name:    "file scheme rejected",
			rawURL:  "file:///etc/passwd",
			wantErr: apierrors.KindUnsupportedScheme,
		},
		{
			name:    "missing host",
			rawURL:  "http:///path",
			wantErr: apierrors.KindFetchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTarget(tt.rawURL)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, apierrors.IsKind(err, tt.wantErr),
					"kind = %s, want %s", apierrors.KindOf(err), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargetSchemeErrorMessage(t *testing.T) {
	_, err := parseTarget("ftp://example.com/x.jpg")
	require.Equal(t, "Invalid URL scheme. Use http:// or https://", apierrors.PublicMessage(err))
}

func TestFetchSuccess(t *testing.T) {
	payload := []byte("fake image bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pic.png", r.URL.Path)
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(config.MaxPayloadBytes), testLogger(t))
	body, err := fetcher.Fetch(context.Background(), server.URL+"/pic.png")
	require.NoError(t, err)
	require.Equal(t, payload, body)
}

func TestFetchFollowsRedirects(t *testing.T) {
	payload := []byte("redirected bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(config.MaxPayloadBytes), testLogger(t))
	body, err := fetcher.Fetch(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	require.Equal(t, payload, body)
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(config.MaxPayloadBytes), testLogger(t))
	_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.png")
	require.True(t, apierrors.IsKind(err, apierrors.KindFetchFailed))
	require.Equal(t, "Failed to fetch image: HTTP 404", apierrors.PublicMessage(err))
}

func TestFetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	fetcher := NewFetcher(testFetchConfig(config.MaxPayloadBytes), testLogger(t))
	_, err := fetcher.Fetch(context.Background(), url)
	require.True(t, apierrors.IsKind(err, apierrors.KindFetchFailed))
	require.True(t, strings.HasPrefix(apierrors.PublicMessage(err), "Failed to fetch image:"))
}

func TestFetchBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 256))
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(64), testLogger(t))
	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.True(t, apierrors.IsKind(err, apierrors.KindPayloadTooLarge))
	require.Equal(t, "Image size exceeds 10MB limit", apierrors.PublicMessage(err))
}

func TestFetchHTTPSWithoutTLSCapability(t *testing.T) {
	cfg := testFetchConfig(config.MaxPayloadBytes)
	cfg.TLSEnabled = false

	fetcher := NewFetcher(cfg, testLogger(t))
	_, err := fetcher.Fetch(context.Background(), "https://example.com/pic.png")
	require.True(t, apierrors.IsKind(err, apierrors.KindTLSUnavailable))
	require.Equal(t,
		"HTTPS not supported (compiled without SSL support)",
		apierrors.PublicMessage(err))
}
