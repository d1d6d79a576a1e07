package image

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"ocr-gateway/internal/platform/config"
	apierrors "ocr-gateway/internal/platform/errors"
	"ocr-gateway/internal/platform/logging"
)

// Fetcher downloads image bytes from remote URLs. The scheme is restricted
// to http and https; https requires the TLS capability flag set at
// construction time. Redirects are followed, the fetched body is capped.
type Fetcher struct {
	plainClient *http.Client
	tlsClient   *http.Client
	tlsEnabled  bool
	maxBytes    int64
	logger      *logging.Logger
}

// NewFetcher constructs a fetch client from the fetch configuration.
func NewFetcher(cfg config.FetchConfig, logger *logging.Logger) *Fetcher {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = config.MaxPayloadBytes
	}

	return &Fetcher{
		plainClient: &http.Client{
			Transport: &http.Transport{DialContext: dialer.DialContext},
			Timeout:   cfg.ReadTimeout,
		},
		tlsClient: &http.Client{
			Transport: &http.Transport{DialContext: dialer.DialContext},
			Timeout:   cfg.ReadTimeout,
		},
		tlsEnabled: cfg.TLSEnabled,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// target is the normalized fetch destination: explicit port, path defaulted
// to "/".
type target struct {
	scheme string
	host   string
	port   string
	path   string
}

func (t target) String() string {
	return fmt.Sprintf("%s://%s:%s%s", t.scheme, t.host, t.port, t.path)
}

// parseTarget validates and normalizes a raw URL. Only http:// and https://
// prefixes are accepted; default ports are 80 and 443, default path is "/".
func parseTarget(rawURL string) (target, error) {
	const op = "parse_url"

	var scheme string
	switch {
	case strings.HasPrefix(rawURL, "https://"):
		scheme = "https"
	case strings.HasPrefix(rawURL, "http://"):
		scheme = "http"
	default:
		return target{}, apierrors.New(apierrors.KindUnsupportedScheme, op,
			"Invalid URL scheme. Use http:// or https://")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return target{}, apierrors.Wrap(apierrors.KindFetchFailed, op, "Invalid URL", err)
	}
	if u.Hostname() == "" {
		return target{}, apierrors.New(apierrors.KindFetchFailed, op, "Invalid URL: missing host")
	}

	port := u.Port()
	if port == "" {
		if scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	path := u.RequestURI()
	if path == "" {
		path = "/"
	}

	return target{
		scheme: scheme,
		host:   u.Hostname(),
		port:   port,
		path:   path,
	}, nil
}

// Fetch downloads the body behind rawURL, enforcing scheme, TLS capability,
// a 200-only success policy and the payload ceiling.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	const op = "fetch"

	t, err := parseTarget(rawURL)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("fetching %s", t.String())

	client := f.plainClient
	if t.scheme == "https" {
		if !f.tlsEnabled {
			return nil, apierrors.New(apierrors.KindTLSUnavailable, op,
				"HTTPS not supported (compiled without SSL support)")
		}
		client = f.tlsClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.String(), nil)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindFetchFailed, op, "Failed to fetch image", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindFetchFailed, op, "Failed to fetch image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.New(apierrors.KindFetchFailed, op,
			fmt.Sprintf("Failed to fetch image: HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindFetchFailed, op, "Failed to fetch image", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, apierrors.New(apierrors.KindPayloadTooLarge, op, "Image size exceeds 10MB limit")
	}

	return body, nil
}
