package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dwijnand/servo/pkg/dom"
	"github.com/dwijnand/servo/pkg/link"
)

// HTTP loads stylesheets over http(s), fanning nested imports out as
// sub-loads of the same generation.
//
// Credentialed CORS fetches rely on the configured http.Client's cookie
// jar; the loader itself only shapes headers.
type HTTP struct {
	client   *http.Client
	logger   *slog.Logger
	maxDepth int
	referrer string
	origin   string
}

// HTTPOption configures an HTTP loader.
type HTTPOption func(*HTTP)

// WithClient sets the http.Client used for fetches.
func WithClient(client *http.Client) HTTPOption {
	return func(l *HTTP) {
		l.client = client
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(l *HTTP) {
		l.logger = logger
	}
}

// WithMaxDepth sets the nested-import depth limit (default 8).
func WithMaxDepth(depth int) HTTPOption {
	return func(l *HTTP) {
		l.maxDepth = depth
	}
}

// WithReferrer sets the Referer header value sent with fetches, typically
// the document URL. Suppressed for requests with a no-referrer policy.
func WithReferrer(referrer string) HTTPOption {
	return func(l *HTTP) {
		l.referrer = referrer
	}
}

// WithOrigin sets the Origin header value sent with CORS fetches.
func WithOrigin(origin string) HTTPOption {
	return func(l *HTTP) {
		l.origin = origin
	}
}

// WithTimeout sets a per-fetch timeout on the loader's client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(l *HTTP) {
		if l.client == http.DefaultClient {
			l.client = &http.Client{}
		}
		l.client.Timeout = d
	}
}

// NewHTTP creates an HTTP loader.
func NewHTTP(opts ...HTTPOption) *HTTP {
	l := &HTTP{
		client:   http.DefaultClient,
		logger:   slog.Default(),
		maxDepth: 8,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implements link.Loader.
func (l *HTTP) Load(req link.Request, owner link.Owner) {
	start(req, owner, l.fetcher(req), l.logger, l.maxDepth)
}

// fetcher builds the per-request fetch function, capturing the request's
// CORS mode and referrer policy for header shaping.
func (l *HTTP) fetcher(req link.Request) fetchFunc {
	return func(ctx context.Context, u *url.URL) ([]byte, error) {
		hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		hreq.Header.Set("Accept", "text/css,*/*;q=0.1")

		if l.referrer != "" && req.Referrer != link.ReferrerNone {
			hreq.Header.Set("Referer", l.referrer)
		}
		if l.origin != "" && req.CORS != dom.CORSNone {
			hreq.Header.Set("Origin", l.origin)
		}

		resp, err := l.client.Do(hreq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
}
