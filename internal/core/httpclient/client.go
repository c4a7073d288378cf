package httpclient

import (
	"net/http"
	"time"

	"shipment-dashboard/internal/core/logger"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// CookieRoundTripper attaches a static session cookie to every outgoing request.
// The upstream shipment API authenticates with cookie-based sessions, so the
// credential rides along on each call instead of per-request header plumbing.
type CookieRoundTripper struct {
	// Cookie is the raw cookie string in "name=value" form. Empty disables it.
	Cookie string
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip adds the session cookie and executes the request.
func (crt *CookieRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if crt.Cookie != "" {
		req.Header.Set("Cookie", crt.Cookie)
	}
	return crt.Proxied.RoundTrip(req)
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
		},
		Timeout: timeout,
	}
}

// NewSessionClient returns an http.Client that carries the given session cookie
// on every request, with logging middleware underneath.
func NewSessionClient(timeout time.Duration, sessionCookie string) *http.Client {
	return &http.Client{
		Transport: &CookieRoundTripper{
			Cookie: sessionCookie,
			Proxied: &LoggingRoundTripper{
				Proxied: http.DefaultTransport,
			},
		},
		Timeout: timeout,
	}
}
