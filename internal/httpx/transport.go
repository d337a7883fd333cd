package httpx

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (fun RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return fun(req)
}

// WithUserAgent sets the User-Agent header on every outgoing request.
func WithUserAgent(rt http.RoundTripper, userAgent string) RoundTripperFunc {
	return func(req *http.Request) (*http.Response, error) {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgent)
		return rt.RoundTrip(req)
	}
}

// Logging logs every exchange at debug level and transport failures at warn level.
type Logging struct {
	http.RoundTripper
	Log *logrus.Entry
}

func (t *Logging) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.RoundTripper.RoundTrip(req)
	fields := logrus.Fields{
		"method":   req.Method,
		"url":      req.URL.Redacted(),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}

	if err != nil {
		t.Log.WithFields(fields).WithError(err).Warn("request failed")
		return nil, err
	}

	fields["status"] = resp.StatusCode
	t.Log.WithFields(fields).Debug("request done")
	return resp, nil
}
