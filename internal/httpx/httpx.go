package httpx

import (
	"net/http"
	"time"

	"traderjoe/internal/logx"
)

type Config struct {
	// Timeout bounds the whole exchange including the body read. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent is set on every request when not empty.
	UserAgent string `yaml:"userAgent,omitempty"`

	MaxIdleConnsPerHost int `yaml:"maxIdleConnsPerHost,omitempty"`
}

// NewClient creates a pooled client safe for concurrent use.
// Requests are logged by the logger with the specified name.
func NewClient(name string, config Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.MaxIdleConnsPerHost > 0 {
		transport.MaxIdleConnsPerHost = config.MaxIdleConnsPerHost
	}

	var rt http.RoundTripper = &Logging{RoundTripper: transport, Log: logx.Get(name)}
	if config.UserAgent != "" {
		rt = WithUserAgent(rt, config.UserAgent)
	}

	return &http.Client{
		Transport: rt,
		Timeout:   config.Timeout,
	}
}
