package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/sling"
	"github.com/pkg/errors"
)

// DefaultFetchTimeout bounds a single download.
const DefaultFetchTimeout = 10 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (fun FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return fun(ctx, url)
}

// StatusError is returned for non-success responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// HTTPFetcher issues a single GET per call and never retries.
type HTTPFetcher struct {
	Client  *http.Client
	Timeout time.Duration

	// ReadLimit caps the number of body bytes read.
	// The fetcher reads at most ReadLimit+1 bytes so that callers are able
	// to tell an oversize payload by its length. Zero means no limit.
	ReadLimit Size
}

func (f *HTTPFetcher) String() string {
	return "media.fetcher"
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := sling.New().Get(url).Request()
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", url)
	}

	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if f.ReadLimit > 0 {
		body = io.LimitReader(resp.Body, int64(f.ReadLimit)+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}

	return data, nil
}
