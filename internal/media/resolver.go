package media

import (
	"context"

	"github.com/pkg/errors"
)

type SkipReason string

const (
	SkipNoFallback SkipReason = "no-fallback"
	SkipNoImage    SkipReason = "no-image"
	SkipFetch      SkipReason = "fetch"
	SkipOversize   SkipReason = "oversize"
)

// SkipError means the post cannot be delivered and the next candidate should be tried.
type SkipError struct {
	Reason SkipReason
	URL    string
	Err    error
}

func (e *SkipError) Error() string {
	msg := "skip: " + string(e.Reason)
	if e.URL != "" {
		msg += " " + e.URL
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// Resolver turns a post into a deliverable media descriptor.
// Videos are always linked, images are always downloaded.
type Resolver struct {
	Fetcher Fetcher
	MaxSize Size
}

func (r *Resolver) String() string {
	return "media.resolver"
}

// Resolve returns exactly one of a non-nil Resolved or a *SkipError.
func (r *Resolver) Resolve(ctx context.Context, post Post) (Resolved, error) {
	if post.IsVideo {
		if url := post.HostedVideoFallbackURL.ValueOrZero(); url != "" {
			return &LinkableVideo{URL: url, Title: post.Title}, nil
		}

		return nil, &SkipError{Reason: SkipNoFallback, URL: post.URL}
	}

	kind, filename := Classify(post.URL)
	switch kind {
	case Video:
		return &LinkableVideo{URL: post.URL, Title: post.Title}, nil
	case Image:
		return r.download(ctx, post.URL, filename, post.Title)
	}

	for _, preview := range post.Previews {
		if kind, filename := Classify(preview.URL); kind == Image {
			return r.download(ctx, preview.URL, filename, post.Title)
		}
	}

	return nil, &SkipError{Reason: SkipNoImage, URL: post.URL}
}

func (r *Resolver) download(ctx context.Context, url, filename, title string) (Resolved, error) {
	data, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &SkipError{Reason: SkipFetch, URL: url, Err: err}
	}

	if limit := r.maxSize(); Size(len(data)) > limit {
		return nil, &SkipError{
			Reason: SkipOversize,
			URL:    url,
			Err:    errors.Errorf("%d bytes exceed %s", len(data), limit),
		}
	}

	return &DownloadedImage{Bytes: data, Filename: filename, Title: title}, nil
}

func (r *Resolver) maxSize() Size {
	if r.MaxSize > 0 {
		return r.MaxSize
	}

	return MaxImageSize
}
