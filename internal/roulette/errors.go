package roulette

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSourceRejected means the feed source does not exist or is not accessible.
	ErrSourceRejected = errors.New("source rejected")

	// ErrSourceUnavailable means the feed could not be reached.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// SourceError classifies a feed failure as ErrSourceRejected or ErrSourceUnavailable
// while keeping the underlying cause reachable through errors.Is and errors.As.
type SourceError struct {
	Kind  error
	Cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *SourceError) Is(target error) bool {
	return target == e.Kind
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

type NotFoundReason string

const (
	NoSources       NotFoundReason = "no-sources"
	EmptySource     NotFoundReason = "empty"
	NoSuitableMedia NotFoundReason = "exhausted"
	OutOfTime       NotFoundReason = "deadline"
)

// NotFoundError means nothing eligible was found. The command completes normally.
type NotFoundError struct {
	Source     string
	Reason     NotFoundReason
	Candidates int
}

func (e *NotFoundError) Error() string {
	switch e.Reason {
	case NoSources:
		return "no sources configured"
	case EmptySource:
		return fmt.Sprintf("no posts in %s", e.Source)
	case OutOfTime:
		return fmt.Sprintf("no suitable media in %s found in time", e.Source)
	default:
		return fmt.Sprintf("no suitable media among %d posts in %s", e.Candidates, e.Source)
	}
}

// FeedError means the feed source is unreachable or rejected the request.
type FeedError struct {
	Source string
	Err    error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("feed %s: %s", e.Source, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// Rejected reports whether the source itself refused the request as opposed to being unreachable.
func (e *FeedError) Rejected() bool {
	return errors.Is(e.Err, ErrSourceRejected)
}
