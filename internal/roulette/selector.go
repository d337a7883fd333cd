package roulette

import (
	"context"
	"time"

	"traderjoe/internal/logx"
	"traderjoe/internal/media"
	"traderjoe/internal/metrics"

	"github.com/pkg/errors"
)

const (
	DefaultBatchSize = 200
	DefaultBudget    = 30 * time.Second
)

// Feed lists candidate posts of a source. Implementations paginate on their own.
type Feed interface {
	List(ctx context.Context, source string, limit int) ([]media.Post, error)
}

type Resolver interface {
	Resolve(ctx context.Context, post media.Post) (media.Resolved, error)
}

type Pick struct {
	Media  media.Resolved
	Source string
	Post   media.Post
}

// Selector picks a random deliverable post from a random source.
// Candidates are resolved strictly one after another and the first success wins.
type Selector struct {
	Feed     Feed
	Resolver Resolver
	Sources  SourceConfig

	// BatchSize is the number of posts listed per pick.
	BatchSize int

	// Budget bounds a single pick including the listing. Zero means DefaultBudget.
	Budget time.Duration

	Random  Random
	Metrics metrics.Registry
}

func (s *Selector) String() string {
	return "roulette"
}

// PickOne returns a *NotFoundError when nothing eligible was found
// and a *FeedError when the chosen source could not be listed.
func (s *Selector) PickOne(ctx context.Context, sourceNames []string) (*Pick, error) {
	if len(sourceNames) == 0 {
		return nil, &NotFoundError{Reason: NoSources}
	}

	random := s.Random
	if random == nil {
		random = globalRandom{}
	}

	source := sourceNames[random.Intn(len(sourceNames))]
	log := logx.Get(s.String()).WithField("source", source)

	budget := s.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	posts, err := s.Feed.List(ctx, source, batchSize)
	if err != nil {
		s.count(source, "feed_error")
		return nil, &FeedError{Source: source, Err: err}
	}

	if len(posts) == 0 {
		s.count(source, string(EmptySource))
		return nil, &NotFoundError{Source: source, Reason: EmptySource}
	}

	random.Shuffle(len(posts), func(i, j int) { posts[i], posts[j] = posts[j], posts[i] })
	for i, post := range posts {
		if ctx.Err() != nil {
			log.Warnf("budget exhausted after %d of %d candidates", i, len(posts))
			return nil, s.outOfTime(source, len(posts))
		}

		resolved, err := s.Resolver.Resolve(ctx, post)
		if err != nil {
			s.skip(err)
			log.WithField("post", post.ID).Debugf("skip candidate: %v", err)
			continue
		}

		if image, ok := resolved.(*media.DownloadedImage); ok {
			image.Filename = s.Sources.Tag(image.Filename, source)
		}

		s.count(source, resolved.Kind().String())
		log.WithField("post", post.ID).Infof("picked %s after %d skips", resolved.Kind(), i)
		return &Pick{Media: resolved, Source: source, Post: post}, nil
	}

	if ctx.Err() != nil {
		log.Warnf("budget exhausted while resolving the last of %d candidates", len(posts))
		return nil, s.outOfTime(source, len(posts))
	}

	s.count(source, string(NoSuitableMedia))
	return nil, &NotFoundError{Source: source, Reason: NoSuitableMedia, Candidates: len(posts)}
}

func (s *Selector) outOfTime(source string, candidates int) error {
	s.count(source, string(OutOfTime))
	return &NotFoundError{Source: source, Reason: OutOfTime, Candidates: candidates}
}

func (s *Selector) count(source, outcome string) {
	if s.Metrics == nil {
		return
	}

	s.Metrics.Counter("roulette_picks_total", metrics.Labels{"source": source, "outcome": outcome}).Inc()
}

func (s *Selector) skip(err error) {
	if s.Metrics == nil {
		return
	}

	reason := "error"
	var skip *media.SkipError
	if errors.As(err, &skip) {
		reason = string(skip.Reason)
	}

	s.Metrics.Counter("roulette_skips_total", metrics.Labels{"reason": reason}).Inc()
}
