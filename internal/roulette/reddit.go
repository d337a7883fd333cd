package roulette

import (
	"context"

	"traderjoe/internal/3rdparty/reddit"
	"traderjoe/internal/media"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"
)

const (
	SortTop = "top"
	SortHot = "hot"
)

// RedditFeed lists subreddit posts as roulette candidates.
type RedditFeed struct {
	Client reddit.Interface

	// Sort is either SortTop (default) or SortHot.
	Sort string

	// TimeFilter applies to SortTop only.
	TimeFilter string
}

func (f *RedditFeed) List(ctx context.Context, subreddit string, limit int) ([]media.Post, error) {
	sort := f.Sort
	params := reddit.ListingParams{Limit: limit}
	switch sort {
	case "", SortTop:
		sort = SortTop
		params.TimeFilter = f.TimeFilter
	case SortHot:
	default:
		return nil, errors.Errorf("unsupported sort: %s", f.Sort)
	}

	things, err := f.Client.GetListing(ctx, subreddit, sort, params)
	if err != nil {
		if errors.Is(err, reddit.ErrNotFound) || errors.Is(err, reddit.ErrForbidden) {
			return nil, &SourceError{Kind: ErrSourceRejected, Cause: err}
		}

		return nil, &SourceError{Kind: ErrSourceUnavailable, Cause: err}
	}

	posts := make([]media.Post, 0, len(things))
	for _, thing := range things {
		if thing.Kind != "" && thing.Kind != reddit.LinkKind {
			continue
		}

		posts = append(posts, postFromThing(thing.Data))
	}

	return posts, nil
}

func postFromThing(data reddit.ThingData) media.Post {
	post := media.Post{
		ID:        data.ID,
		URL:       data.URL.ValueOrZero(),
		Permalink: data.PermalinkURL(),
		Title:     data.Title,
		IsVideo:   data.IsVideo,
	}

	if url := data.VideoFallbackURL(); url != "" {
		post.HostedVideoFallbackURL = null.StringFrom(url)
	}

	for _, url := range data.PreviewURLs() {
		post.Previews = append(post.Previews, media.Preview{URL: url})
	}

	return post
}
