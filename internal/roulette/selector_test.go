package roulette_test

import (
	"context"
	"testing"
	"time"

	"traderjoe/internal/media"
	"traderjoe/internal/roulette"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFeed struct {
	posts   map[string][]media.Post
	err     error
	sources []string
	limits  []int
}

func (f *testFeed) List(ctx context.Context, source string, limit int) ([]media.Post, error) {
	f.sources = append(f.sources, source)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}

	posts := f.posts[source]
	result := make([]media.Post, len(posts))
	copy(result, posts)
	return result, nil
}

type testResolver struct {
	resolvable map[string]media.Resolved
	resolved   []string
	delay      time.Duration
}

func (r *testResolver) Resolve(ctx context.Context, post media.Post) (media.Resolved, error) {
	r.resolved = append(r.resolved, post.ID)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	if resolved, ok := r.resolvable[post.ID]; ok {
		return resolved, nil
	}

	return nil, &media.SkipError{Reason: media.SkipNoImage, URL: post.URL}
}

type identity struct{ chosen int }

func (r identity) Intn(n int) int                     { return r.chosen % n }
func (r identity) Shuffle(n int, swap func(i, j int)) {}

type reverse struct{}

func (reverse) Intn(n int) int { return 0 }
func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func posts(ids ...string) []media.Post {
	result := make([]media.Post, len(ids))
	for i, id := range ids {
		result[i] = media.Post{ID: id, URL: "https://example.com/" + id}
	}

	return result
}

func TestSelector_PickOne_PermutationInvariant(t *testing.T) {
	fourth := &media.DownloadedImage{Bytes: []byte{1}, Filename: "four.png"}
	for name, random := range map[string]roulette.Random{
		"identity": identity{},
		"reverse":  reverse{},
	} {
		t.Run(name, func(t *testing.T) {
			feed := &testFeed{posts: map[string][]media.Post{"memes": posts("1", "2", "3", "4", "5")}}
			resolver := &testResolver{resolvable: map[string]media.Resolved{"4": fourth}}
			selector := &roulette.Selector{Feed: feed, Resolver: resolver, Random: random}

			pick, err := selector.PickOne(context.Background(), []string{"memes"})
			require.NoError(t, err)
			assert.Equal(t, "memes", pick.Source)
			assert.Equal(t, "4", pick.Post.ID)
			assert.Same(t, fourth, pick.Media)
		})
	}
}

func TestSelector_PickOne_StopsOnFirstSuccess(t *testing.T) {
	feed := &testFeed{posts: map[string][]media.Post{"memes": posts("1", "2", "3", "4", "5")}}
	resolver := &testResolver{resolvable: map[string]media.Resolved{
		"2": &media.LinkableVideo{URL: "https://example.com/2.mp4"},
		"4": &media.LinkableVideo{URL: "https://example.com/4.mp4"},
	}}

	selector := &roulette.Selector{Feed: feed, Resolver: resolver, Random: reverse{}}
	pick, err := selector.PickOne(context.Background(), []string{"memes"})
	require.NoError(t, err)
	assert.Equal(t, "4", pick.Post.ID)
	assert.Equal(t, []string{"5", "4"}, resolver.resolved)
}

func TestSelector_PickOne_ChoosesSource(t *testing.T) {
	feed := &testFeed{posts: map[string][]media.Post{"kittens": posts("k")}}
	resolver := &testResolver{resolvable: map[string]media.Resolved{"k": &media.LinkableVideo{}}}
	selector := &roulette.Selector{Feed: feed, Resolver: resolver, Random: identity{chosen: 1}, BatchSize: 50}

	pick, err := selector.PickOne(context.Background(), []string{"memes", "kittens", "Tinder"})
	require.NoError(t, err)
	assert.Equal(t, "kittens", pick.Source)
	assert.Equal(t, []string{"kittens"}, feed.sources)
	assert.Equal(t, []int{50}, feed.limits)
}

func TestSelector_PickOne_TagsSensitiveImages(t *testing.T) {
	feed := &testFeed{posts: map[string][]media.Post{"SensitiveSource": posts("1")}}
	resolver := &testResolver{resolvable: map[string]media.Resolved{
		"1": &media.DownloadedImage{Filename: "pic.png"},
	}}

	selector := &roulette.Selector{
		Feed:     feed,
		Resolver: resolver,
		Sources:  roulette.SourceConfig{{Name: "sensitivesource", Sensitive: true}},
		Random:   identity{},
	}

	pick, err := selector.PickOne(context.Background(), []string{"SensitiveSource"})
	require.NoError(t, err)
	assert.Equal(t, "SPOILER_pic.png", pick.Media.(*media.DownloadedImage).Filename)
}

func TestSelector_PickOne_NotFound(t *testing.T) {
	selector := &roulette.Selector{
		Feed: &testFeed{posts: map[string][]media.Post{
			"empty": nil,
			"memes": posts("1", "2"),
		}},
		Resolver: new(testResolver),
		Random:   identity{},
	}

	var notFound *roulette.NotFoundError

	_, err := selector.PickOne(context.Background(), []string{"empty"})
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, roulette.EmptySource, notFound.Reason)
	assert.Equal(t, "no posts in empty", err.Error())

	_, err = selector.PickOne(context.Background(), []string{"memes"})
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, roulette.NoSuitableMedia, notFound.Reason)
	assert.Equal(t, 2, notFound.Candidates)

	_, err = selector.PickOne(context.Background(), nil)
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, roulette.NoSources, notFound.Reason)
}

func TestSelector_PickOne_FeedError(t *testing.T) {
	cause := errors.Wrap(roulette.ErrSourceUnavailable, "dial tcp: connection refused")
	selector := &roulette.Selector{
		Feed:     &testFeed{err: cause},
		Resolver: new(testResolver),
		Random:   identity{},
	}

	_, err := selector.PickOne(context.Background(), []string{"memes"})
	var feedErr *roulette.FeedError
	require.True(t, errors.As(err, &feedErr), "%v", err)
	assert.Equal(t, "memes", feedErr.Source)
	assert.False(t, feedErr.Rejected())
	assert.True(t, errors.Is(err, roulette.ErrSourceUnavailable))

	var notFound *roulette.NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestSelector_PickOne_Budget(t *testing.T) {
	selector := &roulette.Selector{
		Feed:     &testFeed{posts: map[string][]media.Post{"memes": posts("1", "2", "3", "4", "5")}},
		Resolver: &testResolver{delay: 30 * time.Millisecond},
		Random:   identity{},
		Budget:   50 * time.Millisecond,
	}

	_, err := selector.PickOne(context.Background(), []string{"memes"})
	var notFound *roulette.NotFoundError
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, roulette.OutOfTime, notFound.Reason)
}

func TestSelector_PickOne_BudgetDuringLastCandidate(t *testing.T) {
	resolver := &testResolver{delay: 60 * time.Millisecond}
	selector := &roulette.Selector{
		Feed:     &testFeed{posts: map[string][]media.Post{"memes": posts("1")}},
		Resolver: resolver,
		Random:   identity{},
		Budget:   20 * time.Millisecond,
	}

	_, err := selector.PickOne(context.Background(), []string{"memes"})
	var notFound *roulette.NotFoundError
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, roulette.OutOfTime, notFound.Reason)
	assert.Equal(t, []string{"1"}, resolver.resolved)
}
