package media_test

import (
	"bytes"
	"context"
	"testing"

	"traderjoe/internal/media"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

type testFetcher struct {
	data  map[string][]byte
	err   error
	calls []string
}

func (f *testFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}

	data, ok := f.data[url]
	if !ok {
		return nil, &media.StatusError{URL: url, StatusCode: 404}
	}

	return data, nil
}

func assertSkip(t *testing.T, reason media.SkipReason, resolved media.Resolved, err error) {
	t.Helper()
	assert.Nil(t, resolved)
	var skip *media.SkipError
	if assert.True(t, errors.As(err, &skip), "expected skip, got %v", err) {
		assert.Equal(t, reason, skip.Reason)
	}
}

func TestResolver_HostedVideo(t *testing.T) {
	fetcher := new(testFetcher)
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL:                    "https://v.redd.it/abc",
		Title:                  "clip",
		IsVideo:                true,
		HostedVideoFallbackURL: null.StringFrom("https://v.example/abc"),
	})

	require.NoError(t, err)
	assert.Equal(t, &media.LinkableVideo{URL: "https://v.example/abc", Title: "clip"}, resolved)
	assert.Empty(t, fetcher.calls)
}

func TestResolver_HostedVideoWithoutFallback(t *testing.T) {
	fetcher := new(testFetcher)
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL:      "https://v.redd.it/abc",
		IsVideo:  true,
		Previews: []media.Preview{{URL: "https://preview.redd.it/abc.jpg"}},
	})

	assertSkip(t, media.SkipNoFallback, resolved, err)
	assert.Empty(t, fetcher.calls)
}

func TestResolver_DirectVideo(t *testing.T) {
	fetcher := new(testFetcher)
	resolver := &media.Resolver{Fetcher: fetcher}
	for _, url := range []string{
		"https://i.imgur.com/abc.gifv",
		"https://example.com/abc.webm",
		"https://i.redd.it/abc.gif",
	} {
		resolved, err := resolver.Resolve(context.Background(), media.Post{URL: url, Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, &media.LinkableVideo{URL: url, Title: "t"}, resolved)
	}

	assert.Empty(t, fetcher.calls)
}

func TestResolver_DirectImage(t *testing.T) {
	data := bytes.Repeat([]byte{1}, 1024)
	fetcher := &testFetcher{data: map[string][]byte{"https://i.redd.it/pic.png": data}}
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL:   "https://i.redd.it/pic.png",
		Title: "pic",
	})

	require.NoError(t, err)
	assert.Equal(t, &media.DownloadedImage{Bytes: data, Filename: "pic.png", Title: "pic"}, resolved)
	assert.Equal(t, media.Image, resolved.Kind())
}

func TestResolver_DirectImageOversize(t *testing.T) {
	data := make([]byte, media.MaxImageSize+1)
	fetcher := &testFetcher{data: map[string][]byte{"https://i.redd.it/pic.png": data}}
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{URL: "https://i.redd.it/pic.png"})
	assertSkip(t, media.SkipOversize, resolved, err)
}

func TestResolver_ExactlyMaxSize(t *testing.T) {
	data := make([]byte, 2048)
	fetcher := &testFetcher{data: map[string][]byte{"https://i.redd.it/pic.jpg": data}}
	resolver := &media.Resolver{Fetcher: fetcher, MaxSize: 2048}
	resolved, err := resolver.Resolve(context.Background(), media.Post{URL: "https://i.redd.it/pic.jpg"})
	require.NoError(t, err)
	assert.Len(t, resolved.(*media.DownloadedImage).Bytes, 2048)
}

func TestResolver_DirectImageFetchFailure(t *testing.T) {
	fetcher := &testFetcher{err: errors.New("connection reset")}
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL:      "https://i.redd.it/pic.png",
		Previews: []media.Preview{{URL: "https://preview.redd.it/pic.jpg"}},
	})

	assertSkip(t, media.SkipFetch, resolved, err)
	assert.Equal(t, []string{"https://i.redd.it/pic.png"}, fetcher.calls)
}

func TestResolver_PreviewFallback(t *testing.T) {
	data := []byte("jpeg")
	previewURL := "https://preview.redd.it/pic.jpg?width=960&s=abc"
	fetcher := &testFetcher{data: map[string][]byte{previewURL: data}}
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL:   "https://www.reddit.com/gallery/xyz",
		Title: "gallery",
		Previews: []media.Preview{
			{URL: "https://external-preview.redd.it/thumb.webp"},
			{URL: previewURL},
			{URL: "https://preview.redd.it/other.png"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, &media.DownloadedImage{Bytes: data, Filename: "pic.jpg", Title: "gallery"}, resolved)
	assert.Equal(t, []string{previewURL}, fetcher.calls)
}

func TestResolver_PreviewFallbackFailure(t *testing.T) {
	fetcher := &testFetcher{data: map[string][]byte{}}
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL: "https://example.com/article",
		Previews: []media.Preview{
			{URL: "https://preview.redd.it/a.jpg"},
			{URL: "https://preview.redd.it/b.jpg"},
		},
	})

	assertSkip(t, media.SkipFetch, resolved, err)
	assert.Equal(t, []string{"https://preview.redd.it/a.jpg"}, fetcher.calls)
	var status *media.StatusError
	assert.True(t, errors.As(err, &status))
}

func TestResolver_NoImagePreview(t *testing.T) {
	fetcher := new(testFetcher)
	resolver := &media.Resolver{Fetcher: fetcher}
	resolved, err := resolver.Resolve(context.Background(), media.Post{
		URL:      "https://example.com/article",
		Previews: []media.Preview{{URL: "https://example.com/thumb.webp"}},
	})

	assertSkip(t, media.SkipNoImage, resolved, err)
	assert.Empty(t, fetcher.calls)
}

func TestPreview_Filename(t *testing.T) {
	assert.Equal(t, "pic.jpg", media.Preview{URL: "https://preview.redd.it/pic.jpg?s=1"}.Filename())
}
