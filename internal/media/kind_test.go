package media_test

import (
	"testing"

	"traderjoe/internal/media"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		url      string
		kind     media.Kind
		filename string
	}{
		{"https://i.redd.it/abc.jpg", media.Image, "abc.jpg"},
		{"https://i.redd.it/abc.JPEG", media.Image, "abc.JPEG"},
		{"https://i.imgur.com/abc.Png", media.Image, "abc.Png"},
		{"https://preview.redd.it/abc.jpg?width=640&s=123", media.Image, "abc.jpg"},
		{"https://i.imgur.com/abc.mp4", media.Video, "abc.mp4"},
		{"https://example.com/clip.WEBM", media.Video, "clip.WEBM"},
		{"https://i.imgur.com/abc.gifv", media.Video, "abc.gifv"},
		{"https://i.redd.it/abc.gif", media.Video, "abc.gif"},
		{"https://www.reddit.com/r/memes/comments/xyz/title/", media.Unknown, "title"},
		{"https://v.redd.it/xyz", media.Unknown, "xyz"},
		{"https://example.com/archive.tar.gz", media.Unknown, "archive.tar.gz"},
		{"https://example.com", media.Unknown, ""},
		{"", media.Unknown, ""},
		{"::not a url/pic.png", media.Image, "pic.png"},
	} {
		t.Run(tc.url, func(t *testing.T) {
			kind, filename := media.Classify(tc.url)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.filename, filename)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "image", media.Image.String())
	assert.Equal(t, "video", media.Video.String())
	assert.Equal(t, "unknown", media.Unknown.String())
}
