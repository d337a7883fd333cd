package media

import "gopkg.in/guregu/null.v3"

// Post is a candidate item listed from a feed source.
type Post struct {
	ID                     string
	URL                    string
	Permalink              string
	Title                  string
	IsVideo                bool
	HostedVideoFallbackURL null.String
	Previews               []Preview
}

// Preview is an alternate image rendition of a post.
type Preview struct {
	URL string
}

func (p Preview) Filename() string {
	_, filename := Classify(p.URL)
	return filename
}

// Resolved is either a LinkableVideo or a DownloadedImage.
type Resolved interface {
	Kind() Kind
	Caption() string
}

// LinkableVideo is handed to the chat transport verbatim for native embedding.
type LinkableVideo struct {
	URL   string
	Title string
}

func (v *LinkableVideo) Kind() Kind      { return Video }
func (v *LinkableVideo) Caption() string { return v.Title }

// DownloadedImage is re-uploaded as an attachment.
type DownloadedImage struct {
	Bytes    []byte
	Filename string
	Title    string
}

func (i *DownloadedImage) Kind() Kind      { return Image }
func (i *DownloadedImage) Caption() string { return i.Title }
