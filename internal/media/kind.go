package media

import (
	"net/url"
	"path"
	"strings"
)

type Kind int

const (
	Unknown Kind = iota
	Image
	Video
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

var (
	imageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}

	// .gif is linked rather than downloaded so animated content is kept intact.
	videoExtensions = map[string]bool{
		".mp4":  true,
		".webm": true,
		".gifv": true,
		".gif":  true,
	}
)

// Classify derives the media kind and the file name from the URL path.
// Query and fragment are ignored.
func Classify(rawURL string) (Kind, string) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	filename := path.Base(p)
	if filename == "." || filename == "/" {
		return Unknown, ""
	}

	ext := strings.ToLower(path.Ext(filename))
	switch {
	case imageExtensions[ext]:
		return Image, filename
	case videoExtensions[ext]:
		return Video, filename
	default:
		return Unknown, filename
	}
}
