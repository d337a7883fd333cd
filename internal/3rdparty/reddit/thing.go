package reddit

import (
	"golang.org/x/net/html"
	"gopkg.in/guregu/null.v3"
)

const LinkKind = "t3"

type Media struct {
	RedditVideo struct {
		FallbackURL string `json:"fallback_url"`
	} `json:"reddit_video"`
}

type MediaContainer struct {
	Media       Media `json:"media"`
	SecureMedia Media `json:"secure_media"`
}

func (mc MediaContainer) FallbackURL() string {
	url := mc.Media.RedditVideo.FallbackURL
	if url == "" {
		url = mc.SecureMedia.RedditVideo.FallbackURL
	}

	return url
}

type ImageSource struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Image struct {
	Source      ImageSource   `json:"source"`
	Resolutions []ImageSource `json:"resolutions"`
}

type Preview struct {
	Images []Image `json:"images"`
}

type ThingData struct {
	MediaContainer
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Title               string           `json:"title"`
	Subreddit           string           `json:"subreddit"`
	Domain              string           `json:"domain"`
	URL                 null.String      `json:"url"`
	IsVideo             bool             `json:"is_video"`
	IsSelf              bool             `json:"is_self"`
	Over18              bool             `json:"over_18"`
	Permalink           string           `json:"permalink"`
	Author              string           `json:"author"`
	CrosspostParentList []MediaContainer `json:"crosspost_parent_list"`
	Preview             *Preview         `json:"preview"`
}

func (d ThingData) PermalinkURL() string {
	if d.Permalink == "" {
		return ""
	}

	return "https://www.reddit.com" + d.Permalink
}

// VideoFallbackURL looks for a hosted video URL in the post itself and then in crossposted parents.
func (d ThingData) VideoFallbackURL() string {
	if url := d.FallbackURL(); url != "" {
		return url
	}

	for _, mc := range d.CrosspostParentList {
		if url := mc.FallbackURL(); url != "" {
			return url
		}
	}

	return ""
}

// PreviewURLs lists preview renditions: for each image its source first,
// then the resolutions from the largest to the smallest.
func (d ThingData) PreviewURLs() []string {
	if d.Preview == nil {
		return nil
	}

	var urls []string
	for _, image := range d.Preview.Images {
		if image.Source.URL != "" {
			urls = append(urls, image.Source.URL)
		}

		for i := len(image.Resolutions) - 1; i >= 0; i-- {
			if url := image.Resolutions[i].URL; url != "" {
				urls = append(urls, url)
			}
		}
	}

	return urls
}

type Thing struct {
	Kind string    `json:"kind"`
	Data ThingData `json:"data"`
}

type Listing struct {
	Data struct {
		After    string  `json:"after"`
		Children []Thing `json:"children"`
	} `json:"data"`
}

// unescape reverts the HTML escaping reddit applies to URLs in JSON responses.
func (l *Listing) unescape() {
	for i := range l.Data.Children {
		data := &l.Data.Children[i].Data
		if data.URL.Valid {
			data.URL = null.StringFrom(html.UnescapeString(data.URL.String))
		}

		if data.Preview == nil {
			continue
		}

		for j := range data.Preview.Images {
			image := &data.Preview.Images[j]
			image.Source.URL = html.UnescapeString(image.Source.URL)
			for k := range image.Resolutions {
				image.Resolutions[k].URL = html.UnescapeString(image.Resolutions[k].URL)
			}
		}
	}
}
