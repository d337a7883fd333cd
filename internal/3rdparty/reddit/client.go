package reddit

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dghubble/sling"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	Host         = "https://oauth.reddit.com"
	AuthEndpoint = "https://www.reddit.com/api/v1/access_token"
)

const (
	// MaxListingLimit is the largest batch GetListing will paginate up to.
	MaxListingLimit = 1000

	pageSize = 100
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate-limited")
)

type Config struct {
	ClientID     string        `yaml:"clientId"`
	ClientSecret string        `yaml:"clientSecret"`
	UserAgent    string        `yaml:"userAgent,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`

	// Host and AuthEndpoint override the package defaults when set.
	Host         string `yaml:"host,omitempty"`
	AuthEndpoint string `yaml:"authEndpoint,omitempty"`
}

type Interface interface {
	GetListing(ctx context.Context, subreddit, sort string, params ListingParams) ([]Thing, error)
}

type ListingParams struct {
	// TimeFilter is one of hour, day, week, month, year, all. Used only with the "top" sort.
	TimeFilter string `url:"t,omitempty"`
	Limit      int    `url:"limit,omitempty"`
	After      string `url:"after,omitempty"`
}

// Client uses application-only OAuth2 (client credentials grant).
// It is safe for concurrent use.
type Client struct {
	api *sling.Sling
}

// NewClient creates a client on top of httpClient, which is also used for token requests.
// ctx bounds the token source lifetime.
func NewClient(ctx context.Context, httpClient *http.Client, config Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	host := config.Host
	if host == "" {
		host = Host
	}

	authEndpoint := config.AuthEndpoint
	if authEndpoint == "" {
		authEndpoint = AuthEndpoint
	}

	credentials := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     authEndpoint,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	authorized := credentials.Client(context.WithValue(ctx, oauth2.HTTPClient, httpClient))
	authorized.Timeout = config.Timeout
	if authorized.Timeout == 0 {
		authorized.Timeout = httpClient.Timeout
	}

	return &Client{
		api: sling.New().Client(authorized).Base(host + "/"),
	}
}

func (c *Client) String() string {
	return "reddit.client"
}

// GetListing lists up to params.Limit things (at most MaxListingLimit), following "after" cursors.
func (c *Client) GetListing(ctx context.Context, subreddit, sort string, params ListingParams) ([]Thing, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 25
	} else if limit > MaxListingLimit {
		limit = MaxListingLimit
	}

	things := make([]Thing, 0, limit)
	for len(things) < limit {
		page := params
		page.Limit = limit - len(things)
		if page.Limit > pageSize {
			page.Limit = pageSize
		}

		var listing Listing
		if err := c.get(ctx, "r/"+url.PathEscape(subreddit)+"/"+sort, page, &listing); err != nil {
			return nil, errors.Wrapf(err, "get r/%s/%s", subreddit, sort)
		}

		listing.unescape()
		things = append(things, listing.Data.Children...)
		if listing.Data.After == "" || len(listing.Data.Children) == 0 {
			break
		}

		params.After = listing.Data.After
	}

	if len(things) > limit {
		things = things[:limit]
	}

	return things, nil
}

func (c *Client) get(ctx context.Context, path string, params any, result any) error {
	req, err := c.api.New().Get(path).QueryStruct(params).Request()
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	resp, err := c.api.Do(req.WithContext(ctx), result, nil)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
}
