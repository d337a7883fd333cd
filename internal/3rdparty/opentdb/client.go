// Package opentdb is a minimal Open Trivia DB client.
package opentdb

import (
	"context"
	"net/http"

	"github.com/dghubble/sling"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

var Host = "https://opentdb.com"

var ErrNoResults = errors.New("no results")

type Question struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

func (q *Question) unescape() {
	q.Category = html.UnescapeString(q.Category)
	q.Question = html.UnescapeString(q.Question)
	q.CorrectAnswer = html.UnescapeString(q.CorrectAnswer)
	for i, answer := range q.IncorrectAnswers {
		q.IncorrectAnswers[i] = html.UnescapeString(answer)
	}
}

type response struct {
	ResponseCode int        `json:"response_code"`
	Results      []Question `json:"results"`
}

type params struct {
	Amount int    `url:"amount"`
	Type   string `url:"type,omitempty"`
}

type Interface interface {
	GetQuestion(ctx context.Context) (*Question, error)
}

type Client struct {
	api *sling.Sling
}

func NewClient(httpClient *http.Client, host string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if host == "" {
		host = Host
	}

	return &Client{api: sling.New().Client(httpClient).Base(host + "/")}
}

func (c *Client) String() string {
	return "opentdb.client"
}

// GetQuestion returns one multiple-choice question with HTML entities decoded.
func (c *Client) GetQuestion(ctx context.Context) (*Question, error) {
	req, err := c.api.New().Get("api.php").QueryStruct(params{Amount: 1, Type: "multiple"}).Request()
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	var resp response
	httpResp, err := c.api.Do(req.WithContext(ctx), &resp, nil)
	if err != nil {
		return nil, errors.Wrap(err, "get question")
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	if resp.ResponseCode != 0 || len(resp.Results) == 0 {
		return nil, errors.Wrapf(ErrNoResults, "response code %d", resp.ResponseCode)
	}

	question := resp.Results[0]
	question.unescape()
	return &question, nil
}
