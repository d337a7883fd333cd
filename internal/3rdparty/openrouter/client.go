// Package openrouter talks to the OpenAI-compatible chat completions API of OpenRouter.
package openrouter

import (
	"context"
	"net/http"
	"strings"

	"github.com/dghubble/sling"
	"github.com/pkg/errors"
)

const (
	Host               = "https://openrouter.ai/api/v1"
	DefaultModel       = "deepseek/deepseek-chat:free"
	DefaultTemperature = 0.75

	DefaultPersona = "You are a helpful, emotionally expressive assistant. " +
		"Respond clearly, helpfully, and naturally; feel free to use emojis to show tone and emotion. 😊👍 " +
		"Provide links to sources when relevant."
)

var ErrEmptyCompletion = errors.New("empty completion")

type Config struct {
	APIKey      string  `yaml:"apiKey"`
	Model       string  `yaml:"model,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
	Persona     string  `yaml:"persona,omitempty"`
	Host        string  `yaml:"host,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Interface interface {
	Ask(ctx context.Context, question string) (string, error)
}

type Client struct {
	api         *sling.Sling
	model       string
	temperature float64
	persona     string
}

func NewClient(httpClient *http.Client, config Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	host := config.Host
	if host == "" {
		host = Host
	}

	client := &Client{
		api: sling.New().Client(httpClient).Base(strings.TrimSuffix(host, "/")+"/").
			Set("Authorization", "Bearer "+config.APIKey),
		model:       config.Model,
		temperature: config.Temperature,
		persona:     config.Persona,
	}

	if client.model == "" {
		client.model = DefaultModel
	}

	if client.temperature == 0 {
		client.temperature = DefaultTemperature
	}

	if client.persona == "" {
		client.persona = DefaultPersona
	}

	return client
}

func (c *Client) String() string {
	return "openrouter.client"
}

// Ask sends the question after the persona system prompt and returns the trimmed reply.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	body := completionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: c.persona},
			{Role: "user", Content: question},
		},
		Temperature: c.temperature,
	}

	req, err := c.api.New().Post("chat/completions").BodyJSON(body).Request()
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}

	var (
		resp   completionResponse
		failed apiError
	)

	httpResp, err := c.api.Do(req.WithContext(ctx), &resp, &failed)
	if err != nil {
		return "", errors.Wrap(err, "create completion")
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %d: %s", httpResp.StatusCode, failed.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyCompletion
	}

	return reply, nil
}
