package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/aimcli/aim/internal/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// Request carries everything needed for one chat-completion call.
type Request struct {
	Prompt   string
	Model    string
	APIKey   string
	Endpoint string
}

// Completer turns a prompt into the model's reply.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client implements Completer against any OpenAI-compatible endpoint.
type Client struct {
	httpClient *http.Client
}

var _ Completer = (*Client)(nil)

// NewClient creates a completion client using the default HTTP client.
// No client-side timeout is applied; the caller's context bounds the call.
func NewClient() *Client {
	return &Client{}
}

// NewClientWithHTTPClient creates a completion client with a custom HTTP client.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// Complete sends req.Prompt as a single user message and returns the
// content of the first choice.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	clientConfig := openai.DefaultConfig(req.APIKey)
	if req.Endpoint != "" {
		clientConfig.BaseURL = req.Endpoint
	}
	if c.httpClient != nil {
		clientConfig.HTTPClient = c.httpClient
	}
	client := openai.NewClientWithConfig(clientConfig)

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}

	apperrors.LogAPIRequest(clientConfig.BaseURL, req.Model, len(req.Prompt))
	startTime := time.Now()

	resp, err := client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", wrapAPIError(ctx, err, clientConfig.BaseURL)
	}

	responseLen := 0
	if len(resp.Choices) > 0 {
		responseLen = len(resp.Choices[0].Message.Content)
	}
	apperrors.LogAPIResponse(resp.Model, len(resp.Choices), responseLen, time.Since(startTime))

	if len(resp.Choices) == 0 {
		return "", apperrors.NewCompletionError(errors.New("no choices in response"))
	}

	return resp.Choices[0].Message.Content, nil
}

// wrapAPIError maps transport and API failures onto application errors.
func wrapAPIError(ctx context.Context, err error, endpoint string) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return apperrors.NewCancelledError(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
		return apperrors.NewAuthenticationError(endpoint)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusUnauthorized {
		return apperrors.NewAuthenticationError(endpoint)
	}

	return apperrors.NewCompletionError(err)
}
