package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/homy/internal/domain/models"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

const receiptPrompt = `You are reading a grocery or household receipt photo.
Extract every purchased line item.

RULES:
- Output ONLY a JSON object: {"items": [{"name": string, "price": number or null, "category": "Pantry" or "Household", "expiryDays": integer or null}]}
- "category" is "Pantry" for food and drink, "Household" for everything else.
- "expiryDays" is a typical shelf life in days for perishables, null for non-perishables.
- Skip subtotal, tax, total, payment and change lines.
- Do not wrap the JSON in markdown.`

// ErrEmptyResponse is returned when the API answers without any content block.
var ErrEmptyResponse = errors.New("empty response from ai")

// Client wraps the Anthropic Messages API for receipt reading.
type Client struct {
	httpClient *resty.Client
	endpoint   string
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the Messages API URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	c := &Client{httpClient: client, endpoint: apiURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

// Message is a single conversation turn. Content is either a string or a
// list of content blocks.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractReceiptItems sends the receipt photo to the vision model and returns
// the items it read. Server-assigned fields (id, expiryDate) are cleared.
func (c *Client) ExtractReceiptItems(ctx context.Context, image []byte, mediaType string) ([]models.InventoryItem, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    receiptPrompt,
		Messages: []Message{
			{
				Role: "user",
				Content: []contentBlock{
					{
						Type: "image",
						Source: &imageSource{
							Type:      "base64",
							MediaType: mediaType,
							Data:      base64.StdEncoding.EncodeToString(image),
						},
					},
					{Type: "text", Text: "List the items on this receipt."},
				},
			},
			// Prefill the assistant turn to force JSON.
			{Role: "assistant", Content: "{"},
		},
	}

	var respBody messageResponse
	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(apiErr).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return nil, fmt.Errorf("anthropic api error: status=%d, message=%s", resp.StatusCode(), msg)
	}
	if len(respBody.Content) == 0 {
		return nil, ErrEmptyResponse
	}

	// The opening brace was prefilled.
	return parseItems("{" + respBody.Content[0].Text)
}

func parseItems(text string) ([]models.InventoryItem, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	var result struct {
		Items []models.InventoryItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ai response: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(result.Items))
	for _, item := range result.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		item.ID = ""
		item.ExpiryDate = ""
		if item.ExpiryDays != nil && *item.ExpiryDays <= 0 {
			item.ExpiryDays = nil
		}
		if item.Price != nil && item.Price.IsNegative() {
			item.Price = nil
		}
		items = append(items, item)
	}
	return items, nil
}
