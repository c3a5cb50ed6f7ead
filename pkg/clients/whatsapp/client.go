package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/homy/internal/config"
)

// MaxBodyLength is the Cloud API limit on a text message body, in characters.
const MaxBodyLength = 4096

// Client sends household notifications over the WhatsApp Cloud API.
type Client interface {
	SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendTextMessageResponse, error)
}

// APIClient is the resty-backed Client.
type APIClient struct {
	httpClient    *resty.Client
	phoneNumberID string
	maxBody       int
}

// NewClient builds a client for the configured sender number.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		phoneNumberID: cfg.PhoneNumberID,
		maxBody:       MaxBodyLength,
	}
}

// SendTextMessageRequest is a plain text message to one recipient.
type SendTextMessageRequest struct {
	To         string
	Body       string
	PreviewURL bool
}

// SendTextMessageResponse collects the message ids Meta assigned, one per
// part actually sent.
type SendTextMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

// SendTextMessage delivers req.Body, split at line breaks into parts that fit
// the body limit. Parts go out in order and sending stops at the first failure.
func (c *APIClient) SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendTextMessageResponse, error) {
	parts := SplitBody(req.Body, c.maxBody)

	out := new(SendTextMessageResponse)
	for i, part := range parts {
		result, err := c.sendPart(ctx, req.To, part, req.PreviewURL)
		if err != nil {
			if len(parts) > 1 {
				return out, fmt.Errorf("part %d of %d: %w", i+1, len(parts), err)
			}
			return nil, err
		}
		out.Messages = append(out.Messages, result.Messages...)
	}

	return out, nil
}

func (c *APIClient) sendPart(ctx context.Context, to, body string, previewURL bool) (*SendTextMessageResponse, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body":        body,
			"preview_url": previewURL,
		},
	}

	result := new(SendTextMessageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return nil, fmt.Errorf("whatsapp api error: code=%d, message=%s", code, apiErr.Error.Message)
	}

	return result, nil
}

// SplitBody breaks body into parts of at most limit characters. Cuts fall on
// line breaks; a single line longer than limit is cut mid-line.
func SplitBody(body string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(body) <= limit {
		return []string{body}
	}

	var (
		parts   []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size > 0 {
			parts = append(parts, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.SplitAfter(body, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		for n > limit {
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		current.WriteString(line)
		size += n
	}
	flush()

	trimmed := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSuffix(part, "\n"); strings.TrimSpace(part) != "" {
			trimmed = append(trimmed, part)
		}
	}
	return trimmed
}
