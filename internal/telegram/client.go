package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/epixlabs/contact-relay/internal/model"
)

// ParseMode is the formatting mode requested for every message.
const ParseMode = "HTML"

// Client sends messages to one chat through the Telegram Bot API.
type Client struct {
	BaseURL    string
	Token      string
	ChatID     string
	HTTPClient *http.Client
}

// NewClient returns a client for the bot identified by token. The underlying HTTP client has no
// timeout of its own.
func NewClient(baseURL string, token string, chatID string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		ChatID:     chatID,
		HTTPClient: &http.Client{},
	}
}

// SendMessage posts text to the configured chat and returns the decoded API envelope. The body is
// decoded whatever the HTTP status is, because rejections arrive as {"ok":false,...} with a 4xx
// status. An error is only returned if the request could not be made or the answer is not JSON.
func (c *Client) SendMessage(ctx context.Context, text string) (*model.APIResponse, error) {
	payload, err := json.Marshal(model.SendMessageRequest{
		ChatID:    c.ChatID,
		Text:      text,
		ParseMode: ParseMode,
	})
	if err != nil {
		return nil, fmt.Errorf("encode sendMessage request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		// The URL contains the token, so it must not end up in the error text.
		return nil, fmt.Errorf("sendMessage request failed: %w", unwrapURLError(err))
	}
	defer res.Body.Close()

	var apiResponse model.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("decode sendMessage response (status %d): %w", res.StatusCode, err)
	}
	return &apiResponse, nil
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
