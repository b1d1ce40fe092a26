// internal/transport/line/client.go
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonerrors "quotebot/internal/common/errors"
	"quotebot/internal/common/logger"
)

// Client talks to the LINE Messaging API reply and push endpoints.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      logger.Logger
}

func NewClient(endpoint, accessToken string, log logger.Logger) *Client {
	return &Client{
		endpoint:    endpoint,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log.WithFields(map[string]interface{}{"component": "line-client"}),
	}
}

// Reply answers a webhook event. Reply tokens are single-use and expire
// quickly, so failures are not worth retrying.
func (c *Client) Reply(ctx context.Context, replyToken string, messages []Message) error {
	payload := map[string]interface{}{
		"replyToken": replyToken,
		"messages":   messages,
	}

	if err := c.post(ctx, "/v2/bot/message/reply", payload); err != nil {
		return commonerrors.NewReplySendError(err)
	}
	return nil
}

// Push sends messages outside a reply window, used for admin alerts.
func (c *Client) Push(ctx context.Context, to string, messages []Message) error {
	payload := map[string]interface{}{
		"to":       to,
		"messages": messages,
	}

	if err := c.post(ctx, "/v2/bot/message/push", payload); err != nil {
		return commonerrors.NewNotificationError("push", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := c.endpoint + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("line api %s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	return nil
}
