package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client отправляет сообщения в чат оператора через Telegram Bot API
type Client struct {
	apiURL     string
	token      string
	chatID     int64
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента; пустой apiURL заменяется на DefaultAPIURL
func NewClient(apiURL, token string, chatID int64, timeout time.Duration, log Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		chatID: chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет текст в чат оператора
func (c *Client) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: c.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// URL содержит токен, в ошибку его не выводим
		return fmt.Errorf("%w: failed to execute request", ErrInternal)
	}
	defer resp.Body.Close()

	// Bot API возвращает конверт с ok и description и при ошибочных статусах
	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: status %d: failed to decode response: %v", ErrInvalidResponse, resp.StatusCode, err)
	}

	if !result.OK {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, result.Description)
	}

	c.log.Info("Telegram: message delivered to chat %d", c.chatID)
	return nil
}
