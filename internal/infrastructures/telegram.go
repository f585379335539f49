package infrastructures

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type TelegramConfig struct {
	BaseURL  string
	BotToken string
	ChatID   string
}

// TelegramClient posts reminder notifications to the Telegram Bot API. The
// core treats delivery as best effort; callers decide what a failure means.
type TelegramClient struct {
	HTTPClient *http.Client
	Config     *TelegramConfig
}

// NewTelegramClient creates a new Telegram HTTP client with configuration
func NewTelegramClient() *TelegramClient {
	config := &TelegramConfig{
		BaseURL:  Config.TELEGRAM_BASE_URL,
		BotToken: Config.TELEGRAM_BOT_TOKEN,
		ChatID:   Config.TELEGRAM_CHAT_ID,
	}

	return &TelegramClient{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Config: config,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers one plain-text message to the configured chat.
func (c *TelegramClient) SendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.Config.BaseURL, c.Config.BotToken)

	payload, err := json.Marshal(sendMessageRequest{
		ChatID: c.Config.ChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
