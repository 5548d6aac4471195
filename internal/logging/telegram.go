package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopify-price-sync/internal/config"
)

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

const telegramAPIBase = "https://api.telegram.org"

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

// TelegramNotifier pushes run notifications to a telegram chat. The
// constructor returns nil when credentials are missing and Send on a nil
// notifier is a no-op, so callers do not have to care whether notifications
// are configured.
type TelegramNotifier struct {
	creds      config.TelegramBotConfig
	httpClient *http.Client
	baseUrl    string
}

func NewTelegramNotifier(cfg config.TelegramBotConfig, httpClient *http.Client) *TelegramNotifier {
	if cfg.ChatId == "" || cfg.Token == "" {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TelegramNotifier{
		creds:      cfg,
		httpClient: httpClient,
		baseUrl:    telegramAPIBase,
	}
}

func (n *TelegramNotifier) Send(text string) error {
	if n == nil {
		return nil
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseUrl, n.creds.Token)

	reqBody := telegramRequest{
		ChatId: n.creds.ChatId,
		Text:   text,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := n.httpClient.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}
