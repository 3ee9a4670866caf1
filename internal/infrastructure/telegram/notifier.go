// Package telegram delivers stage alerts to a Telegram chat via the bot
// API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier renders stage alerts as Markdown messages and posts them to the
// configured chat.
type Notifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Publish renders the alert and posts it to the configured chat.
func (n *Notifier) Publish(ctx context.Context, alert domain.StageAlert) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", renderAlert(alert))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// renderAlert keeps the message wording in one place. Stage "0" reads as
// suspended rather than "stage 0".
func renderAlert(alert domain.StageAlert) string {
	if alert.Stage == "0" {
		return fmt.Sprintf("*%s*: load shedding suspended", alert.Location)
	}
	return fmt.Sprintf("*%s* load shedding is now at *stage %s*", alert.Location, alert.Stage)
}
