// Package notifier delivers messages and file snapshots to a Telegram
// bot chat. The Bot API is treated as a black box: callers get back a
// success/failure and nothing else.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	messageTimeout  = 10 * time.Second
	documentTimeout = 60 * time.Second
)

// Telegram is an HTTP client for the Telegram Bot API.
type Telegram struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewTelegram creates a Telegram notifier. baseURL is overridable for tests;
// pass "" for the production endpoint.
func NewTelegram(token, baseURL string) *Telegram {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &Telegram{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// SendMessage sends a text message to the given chat.
func (t *Telegram) SendMessage(ctx context.Context, chatID, text string) error {
	if t.token == "" || chatID == "" {
		return fmt.Errorf("telegram: missing bot token or chat ID")
	}

	ctx, cancel := context.WithTimeout(ctx, messageTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return t.do(req)
}

// SendDocument uploads a file to the given chat with an optional caption.
func (t *Telegram) SendDocument(ctx context.Context, chatID, path, caption string) error {
	if t.token == "" || chatID == "" {
		return fmt.Errorf("telegram: missing bot token or chat ID")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telegram: open document: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("chat_id", chatID); err != nil {
		return err
	}
	if caption != "" {
		if err := mw.WriteField("caption", caption); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, documentTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/bot%s/sendDocument", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return t.do(req)
}

func (t *Telegram) do(req *http.Request) error {
	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("telegram: status %d: %s", res.StatusCode, body)
	}
	return nil
}
