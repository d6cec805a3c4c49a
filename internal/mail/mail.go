// Package mail delivers transactional email: magic links, login codes and staff invitations.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"stallhub/internal/config"
	"stallhub/internal/logging"
)

// Message is a plain-text email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Mailer sends a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an HTTPMailer when a provider URL is configured and a LogMailer otherwise.
func New(c config.MailConfig, logger *logging.Logger) Mailer {
	if c.APIURL == "" {
		return NewLogMailer(logger)
	}
	return NewHTTPMailer(c)
}

// HTTPMailer posts messages as JSON to a transactional email API.
type HTTPMailer struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

// NewHTTPMailer returns a mailer whose requests are traced through otelhttp.
func NewHTTPMailer(c config.MailConfig) *HTTPMailer {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPMailer{
		url:    c.APIURL,
		apiKey: c.APIKey,
		from:   c.From,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendRequest{From: m.from, To: msg.To, Subject: msg.Subject, Text: msg.Text})
	if err != nil {
		return fmt.Errorf("encode mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send mail: provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}

// LogMailer writes messages to the JSON log instead of sending them.
type LogMailer struct {
	logger *logging.Logger
}

func NewLogMailer(logger *logging.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail_logged", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"text":    msg.Text,
	})
	return nil
}
