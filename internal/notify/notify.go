// Package notify delivers configuration events to a Discord webhook.
//
// Payloads carry only the titles, messages, and fields the caller passes
// in. Credentials and passphrases must never be placed in a notification.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

// Level classifies a notification for color and emoji selection.
type Level string

// Notification levels, ordered by severity.
const (
	LevelInfo     Level = "info"
	LevelSuccess  Level = "success"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// Embed accent colors per level.
const (
	colorInfo     = 0x3498db
	colorSuccess  = 0x2ecc71
	colorWarning  = 0xf39c12
	colorError    = 0xe74c3c
	colorCritical = 0x8e44ad
	colorDefault  = 0x95a5a6
)

const (
	// DefaultUsername is the webhook display name.
	DefaultUsername = "Lotto Keeper"

	// DefaultTimeout bounds a single webhook delivery.
	DefaultTimeout = 10 * time.Second

	// Discord allows roughly 30 webhook requests per minute. The limiter
	// stays under that with a small burst allowance.
	requestInterval = 2 * time.Second
	requestBurst    = 5
)

// ErrDisabled indicates a send was attempted while notifications are off.
var ErrDisabled = errors.New("notifications are disabled")

// Color returns the embed accent color for the level.
func (l Level) Color() int {
	switch l {
	case LevelInfo:
		return colorInfo
	case LevelSuccess:
		return colorSuccess
	case LevelWarning:
		return colorWarning
	case LevelError:
		return colorError
	case LevelCritical:
		return colorCritical
	default:
		return colorDefault
	}
}

// Emoji returns the title prefix for the level.
func (l Level) Emoji() string {
	switch l {
	case LevelInfo:
		return "ℹ️"
	case LevelSuccess:
		return "✅"
	case LevelWarning:
		return "⚠️"
	case LevelError:
		return "❌"
	case LevelCritical:
		return "\U0001f6a8"
	default:
		return "\U0001f4e2"
	}
}

// Field is an extra key/value pair rendered inside the embed.
type Field struct {
	Name  string
	Value string
}

// Notifier posts embed messages to a single Discord webhook.
type Notifier struct {
	webhookURL string
	enabled    bool
	username   string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(n *Notifier) {
		n.httpClient.Timeout = timeout
	}
}

// WithUsername overrides the webhook display name.
func WithUsername(username string) Option {
	return func(n *Notifier) {
		n.username = username
	}
}

// NewNotifier creates a notifier for the given webhook URL. A notifier
// with an empty URL is permanently disabled.
func NewNotifier(webhookURL string, enabled bool, opts ...Option) *Notifier {
	n := &Notifier{
		webhookURL: webhookURL,
		enabled:    enabled && webhookURL != "",
		username:   DefaultUsername,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(requestInterval), requestBurst),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// FromSettings builds a notifier from stored notification settings.
func FromSettings(s lotto.NotificationSettings, opts ...Option) *Notifier {
	return NewNotifier(s.WebhookURL, s.EnableNotifications, opts...)
}

// Enabled reports whether sends will be attempted.
func (n *Notifier) Enabled() bool {
	return n.enabled
}

// embed mirrors the subset of the Discord embed object the notifier uses.
type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Timestamp   string       `json:"timestamp"`
	Footer      embedFooter  `json:"footer"`
	Fields      []embedField `json:"fields,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type webhookPayload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

// Send delivers one notification, waiting on the rate limiter first.
func (n *Notifier) Send(ctx context.Context, level Level, title, message string, fields ...Field) error {
	if !n.enabled {
		return ErrDisabled
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(n.buildPayload(level, title, message, fields))
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "lottokeeper")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	// Discord answers 204 No Content on success.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	return nil
}

func (n *Notifier) buildPayload(level Level, title, message string, fields []Field) webhookPayload {
	at := n.now().UTC()

	e := embed{
		Title:       level.Emoji() + " " + title,
		Description: message,
		Color:       level.Color(),
		Timestamp:   at.Format(time.RFC3339),
		Footer: embedFooter{
			Text: fmt.Sprintf("%s | Level: %s", n.username, string(level)),
		},
	}

	for _, f := range fields {
		e.Fields = append(e.Fields, embedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: true,
		})
	}

	return webhookPayload{
		Username: n.username,
		Embeds:   []embed{e},
	}
}

// Info sends an informational notification.
func (n *Notifier) Info(ctx context.Context, title, message string, fields ...Field) error {
	return n.Send(ctx, LevelInfo, title, message, fields...)
}

// Success sends a success notification.
func (n *Notifier) Success(ctx context.Context, title, message string, fields ...Field) error {
	return n.Send(ctx, LevelSuccess, title, message, fields...)
}

// Warning sends a warning notification.
func (n *Notifier) Warning(ctx context.Context, title, message string, fields ...Field) error {
	return n.Send(ctx, LevelWarning, title, message, fields...)
}

// Error sends an error notification.
func (n *Notifier) Error(ctx context.Context, title, message string, fields ...Field) error {
	return n.Send(ctx, LevelError, title, message, fields...)
}

// Critical sends a critical notification.
func (n *Notifier) Critical(ctx context.Context, title, message string, fields ...Field) error {
	return n.Send(ctx, LevelCritical, title, message, fields...)
}

// SendTest delivers the message used by the configuration test command.
func (n *Notifier) SendTest(ctx context.Context, appVersion string) error {
	return n.Success(ctx, "Webhook Test", "The notification channel is working.",
		Field{Name: "App Version", Value: appVersion},
	)
}
