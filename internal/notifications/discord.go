package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Discord is a simple Discord webhook notifier.
type Discord struct {
	webhookURL string
	logger     *log.Logger
	client     *http.Client
}

// NewDiscord creates a new Discord notifier. If webhookURL is empty,
// notifications are silently skipped.
func NewDiscord(webhookURL string, logger *log.Logger) *Discord {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Discord{
		webhookURL: webhookURL,
		logger:     logger,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled returns true if the webhook is configured.
func (d *Discord) Enabled() bool {
	return d != nil && d.webhookURL != ""
}

// discordMessage is the payload for Discord webhook.
type discordMessage struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// post sends msg to the webhook and waits for the response. Failures are
// logged and returned.
func (d *Discord) post(ctx context.Context, msg discordMessage) error {
	if !d.Enabled() {
		return nil
	}
	err := d.do(ctx, msg)
	if err != nil {
		d.logger.Printf("discord: %v", err)
	}
	return err
}

func (d *Discord) do(ctx context.Context, msg discordMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifyEngineInitFailed reports a failed engine initialize. It blocks until
// the webhook answers because the process usually exits right after.
func (d *Discord) NotifyEngineInitFailed(ctx context.Context, backend, dict, result string) error {
	msg := discordMessage{
		Content: "@here",
		Embeds: []discordEmbed{{
			Title:       "VOICEVOX engine failed to initialize",
			Description: fmt.Sprintf("Initialize returned `%s`", result),
			Color:       0xFF0000, // Red
			Fields: []embedField{
				{Name: "Backend", Value: backend, Inline: true},
				{Name: "Dictionary", Value: fmt.Sprintf("`%s`", dict)},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}
	return d.post(ctx, msg)
}

// NotifyDrainTimeout reports requests still running when shutdown gave up
// waiting for them.
func (d *Discord) NotifyDrainTimeout(ctx context.Context, active int64, waited time.Duration) error {
	msg := discordMessage{
		Embeds: []discordEmbed{{
			Title:       "Shutdown drain timed out",
			Description: fmt.Sprintf("%d synthesis requests were still active after %s", active, waited),
			Color:       0xFFA500, // Orange
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}
	return d.post(ctx, msg)
}
