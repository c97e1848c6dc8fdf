// Package notify posts status changes to an HTTP webhook.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"adpasswd/internal/domain"
	apperrors "adpasswd/internal/errors"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Payload is the JSON document posted for every level change.
type Payload struct {
	Principal        string   `json:"principal"`
	Level            string   `json:"level"`
	Message          string   `json:"message"`
	Reason           string   `json:"reason,omitempty"`
	RemainingSeconds *float64 `json:"remaining_seconds,omitempty"`
	NeverExpires     bool     `json:"never_expires"`
	CheckedAt        string   `json:"checked_at"`
}

// NewPayload builds the webhook document for status.
func NewPayload(principal string, status domain.Status) Payload {
	payload := Payload{
		Principal: principal,
		Level:     status.Level.String(),
		Message:   status.Message,
		CheckedAt: status.CheckedAt.UTC().Format(time.RFC3339),
	}

	switch status.Result.Kind {
	case domain.KindExpiresIn:
		seconds := status.Result.Remaining.Seconds()
		payload.RemainingSeconds = &seconds
	case domain.KindNeverExpires:
		payload.NeverExpires = true
	case domain.KindMustChange:
		seconds := 0.0
		payload.RemainingSeconds = &seconds
	default:
		payload.Reason = status.Result.Reason.String()
	}

	return payload
}

// WebhookReporter posts a Payload whenever the status level changes. The
// first report after start is always sent. A failed post is retried on the
// next report.
type WebhookReporter struct {
	client    domain.HTTPAdapter
	url       string
	principal string
	logger    *slog.Logger

	mu        sync.Mutex
	lastLevel *domain.Level
}

// NewWebhookReporter creates a reporter posting to url.
func NewWebhookReporter(client domain.HTTPAdapter, url, principal string, logger *slog.Logger) *WebhookReporter {
	return &WebhookReporter{
		client:    client,
		url:       url,
		principal: principal,
		logger:    logger,
	}
}

// Report implements domain.StatusReporter.
func (r *WebhookReporter) Report(ctx context.Context, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastLevel != nil && *r.lastLevel == status.Level {
		r.logger.DebugContext(ctx, "Status level unchanged, skipping webhook", "level", status.Level.String())
		return nil
	}

	resp, err := r.client.Post(ctx, r.url, NewPayload(r.principal, status))
	if err != nil {
		return fmt.Errorf("failed to post status webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.NewHTTPError(resp.StatusCode, http.MethodPost, r.url, string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	level := status.Level
	r.lastLevel = &level
	r.logger.InfoContext(ctx, "Posted status webhook", "level", level.String(), "status", resp.StatusCode)
	return nil
}
