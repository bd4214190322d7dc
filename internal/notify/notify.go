// Package notify is the push delivery boundary. Inbound messages become
// local notification records; token-change signals are forwarded to the
// backend best-effort. No other state mutates on message receipt.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clanwatch/clanwatch/internal/model"
)

// Message is an inbound push payload: a title, a body, and the event
// type that produced it.
type Message struct {
	Title     string
	Body      string
	EventType model.EventType
}

// Inbox persists received notifications for the UI.
type Inbox interface {
	Create(ctx context.Context, notif model.Notification) error
}

// TokenForwarder pushes a changed token to the backend.
type TokenForwarder interface {
	UpdatePushToken(ctx context.Context, token string) error
}

// Receiver turns inbound push messages into local notifications.
type Receiver struct {
	inbox Inbox
	log   zerolog.Logger
}

// NewReceiver creates a push message receiver over the given inbox.
func NewReceiver(inbox Inbox, log zerolog.Logger) *Receiver {
	return &Receiver{inbox: inbox, log: log}
}

// Handle records one inbound message as an unread notification. A
// missing title falls back to the app name.
func (r *Receiver) Handle(ctx context.Context, msg Message) error {
	title := msg.Title
	if title == "" {
		title = "Clanwatch"
	}

	notif := model.Notification{
		ID:        uuid.NewString(),
		EventType: msg.EventType,
		Title:     title,
		Body:      msg.Body,
		CreatedAt: time.Now(),
	}

	if err := r.inbox.Create(ctx, notif); err != nil {
		return err
	}

	r.log.Debug().
		Str("event_type", string(msg.EventType)).
		Str("title", title).
		Msg("notification recorded")
	return nil
}

// TokenHandler forwards token-change signals to the backend.
type TokenHandler struct {
	fwd TokenForwarder
	log zerolog.Logger
}

// NewTokenHandler creates a token-change handler.
func NewTokenHandler(fwd TokenForwarder, log zerolog.Logger) *TokenHandler {
	return &TokenHandler{fwd: fwd, log: log}
}

// TokenChanged sends the new token upstream. Failures are logged, not
// retried; the next token rotation supersedes this one.
func (h *TokenHandler) TokenChanged(ctx context.Context, token string) {
	if err := h.fwd.UpdatePushToken(ctx, token); err != nil {
		h.log.Warn().Err(err).Msg("push token update failed")
		return
	}
	h.log.Info().Msg("push token updated on backend")
}
