package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clanwatch/clanwatch/internal/model"
)

type memInbox struct {
	created []model.Notification
	err     error
}

func (m *memInbox) Create(ctx context.Context, notif model.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, notif)
	return nil
}

func TestHandleRecordsNotification(t *testing.T) {
	inbox := &memInbox{}
	r := NewReceiver(inbox, zerolog.Nop())

	err := r.Handle(context.Background(), Message{
		Title:     "War ends soon",
		Body:      "2 attacks left",
		EventType: model.EventClanWar,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(inbox.created) != 1 {
		t.Fatalf("created %d notifications", len(inbox.created))
	}
	n := inbox.created[0]
	if n.ID == "" {
		t.Error("no id assigned")
	}
	if n.Title != "War ends soon" || n.Body != "2 attacks left" {
		t.Errorf("notification = %+v", n)
	}
	if n.EventType != model.EventClanWar {
		t.Errorf("event type = %s", n.EventType)
	}
	if n.Read {
		t.Error("new notification marked read")
	}
	if n.CreatedAt.IsZero() {
		t.Error("CreatedAt unset")
	}
}

func TestHandleDefaultsTitle(t *testing.T) {
	inbox := &memInbox{}
	r := NewReceiver(inbox, zerolog.Nop())

	if err := r.Handle(context.Background(), Message{Body: "body only"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if inbox.created[0].Title != "Clanwatch" {
		t.Errorf("title = %q, want app name fallback", inbox.created[0].Title)
	}
}

func TestHandlePropagatesInboxError(t *testing.T) {
	inbox := &memInbox{err: errors.New("db locked")}
	r := NewReceiver(inbox, zerolog.Nop())

	if err := r.Handle(context.Background(), Message{Title: "x"}); err == nil {
		t.Error("expected error")
	}
}

type memForwarder struct {
	tokens []string
	err    error
}

func (m *memForwarder) UpdatePushToken(ctx context.Context, token string) error {
	if m.err != nil {
		return m.err
	}
	m.tokens = append(m.tokens, token)
	return nil
}

func TestTokenChangedForwards(t *testing.T) {
	fwd := &memForwarder{}
	h := NewTokenHandler(fwd, zerolog.Nop())

	h.TokenChanged(context.Background(), "tok-1")
	if len(fwd.tokens) != 1 || fwd.tokens[0] != "tok-1" {
		t.Errorf("tokens = %v", fwd.tokens)
	}
}

func TestTokenChangedSwallowsFailure(t *testing.T) {
	fwd := &memForwarder{err: errors.New("unreachable")}
	h := NewTokenHandler(fwd, zerolog.Nop())

	// Best-effort: must not panic, nothing to assert beyond that.
	h.TokenChanged(context.Background(), "tok-2")
}
