package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/clanwatch/clanwatch/internal/api"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/session"
)

// spyGateway records invocations and returns canned results.
type spyGateway struct {
	calls int
	err   error

	lastUserID string
	lastTag    string
}

func (g *spyGateway) RegisterUser(ctx context.Context, pushToken string) (*model.User, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &model.User{ID: "user-42"}, nil
}

func (g *spyGateway) UpdatePushToken(ctx context.Context, userID, token string) error {
	g.calls++
	g.lastUserID = userID
	return g.err
}

func (g *spyGateway) AddAccount(ctx context.Context, userID, tag string) (*model.Account, error) {
	g.calls++
	g.lastUserID = userID
	g.lastTag = tag
	if g.err != nil {
		return nil, g.err
	}
	return &model.Account{ID: "a1", Tag: tag, UserID: userID}, nil
}

func (g *spyGateway) Accounts(ctx context.Context, userID string) ([]model.Account, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return []model.Account{{ID: "a1", Tag: "#AAA"}}, nil
}

func (g *spyGateway) DeleteAccount(ctx context.Context, userID, tag string) error {
	g.calls++
	g.lastUserID = userID
	g.lastTag = tag
	return g.err
}

func (g *spyGateway) AddClan(ctx context.Context, userID, clanTag string) (*model.TrackedClan, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return &model.TrackedClan{ID: "c1", ClanTag: clanTag}, nil
}

func (g *spyGateway) Clans(ctx context.Context, userID string) ([]model.TrackedClan, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return nil, nil
}

func (g *spyGateway) DeleteClan(ctx context.Context, userID, clanTag string) error {
	g.calls++
	g.lastUserID = userID
	return g.err
}

func (g *spyGateway) Reminders(ctx context.Context, userID string) (*model.Reminders, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return &model.Reminders{}, nil
}

func (g *spyGateway) ReplaceReminders(ctx context.Context, userID string, drafts []model.ReminderConfigDraft) (*model.Reminders, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return &model.Reminders{}, nil
}

func (g *spyGateway) ToggleReminder(ctx context.Context, userID string, eventType model.EventType, enabled bool) error {
	g.calls++
	g.lastUserID = userID
	return g.err
}

func (g *spyGateway) AddReminderTime(ctx context.Context, userID string, eventType model.EventType, draft model.ReminderTimeDraft) (*model.ReminderTime, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return &model.ReminderTime{ID: "t1", MinutesBeforeEnd: draft.MinutesBeforeEnd}, nil
}

func (g *spyGateway) DeleteReminderTime(ctx context.Context, userID string, eventType model.EventType, timeID string) error {
	g.calls++
	g.lastUserID = userID
	return g.err
}

func (g *spyGateway) Status(ctx context.Context, userID string) (*model.Status, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return &model.Status{}, nil
}

func (g *spyGateway) StatusSummary(ctx context.Context, userID string) (*model.StatusSummary, error) {
	g.calls++
	g.lastUserID = userID
	if g.err != nil {
		return nil, g.err
	}
	return &model.StatusSummary{TotalMissing: 1}, nil
}

var _ api.Gateway = (*spyGateway)(nil)

func TestNoSessionShortCircuits(t *testing.T) {
	gw := &spyGateway{}
	r := New(gw, session.NewMemStore(""))
	ctx := context.Background()

	ops := map[string]func() error{
		"Accounts":        func() error { _, err := r.Accounts(ctx); return err },
		"AddAccount":      func() error { _, err := r.AddAccount(ctx, "#AAA"); return err },
		"DeleteAccount":   func() error { return r.DeleteAccount(ctx, "#AAA") },
		"Clans":           func() error { _, err := r.Clans(ctx); return err },
		"Reminders":       func() error { _, err := r.Reminders(ctx); return err },
		"ToggleReminder":  func() error { return r.ToggleReminder(ctx, model.EventClanWar, true) },
		"Status":          func() error { _, err := r.Status(ctx); return err },
		"StatusSummary":   func() error { _, err := r.StatusSummary(ctx); return err },
		"UpdatePushToken": func() error { return r.UpdatePushToken(ctx, "tok") },
	}

	for name, op := range ops {
		err := op()
		if !IsNoSession(err) {
			t.Errorf("%s: err = %v, want no-session fault", name, err)
		}
	}

	if gw.calls != 0 {
		t.Errorf("gateway invoked %d times without a session", gw.calls)
	}
}

func TestRegisterPersistsSession(t *testing.T) {
	gw := &spyGateway{}
	sess := session.NewMemStore("")
	r := New(gw, sess)

	user, err := r.Register(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID != "user-42" {
		t.Errorf("user id = %q", user.ID)
	}

	id, ok := sess.UserID()
	if !ok || id != "user-42" {
		t.Errorf("session = (%q, %v), want persisted user-42", id, ok)
	}
	if !r.IsLoggedIn() {
		t.Error("IsLoggedIn = false after Register")
	}
}

func TestOperationsUseSessionID(t *testing.T) {
	gw := &spyGateway{}
	r := New(gw, session.NewMemStore("user-7"))

	if _, err := r.AddAccount(context.Background(), "#BBB"); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if gw.lastUserID != "user-7" {
		t.Errorf("gateway saw user id %q, want user-7", gw.lastUserID)
	}
	if gw.lastTag != "#BBB" {
		t.Errorf("gateway saw tag %q", gw.lastTag)
	}
}

func TestFaultClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FaultKind
	}{
		{"status error", &api.StatusError{Code: 409, Message: "duplicate"}, FaultServerRejected},
		{"decode error", &api.DecodeError{Err: errors.New("bad json")}, FaultDecode},
		{"plain error", errors.New("connection refused"), FaultTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &spyGateway{err: tc.err}
			r := New(gw, session.NewMemStore("u1"))

			_, err := r.Accounts(context.Background())
			f, ok := AsFault(err)
			if !ok {
				t.Fatalf("err = %v, want Fault", err)
			}
			if f.Kind != tc.want {
				t.Errorf("kind = %v, want %v", f.Kind, tc.want)
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("cause not preserved: %v", err)
			}
		})
	}
}

func TestServerRejectedKeepsStatusError(t *testing.T) {
	gw := &spyGateway{err: &api.StatusError{Code: 404, Message: "not found"}}
	r := New(gw, session.NewMemStore("u1"))

	_, err := r.Status(context.Background())
	se, ok := api.IsStatusError(err)
	if !ok {
		t.Fatalf("StatusError not reachable through fault chain: %v", err)
	}
	if se.Code != 404 {
		t.Errorf("code = %d", se.Code)
	}
}
