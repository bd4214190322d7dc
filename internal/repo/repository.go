// Package repo mediates between the session store and the remote
// gateway. Every operation resolves the current session, performs
// exactly one gateway call, and reports failures as typed faults so
// callers can distinguish "no user yet" from "network down" from
// "server said no".
package repo

import (
	"context"

	"github.com/clanwatch/clanwatch/internal/api"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/session"
)

// Repository exposes domain-shaped operations scoped to the current
// session. It holds no mutable state of its own; the server is
// authoritative for everything except the session id.
type Repository struct {
	gw      api.Gateway
	session session.Store
}

// New creates a Repository over the given gateway and session store.
func New(gw api.Gateway, s session.Store) *Repository {
	return &Repository{gw: gw, session: s}
}

// IsLoggedIn reports whether a session is present.
func (r *Repository) IsLoggedIn() bool {
	return r.session.IsLoggedIn()
}

// Register creates a user on the backend and persists the returned id
// as the local session. It is the only repository operation that does
// not require an existing session.
func (r *Repository) Register(ctx context.Context, pushToken string) (*model.User, error) {
	user, err := r.gw.RegisterUser(ctx, pushToken)
	if err != nil {
		return nil, classify(err)
	}
	if err := r.session.SaveUserID(user.ID); err != nil {
		return nil, &Fault{Kind: FaultTransport, Err: err}
	}
	return user, nil
}

// UpdatePushToken forwards a changed push token to the backend.
func (r *Repository) UpdatePushToken(ctx context.Context, token string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	if err := r.gw.UpdatePushToken(ctx, userID, token); err != nil {
		return classify(err)
	}
	return nil
}

// AddAccount registers a game account tag for tracking.
func (r *Repository) AddAccount(ctx context.Context, tag string) (*model.Account, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	account, err := r.gw.AddAccount(ctx, userID, tag)
	if err != nil {
		return nil, classify(err)
	}
	return account, nil
}

// Accounts fetches the authoritative account list.
func (r *Repository) Accounts(ctx context.Context) ([]model.Account, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	accounts, err := r.gw.Accounts(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	return accounts, nil
}

// DeleteAccount stops tracking the account with the given tag.
func (r *Repository) DeleteAccount(ctx context.Context, tag string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	if err := r.gw.DeleteAccount(ctx, userID, tag); err != nil {
		return classify(err)
	}
	return nil
}

// AddClan registers a clan tag for event monitoring.
func (r *Repository) AddClan(ctx context.Context, clanTag string) (*model.TrackedClan, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	clan, err := r.gw.AddClan(ctx, userID, clanTag)
	if err != nil {
		return nil, classify(err)
	}
	return clan, nil
}

// Clans fetches the authoritative clan list.
func (r *Repository) Clans(ctx context.Context) ([]model.TrackedClan, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	clans, err := r.gw.Clans(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	return clans, nil
}

// DeleteClan stops monitoring the clan with the given tag.
func (r *Repository) DeleteClan(ctx context.Context, clanTag string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	if err := r.gw.DeleteClan(ctx, userID, clanTag); err != nil {
		return classify(err)
	}
	return nil
}

// Reminders fetches the full reminder configuration.
func (r *Repository) Reminders(ctx context.Context) (*model.Reminders, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	reminders, err := r.gw.Reminders(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	return reminders, nil
}

// ReplaceReminders replaces the full reminder configuration.
func (r *Repository) ReplaceReminders(ctx context.Context, drafts []model.ReminderConfigDraft) (*model.Reminders, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	reminders, err := r.gw.ReplaceReminders(ctx, userID, drafts)
	if err != nil {
		return nil, classify(err)
	}
	return reminders, nil
}

// ToggleReminder enables or disables reminders for one event type.
func (r *Repository) ToggleReminder(ctx context.Context, eventType model.EventType, enabled bool) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	if err := r.gw.ToggleReminder(ctx, userID, eventType, enabled); err != nil {
		return classify(err)
	}
	return nil
}

// AddReminderTime adds a minutes-before-end entry to one event type.
func (r *Repository) AddReminderTime(ctx context.Context, eventType model.EventType, draft model.ReminderTimeDraft) (*model.ReminderTime, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	rt, err := r.gw.AddReminderTime(ctx, userID, eventType, draft)
	if err != nil {
		return nil, classify(err)
	}
	return rt, nil
}

// DeleteReminderTime removes a reminder time entry by id.
func (r *Repository) DeleteReminderTime(ctx context.Context, eventType model.EventType, timeID string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	if err := r.gw.DeleteReminderTime(ctx, userID, eventType, timeID); err != nil {
		return classify(err)
	}
	return nil
}

// Status fetches the full event snapshot list.
func (r *Repository) Status(ctx context.Context) (*model.Status, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	status, err := r.gw.Status(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	return status, nil
}

// StatusSummary fetches the compact widget projection.
func (r *Repository) StatusSummary(ctx context.Context) (*model.StatusSummary, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	summary, err := r.gw.StatusSummary(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	return summary, nil
}

// userID resolves the session id, short-circuiting to a no-session
// fault without touching the network when none is saved.
func (r *Repository) userID() (string, error) {
	id, ok := r.session.UserID()
	if !ok {
		return "", &Fault{Kind: FaultNoSession}
	}
	return id, nil
}

// classify maps gateway errors onto fault categories.
func classify(err error) *Fault {
	if se, ok := api.IsStatusError(err); ok {
		return &Fault{Kind: FaultServerRejected, Err: se}
	}
	if api.IsDecodeError(err) {
		return &Fault{Kind: FaultDecode, Err: err}
	}
	return &Fault{Kind: FaultTransport, Err: err}
}
