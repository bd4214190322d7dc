package api

import (
	"context"

	"github.com/clanwatch/clanwatch/internal/model"
)

// Gateway is the typed request/response boundary to the backend. Client
// is the production implementation; tests substitute spies and stubs.
type Gateway interface {
	RegisterUser(ctx context.Context, pushToken string) (*model.User, error)
	UpdatePushToken(ctx context.Context, userID, token string) error

	AddAccount(ctx context.Context, userID, tag string) (*model.Account, error)
	Accounts(ctx context.Context, userID string) ([]model.Account, error)
	DeleteAccount(ctx context.Context, userID, tag string) error

	AddClan(ctx context.Context, userID, clanTag string) (*model.TrackedClan, error)
	Clans(ctx context.Context, userID string) ([]model.TrackedClan, error)
	DeleteClan(ctx context.Context, userID, clanTag string) error

	Reminders(ctx context.Context, userID string) (*model.Reminders, error)
	ReplaceReminders(ctx context.Context, userID string, drafts []model.ReminderConfigDraft) (*model.Reminders, error)
	ToggleReminder(ctx context.Context, userID string, eventType model.EventType, enabled bool) error
	AddReminderTime(ctx context.Context, userID string, eventType model.EventType, draft model.ReminderTimeDraft) (*model.ReminderTime, error)
	DeleteReminderTime(ctx context.Context, userID string, eventType model.EventType, timeID string) error

	Status(ctx context.Context, userID string) (*model.Status, error)
	StatusSummary(ctx context.Context, userID string) (*model.StatusSummary, error)
}

var _ Gateway = (*Client)(nil)
