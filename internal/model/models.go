package model

import "time"

// EventType identifies one of the fixed clan event categories tracked
// by the backend.
type EventType string

const (
	EventClanWar       EventType = "clan_war"
	EventClanWarLeague EventType = "clan_war_league"
	EventRaidWeekend   EventType = "raid_weekend"
)

// EventTypes lists all event categories in display order.
var EventTypes = []EventType{EventClanWar, EventClanWarLeague, EventRaidWeekend}

// Label returns the human-readable name for an event type.
func (t EventType) Label() string {
	switch t {
	case EventClanWar:
		return "Clan War"
	case EventClanWarLeague:
		return "Clan War League"
	case EventRaidWeekend:
		return "Raid Weekend"
	default:
		return string(t)
	}
}

// User is the registered identity returned by the backend.
type User struct {
	ID                  string `json:"id"`
	CreatedAt           string `json:"created_at"`
	NotificationEnabled bool   `json:"notification_enabled"`
	PushToken           string `json:"fcm_token,omitempty"`
}

// Account is a tracked game account owned by the current user.
// The server is authoritative; the client only holds the last fetched list.
type Account struct {
	ID              string `json:"id"`
	Tag             string `json:"tag"`
	Name            string `json:"name,omitempty"`
	UserID          string `json:"user_id"`
	CurrentClanTag  string `json:"current_clan_tag,omitempty"`
	CurrentClanName string `json:"current_clan_name,omitempty"`
	LastSyncedAt    string `json:"last_synced_at,omitempty"`
	DisplayName     string `json:"display_name,omitempty"`
}

// TrackedClan is a clan monitored for event activity.
type TrackedClan struct {
	ID        string `json:"id"`
	ClanTag   string `json:"clan_tag"`
	ClanName  string `json:"clan_name,omitempty"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ReminderTime is one (minutes-before-end, label) entry within a
// reminder configuration. The id is server-assigned.
type ReminderTime struct {
	ID               string `json:"id"`
	MinutesBeforeEnd int    `json:"minutes_before_end"`
	Label            string `json:"label,omitempty"`
	Enabled          bool   `json:"enabled"`
}

// ReminderConfig is the reminder configuration for one event type.
// There is exactly one per event type and user.
type ReminderConfig struct {
	ID        string         `json:"id"`
	EventType EventType      `json:"event_type"`
	Enabled   bool           `json:"enabled"`
	Times     []ReminderTime `json:"times"`
}

// Reminders wraps the full reminder configuration list for a user.
type Reminders struct {
	Reminders []ReminderConfig `json:"reminders"`
}

// ReminderTimeDraft is the client-side shape for creating a reminder time.
type ReminderTimeDraft struct {
	MinutesBeforeEnd int    `json:"minutes_before_end"`
	Label            string `json:"label,omitempty"`
}

// ReminderConfigDraft is one entry of a full reminder replacement request.
type ReminderConfigDraft struct {
	EventType EventType           `json:"event_type"`
	Enabled   bool                `json:"enabled"`
	Times     []ReminderTimeDraft `json:"times"`
}

// EventSnapshot is a server-computed point-in-time status record for one
// account within one event. It is replaced wholesale on every refresh.
type EventSnapshot struct {
	ID                   string    `json:"id"`
	AccountTag           string    `json:"account_tag"`
	AccountName          string    `json:"account_name,omitempty"`
	ClanTag              string    `json:"clan_tag"`
	ClanName             string    `json:"clan_name,omitempty"`
	EventType            EventType `json:"event_type"`
	EventSubtype         string    `json:"event_subtype,omitempty"`
	State                string    `json:"state,omitempty"`
	AttacksUsed          int       `json:"attacks_used"`
	AttacksMax           int       `json:"attacks_max"`
	AttacksRemaining     int       `json:"attacks_remaining"`
	EndTime              string    `json:"end_time,omitempty"`
	StartTime            string    `json:"start_time,omitempty"`
	TimeRemainingSeconds int       `json:"time_remaining_seconds"`
	TimeRemaining        string    `json:"time_remaining_formatted,omitempty"`
	OpponentName         string    `json:"opponent_name,omitempty"`
	OpponentTag          string    `json:"opponent_tag,omitempty"`
	WarSize              int       `json:"war_size,omitempty"`
}

// Status is the full missing-attacks view for a user.
type Status struct {
	LastPolled string          `json:"last_polled,omitempty"`
	Events     []EventSnapshot `json:"events"`
}

// SummaryItem is a denormalized, display-ready projection of one event
// snapshot. All strings are pre-formatted by the server so the widget
// rendering path never computes anything.
type SummaryItem struct {
	AccountDisplay   string `json:"account_display"`
	ClanDisplay      string `json:"clan_display"`
	EventLabel       string `json:"event_label"`
	AttacksRemaining int    `json:"attacks_remaining"`
	EndTimeFormatted string `json:"end_time_formatted,omitempty"`
	EndTimeISO       string `json:"end_time_iso,omitempty"`
}

// EventTypeCount aggregates missing attacks per event type.
type EventTypeCount struct {
	Count    int `json:"count"`
	Accounts int `json:"accounts"`
}

// StatusSummary is the compact projection consumed by the widget path.
type StatusSummary struct {
	LastPolled   string                    `json:"last_polled,omitempty"`
	TotalMissing int                       `json:"total_missing"`
	ByEventType  map[string]EventTypeCount `json:"by_event_type,omitempty"`
	Items        []SummaryItem             `json:"items"`
}

// Notification is a locally rendered alert originating from an inbound
// push message.
type Notification struct {
	// ID is the locally generated unique identifier.
	ID string `json:"id"`

	// EventType tags which event category the message relates to.
	EventType EventType `json:"event_type"`

	// Title is the notification headline.
	Title string `json:"title"`

	// Body is the notification text.
	Body string `json:"body"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when the message was received.
	CreatedAt time.Time `json:"created_at"`
}
