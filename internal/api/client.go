package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clanwatch/clanwatch/internal/model"
)

// Client is a thin HTTP client for the reminder backend's REST API
// under api/v1. Every method is a single request/response round trip:
// no retries, no caching. The user id is always passed explicitly by
// the caller, never inferred.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. The baseURL is the root URL of
// the backend (e.g., https://reminders.example.com).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type registerRequest struct {
	PushToken string `json:"fcm_token,omitempty"`
}

type pushTokenUpdate struct {
	PushToken string `json:"fcm_token"`
}

type accountCreate struct {
	Tag string `json:"tag"`
}

type clanCreate struct {
	ClanTag string `json:"clan_tag"`
}

type reminderToggle struct {
	Enabled bool `json:"enabled"`
}

type remindersReplace struct {
	Reminders []model.ReminderConfigDraft `json:"reminders"`
}

// RegisterUser creates a new user on the backend. The push token may
// be empty if none is available yet.
func (c *Client) RegisterUser(ctx context.Context, pushToken string) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "/api/v1/users/register",
		registerRequest{PushToken: pushToken}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePushToken replaces the push token registered for the user.
func (c *Client) UpdatePushToken(ctx context.Context, userID, token string) error {
	return c.do(ctx, http.MethodPut, c.userPath(userID, "fcm"),
		pushTokenUpdate{PushToken: token}, nil)
}

// AddAccount registers a game account tag for tracking.
func (c *Client) AddAccount(ctx context.Context, userID, tag string) (*model.Account, error) {
	var account model.Account
	err := c.do(ctx, http.MethodPost, c.userPath(userID, "accounts"),
		accountCreate{Tag: tag}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Accounts lists all tracked accounts for the user.
func (c *Client) Accounts(ctx context.Context, userID string) ([]model.Account, error) {
	var accounts []model.Account
	err := c.do(ctx, http.MethodGet, c.userPath(userID, "accounts"), nil, &accounts)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteAccount stops tracking the account with the given tag.
func (c *Client) DeleteAccount(ctx context.Context, userID, tag string) error {
	path := c.userPath(userID, "accounts") + "/" + url.PathEscape(tag)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AddClan registers a clan tag for event monitoring.
func (c *Client) AddClan(ctx context.Context, userID, clanTag string) (*model.TrackedClan, error) {
	var clan model.TrackedClan
	err := c.do(ctx, http.MethodPost, c.userPath(userID, "clans"),
		clanCreate{ClanTag: clanTag}, &clan)
	if err != nil {
		return nil, err
	}
	return &clan, nil
}

// Clans lists all monitored clans for the user.
func (c *Client) Clans(ctx context.Context, userID string) ([]model.TrackedClan, error) {
	var clans []model.TrackedClan
	err := c.do(ctx, http.MethodGet, c.userPath(userID, "clans"), nil, &clans)
	if err != nil {
		return nil, err
	}
	return clans, nil
}

// DeleteClan stops monitoring the clan with the given tag.
func (c *Client) DeleteClan(ctx context.Context, userID, clanTag string) error {
	path := c.userPath(userID, "clans") + "/" + url.PathEscape(clanTag)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Reminders fetches the full reminder configuration for the user.
func (c *Client) Reminders(ctx context.Context, userID string) (*model.Reminders, error) {
	var reminders model.Reminders
	err := c.do(ctx, http.MethodGet, c.userPath(userID, "reminders"), nil, &reminders)
	if err != nil {
		return nil, err
	}
	return &reminders, nil
}

// ReplaceReminders replaces the full reminder configuration.
func (c *Client) ReplaceReminders(ctx context.Context, userID string, drafts []model.ReminderConfigDraft) (*model.Reminders, error) {
	var reminders model.Reminders
	err := c.do(ctx, http.MethodPut, c.userPath(userID, "reminders"),
		remindersReplace{Reminders: drafts}, &reminders)
	if err != nil {
		return nil, err
	}
	return &reminders, nil
}

// ToggleReminder enables or disables reminders for one event type.
func (c *Client) ToggleReminder(ctx context.Context, userID string, eventType model.EventType, enabled bool) error {
	path := c.userPath(userID, "reminders") + "/" + url.PathEscape(string(eventType))
	return c.do(ctx, http.MethodPatch, path, reminderToggle{Enabled: enabled}, nil)
}

// AddReminderTime adds a minutes-before-end entry to one event type's
// reminder configuration.
func (c *Client) AddReminderTime(ctx context.Context, userID string, eventType model.EventType, draft model.ReminderTimeDraft) (*model.ReminderTime, error) {
	path := c.userPath(userID, "reminders") + "/" + url.PathEscape(string(eventType)) + "/times"
	var rt model.ReminderTime
	err := c.do(ctx, http.MethodPost, path, draft, &rt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteReminderTime removes a reminder time entry by id.
func (c *Client) DeleteReminderTime(ctx context.Context, userID string, eventType model.EventType, timeID string) error {
	path := c.userPath(userID, "reminders") + "/" + url.PathEscape(string(eventType)) +
		"/times/" + url.PathEscape(timeID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Status fetches the full event snapshot list for the user.
func (c *Client) Status(ctx context.Context, userID string) (*model.Status, error) {
	var status model.Status
	err := c.do(ctx, http.MethodGet, c.userPath(userID, "status"), nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// StatusSummary fetches the denormalized widget projection for the user.
func (c *Client) StatusSummary(ctx context.Context, userID string) (*model.StatusSummary, error) {
	var summary model.StatusSummary
	err := c.do(ctx, http.MethodGet, c.userPath(userID, "status")+"/summary", nil, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// userPath builds an api/v1 path scoped to a user id.
func (c *Client) userPath(userID, suffix string) string {
	return "/api/v1/users/" + url.PathEscape(userID) + "/" + suffix
}

type messageResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// do builds the request, performs the single round trip, and handles
// JSON (de)serialization. Non-2xx responses become a *StatusError,
// unparseable bodies a *DecodeError.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg messageResponse
		detail := ""
		if json.Unmarshal(respBody, &msg) == nil {
			detail = msg.Message
			if detail == "" {
				detail = msg.Detail
			}
		}
		return &StatusError{Code: resp.StatusCode, Message: detail}
	}

	// No content to parse (e.g. 204 or callers that ignore the body).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}
