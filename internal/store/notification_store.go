package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clanwatch/clanwatch/internal/model"
)

// NotificationStore persists locally rendered notifications from the
// push boundary.
type NotificationStore struct {
	db *sqlx.DB
}

// Create inserts a notification record.
func (n *NotificationStore) Create(ctx context.Context, notif model.Notification) error {
	createdAt := notif.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	const query = `
		INSERT INTO notifications (id, event_type, title, body, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := n.db.ExecContext(ctx, query,
		notif.ID, string(notif.EventType), notif.Title, notif.Body, notif.Read, createdAt)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return nil
}

// Unread returns all unread notifications, newest first.
func (n *NotificationStore) Unread(ctx context.Context) ([]model.Notification, error) {
	rows, err := n.db.QueryxContext(ctx,
		`SELECT id, event_type, title, body, read, created_at
		 FROM notifications WHERE read = 0 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying unread notifications: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

// Recent returns the most recent notifications regardless of read
// state, newest first, capped at limit.
func (n *NotificationStore) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := n.db.QueryxContext(ctx,
		`SELECT id, event_type, title, body, read, created_at
		 FROM notifications ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

// UnreadCount returns the number of unread notifications.
func (n *NotificationStore) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := n.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE read = 0")
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification as read.
func (n *NotificationStore) MarkRead(ctx context.Context, id string) error {
	_, err := n.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification as read.
func (n *NotificationStore) MarkAllRead(ctx context.Context) error {
	_, err := n.db.ExecContext(ctx, "UPDATE notifications SET read = 1")
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

func scanNotifications(rows *sqlx.Rows) ([]model.Notification, error) {
	var notifs []model.Notification
	for rows.Next() {
		var (
			notif     model.Notification
			eventType string
		)
		if err := rows.Scan(&notif.ID, &eventType, &notif.Title, &notif.Body,
			&notif.Read, &notif.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notif.EventType = model.EventType(eventType)
		notifs = append(notifs, notif)
	}
	return notifs, rows.Err()
}
