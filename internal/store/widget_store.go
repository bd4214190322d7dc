package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clanwatch/clanwatch/internal/model"
)

// Projection is the persisted widget record: whatever the background
// refresh task last saved, ready for verbatim display.
type Projection struct {
	TotalMissing int
	LastUpdated  string
	Items        []model.SummaryItem
}

// WidgetStore reads and writes the single-row widget projection.
// Save replaces the whole record in one transaction, so a reader never
// observes a half-written projection.
type WidgetStore struct {
	db *sqlx.DB
}

// Save overwrites the entire projection from the given summary.
func (w *WidgetStore) Save(ctx context.Context, summary model.StatusSummary) error {
	items := summary.Items
	if items == nil {
		items = []model.SummaryItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling projection items: %w", err)
	}

	const query = `
		INSERT INTO widget_projection (id, total_missing, last_updated, items_json, saved_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			total_missing = excluded.total_missing,
			last_updated  = excluded.last_updated,
			items_json    = excluded.items_json,
			saved_at      = excluded.saved_at`

	if _, err := w.db.ExecContext(ctx, query, summary.TotalMissing, summary.LastPolled, string(itemsJSON)); err != nil {
		return fmt.Errorf("saving widget projection: %w", err)
	}
	return nil
}

// Projection reads the whole record in one query. Before the first
// save it returns the documented defaults: zero count, empty string,
// empty item list.
func (w *WidgetStore) Projection(ctx context.Context) (*Projection, error) {
	var row struct {
		TotalMissing int    `db:"total_missing"`
		LastUpdated  string `db:"last_updated"`
		ItemsJSON    string `db:"items_json"`
	}
	err := w.db.GetContext(ctx, &row,
		"SELECT total_missing, last_updated, items_json FROM widget_projection WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		// No row yet: nothing has been saved.
		return &Projection{Items: []model.SummaryItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading widget projection: %w", err)
	}

	var items []model.SummaryItem
	if err := json.Unmarshal([]byte(row.ItemsJSON), &items); err != nil {
		items = []model.SummaryItem{}
	}
	if items == nil {
		items = []model.SummaryItem{}
	}

	return &Projection{
		TotalMissing: row.TotalMissing,
		LastUpdated:  row.LastUpdated,
		Items:        items,
	}, nil
}

// Items returns the persisted summary items, or an empty list.
func (w *WidgetStore) Items(ctx context.Context) ([]model.SummaryItem, error) {
	p, err := w.Projection(ctx)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

// TotalMissing returns the persisted missing-attacks count, or zero.
func (w *WidgetStore) TotalMissing(ctx context.Context) (int, error) {
	p, err := w.Projection(ctx)
	if err != nil {
		return 0, err
	}
	return p.TotalMissing, nil
}

// LastUpdated returns the persisted last-updated string, or "".
func (w *WidgetStore) LastUpdated(ctx context.Context) (string, error) {
	p, err := w.Projection(ctx)
	if err != nil {
		return "", err
	}
	return p.LastUpdated, nil
}
