package store_test

import (
	"context"
	"testing"

	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/tests/testutil"
)

func TestProjectionDefaultsBeforeFirstSave(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p, err := s.Widget().Projection(ctx)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}

	if p.TotalMissing != 0 {
		t.Errorf("TotalMissing = %d, want 0", p.TotalMissing)
	}
	if p.LastUpdated != "" {
		t.Errorf("LastUpdated = %q, want empty", p.LastUpdated)
	}
	if p.Items == nil || len(p.Items) != 0 {
		t.Errorf("Items = %v, want empty non-nil list", p.Items)
	}
}

func TestProjectionRoundtrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	summary := model.StatusSummary{
		LastPolled:   "2026-08-30T12:00:00Z",
		TotalMissing: 3,
		Items: []model.SummaryItem{
			{AccountDisplay: "Chief", ClanDisplay: "Warriors", EventLabel: "Clan War", AttacksRemaining: 2, EndTimeFormatted: "in 4h"},
			{AccountDisplay: "Alt", ClanDisplay: "Warriors", EventLabel: "Raid Weekend", AttacksRemaining: 1},
		},
	}
	if err := s.Widget().Save(ctx, summary); err != nil {
		t.Fatalf("Save: %v", err)
	}

	p, err := s.Widget().Projection(ctx)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	if p.TotalMissing != 3 {
		t.Errorf("TotalMissing = %d, want 3", p.TotalMissing)
	}
	if p.LastUpdated != "2026-08-30T12:00:00Z" {
		t.Errorf("LastUpdated = %q", p.LastUpdated)
	}
	if len(p.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(p.Items))
	}
	if p.Items[0].AccountDisplay != "Chief" || p.Items[0].AttacksRemaining != 2 {
		t.Errorf("Items[0] = %+v", p.Items[0])
	}
}

func TestSaveReplacesWholeRecord(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := model.StatusSummary{
		TotalMissing: 5,
		LastPolled:   "2026-08-30T10:00:00Z",
		Items: []model.SummaryItem{
			{AccountDisplay: "Chief", AttacksRemaining: 2},
			{AccountDisplay: "Alt", AttacksRemaining: 3},
		},
	}
	if err := s.Widget().Save(ctx, first); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	second := model.StatusSummary{
		TotalMissing: 0,
		LastPolled:   "2026-08-30T11:00:00Z",
	}
	if err := s.Widget().Save(ctx, second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	p, err := s.Widget().Projection(ctx)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	if p.TotalMissing != 0 {
		t.Errorf("TotalMissing = %d, want 0 after replacement", p.TotalMissing)
	}
	if len(p.Items) != 0 {
		t.Errorf("Items = %v, want stale items gone", p.Items)
	}
	if p.LastUpdated != "2026-08-30T11:00:00Z" {
		t.Errorf("LastUpdated = %q", p.LastUpdated)
	}
}

func TestProjectionAccessors(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.Widget().Save(ctx, model.StatusSummary{
		TotalMissing: 2,
		LastPolled:   "2026-08-30T09:00:00Z",
		Items:        []model.SummaryItem{{AccountDisplay: "Chief", AttacksRemaining: 2}},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	total, err := s.Widget().TotalMissing(ctx)
	if err != nil || total != 2 {
		t.Errorf("TotalMissing = (%d, %v)", total, err)
	}
	updated, err := s.Widget().LastUpdated(ctx)
	if err != nil || updated != "2026-08-30T09:00:00Z" {
		t.Errorf("LastUpdated = (%q, %v)", updated, err)
	}
	items, err := s.Widget().Items(ctx)
	if err != nil || len(items) != 1 {
		t.Errorf("Items = (%v, %v)", items, err)
	}
}

func TestProjectionBrokenStoreReturnsError(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := s.Widget().Projection(ctx); err == nil {
		t.Error("Projection on a closed store returned defaults instead of an error")
	}
}
