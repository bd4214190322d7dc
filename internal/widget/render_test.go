package widget

import (
	"strings"
	"testing"

	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/store"
)

func TestRenderEmptyProjection(t *testing.T) {
	out := Render(&store.Projection{Items: []model.SummaryItem{}})

	if !strings.Contains(out, "Missing Attacks") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "0") {
		t.Errorf("missing zero count:\n%s", out)
	}
	if !strings.Contains(out, "all attacks used") {
		t.Errorf("missing empty state:\n%s", out)
	}
	if strings.Contains(out, "updated") {
		t.Errorf("footer present without a timestamp:\n%s", out)
	}
}

func TestRenderItems(t *testing.T) {
	out := Render(&store.Projection{
		TotalMissing: 3,
		LastUpdated:  "12:00",
		Items: []model.SummaryItem{
			{AccountDisplay: "Chief", EventLabel: "Clan War", AttacksRemaining: 2, EndTimeFormatted: "in 4h"},
			{AccountDisplay: "Alt", EventLabel: "Raid Weekend", AttacksRemaining: 1},
		},
	})

	for _, want := range []string{
		"Clan War · Chief",
		"ends in 4h",
		"(2 left)",
		"Raid Weekend · Alt",
		"(1 left)",
		"updated 12:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "all attacks used") {
		t.Errorf("empty state shown alongside items:\n%s", out)
	}
}
