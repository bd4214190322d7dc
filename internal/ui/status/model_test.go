package status

import (
	"context"
	"testing"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/repo"
)

type fakeService struct {
	status *model.Status
	err    error
}

func (s *fakeService) Status(ctx context.Context) (*model.Status, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.status, nil
}

func snapshot(last string) *model.Status {
	return &model.Status{
		LastPolled: last,
		Events: []model.EventSnapshot{
			{AccountTag: "#AAA", EventType: model.EventClanWar, AttacksRemaining: 2},
		},
	}
}

func TestSetPolledAppliesSnapshot(t *testing.T) {
	m := New(&fakeService{}, keys.DefaultKeyMap(), 80, 24)

	m = m.SetPolled(snapshot("t1"), nil)
	if m.Status() == nil || m.Status().LastPolled != "t1" {
		t.Errorf("status = %+v", m.Status())
	}
	if m.ErrMsg() != "" {
		t.Errorf("ErrMsg = %q", m.ErrMsg())
	}
}

func TestSetPolledErrorBeforeFirstSnapshot(t *testing.T) {
	m := New(&fakeService{}, keys.DefaultKeyMap(), 80, 24)

	m = m.SetPolled(nil, &repo.Fault{Kind: repo.FaultTransport})
	if m.ErrMsg() == "" {
		t.Error("poll error not surfaced with empty screen")
	}
}

func TestSetPolledErrorKeepsLastSnapshot(t *testing.T) {
	m := New(&fakeService{}, keys.DefaultKeyMap(), 80, 24)

	m = m.SetPolled(snapshot("t1"), nil)
	m = m.SetPolled(nil, &repo.Fault{Kind: repo.FaultTransport})

	if m.Status() == nil || m.Status().LastPolled != "t1" {
		t.Errorf("status = %+v, last good snapshot lost", m.Status())
	}
	if m.ErrMsg() != "" {
		t.Errorf("ErrMsg = %q, transient poll fault should not replace data", m.ErrMsg())
	}
}

func TestManualRefresh(t *testing.T) {
	svc := &fakeService{status: snapshot("t2")}
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	m, cmd := m.Refresh()
	if !m.Loading() {
		t.Error("Loading = false during refresh")
	}

	m, _ = m.Update(cmd())
	if m.Loading() {
		t.Error("Loading = true after refresh applied")
	}
	if m.Status() == nil || m.Status().LastPolled != "t2" {
		t.Errorf("status = %+v", m.Status())
	}
}

func TestManualRefreshStaleResultDiscarded(t *testing.T) {
	svc := &fakeService{status: snapshot("old")}
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	m, staleCmd := m.Refresh()
	staleMsg := staleCmd()

	svc.status = snapshot("new")
	m, freshCmd := m.Refresh()

	m, _ = m.Update(freshCmd())
	m, _ = m.Update(staleMsg)

	if m.Status().LastPolled != "new" {
		t.Errorf("LastPolled = %q, stale refresh applied", m.Status().LastPolled)
	}
}
