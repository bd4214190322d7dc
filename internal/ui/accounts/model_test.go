package accounts

import (
	"context"
	"sync"
	"testing"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/repo"
)

// fakeService keeps an in-memory account list behind the Service interface.
type fakeService struct {
	mu       sync.Mutex
	accounts []model.Account
	err      error
}

func (s *fakeService) Accounts(ctx context.Context) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]model.Account(nil), s.accounts...), nil
}

func (s *fakeService) AddAccount(ctx context.Context, tag string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	acc := model.Account{ID: tag, Tag: tag}
	s.accounts = append(s.accounts, acc)
	return &acc, nil
}

func (s *fakeService) DeleteAccount(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for i, a := range s.accounts {
		if a.Tag == tag {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	return nil
}

func newTestModel(svc Service) Model {
	return New(svc, keys.DefaultKeyMap(), 80, 24)
}

func TestReloadPopulatesList(t *testing.T) {
	svc := &fakeService{accounts: []model.Account{{Tag: "#AAA"}, {Tag: "#BBB"}}}
	m := newTestModel(svc)

	m, cmd := m.Reload()
	if !m.Loading() {
		t.Error("Loading = false while fetch in flight")
	}

	m, _ = m.Update(cmd())
	if m.Loading() {
		t.Error("Loading = true after result applied")
	}
	if got := m.Accounts(); len(got) != 2 || got[0].Tag != "#AAA" {
		t.Errorf("accounts = %+v", got)
	}
	if m.ErrMsg() != "" {
		t.Errorf("ErrMsg = %q", m.ErrMsg())
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	svc := &fakeService{accounts: []model.Account{{Tag: "#OLD"}}}
	m := newTestModel(svc)

	m, staleCmd := m.Reload()
	staleMsg := staleCmd()

	// A newer request supersedes the one in flight.
	svc.mu.Lock()
	svc.accounts = []model.Account{{Tag: "#NEW"}}
	svc.mu.Unlock()
	m, freshCmd := m.Reload()
	freshMsg := freshCmd()

	m, _ = m.Update(freshMsg)
	m, _ = m.Update(staleMsg)

	got := m.Accounts()
	if len(got) != 1 || got[0].Tag != "#NEW" {
		t.Errorf("accounts = %+v, stale response overwrote fresh data", got)
	}
}

func TestFaultSurfacesMessage(t *testing.T) {
	svc := &fakeService{err: &repo.Fault{Kind: repo.FaultTransport}}
	m := newTestModel(svc)

	m, cmd := m.Reload()
	m, _ = m.Update(cmd())

	if m.ErrMsg() == "" {
		t.Error("fault produced no error message")
	}
	if m.Loading() {
		t.Error("Loading = true after fault")
	}
}

func TestAddTriggersReload(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(svc)

	m, cmd := m.add("#CCC")
	mutMsg := cmd()

	m, reloadCmd := m.Update(mutMsg)
	if reloadCmd == nil {
		t.Fatal("successful mutation did not trigger a reload")
	}

	m, _ = m.Update(reloadCmd())
	got := m.Accounts()
	if len(got) != 1 || got[0].Tag != "#CCC" {
		t.Errorf("accounts = %+v, want reloaded list with new entry", got)
	}
}

func TestDeleteConvergesViaReload(t *testing.T) {
	svc := &fakeService{accounts: []model.Account{{Tag: "#AAA"}, {Tag: "#BBB"}}}
	m := newTestModel(svc)

	m, cmd := m.Reload()
	m, _ = m.Update(cmd())

	m, delCmd := m.delete("#AAA")
	m, reloadCmd := m.Update(delCmd())
	if reloadCmd == nil {
		t.Fatal("delete did not trigger a reload")
	}
	m, _ = m.Update(reloadCmd())

	got := m.Accounts()
	if len(got) != 1 || got[0].Tag != "#BBB" {
		t.Errorf("accounts = %+v", got)
	}
}
