package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clanwatch/clanwatch/internal/model"
)

func TestRegisterUser(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(model.User{ID: "user-1", NotificationEnabled: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	user, err := c.RegisterUser(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	if user.ID != "user-1" {
		t.Errorf("user id = %q, want user-1", user.ID)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/api/v1/users/register" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["fcm_token"] != "tok-123" {
		t.Errorf("fcm_token = %v, want tok-123", gotBody["fcm_token"])
	}
}

func TestAccountsPathIsUserScoped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode([]model.Account{{ID: "a1", Tag: "#AAA"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	accounts, err := c.Accounts(context.Background(), "user 1")
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}

	if len(accounts) != 1 || accounts[0].Tag != "#AAA" {
		t.Errorf("accounts = %+v", accounts)
	}
	if gotPath != "/api/v1/users/user%201/accounts" {
		t.Errorf("path = %q, want escaped user id", gotPath)
	}
}

func TestDeleteAccountEscapesTag(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if err := c.DeleteAccount(context.Background(), "u1", "#ABC123"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if gotMethod != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", gotMethod)
	}
	if gotPath != "/api/v1/users/u1/accounts/%23ABC123" {
		t.Errorf("path = %q, want hash escaped", gotPath)
	}
}

func TestToggleReminder(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	err := c.ToggleReminder(context.Background(), "u1", model.EventRaidWeekend, false)
	if err != nil {
		t.Fatalf("ToggleReminder: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotPath != "/api/v1/users/u1/reminders/raid_weekend" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["enabled"] != false {
		t.Errorf("enabled = %v, want false", gotBody["enabled"])
	}
}

func TestStatusSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/u1/status/summary" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.StatusSummary{
			TotalMissing: 2,
			Items: []model.SummaryItem{
				{AccountDisplay: "Chief", EventLabel: "Clan War", AttacksRemaining: 2},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	summary, err := c.StatusSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("StatusSummary: %v", err)
	}
	if summary.TotalMissing != 2 || len(summary.Items) != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestServerErrorBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "account already tracked"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.AddAccount(context.Background(), "u1", "#AAA")
	if err == nil {
		t.Fatal("expected error")
	}

	se, ok := IsStatusError(err)
	if !ok {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if se.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", se.Code)
	}
	if se.Message != "account already tracked" {
		t.Errorf("message = %q", se.Message)
	}
}

func TestServerErrorDetailField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "user not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.Status(context.Background(), "missing")
	se, ok := IsStatusError(err)
	if !ok {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if se.Message != "user not found" {
		t.Errorf("message = %q, want detail field fallback", se.Message)
	}
}

func TestMalformedBodyBecomesDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.Clans(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDecodeError(err) {
		t.Errorf("error %v is not a DecodeError", err)
	}
}

func TestTransportErrorIsNeitherCategory(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 0)
	_, err := c.Accounts(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := IsStatusError(err); ok {
		t.Errorf("transport failure classified as StatusError: %v", err)
	}
	if IsDecodeError(err) {
		t.Errorf("transport failure classified as DecodeError: %v", err)
	}
}
