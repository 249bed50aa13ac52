package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager("test-secret", "marketplace", time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	token, err := m.IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	got, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got != "user-123" {
		t.Errorf("sub = %s, want user-123", got)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	m := newTestManager()
	token, _ := m.IssueToken("user-123")

	cases := map[string]struct {
		mgr *Manager
		tok string
	}{
		"garbage":      {m, "not-a-token"},
		"wrong secret": {NewManager("other-secret", "marketplace", time.Hour), token},
		"wrong issuer": {NewManager("test-secret", "other-app", time.Hour), token},
	}
	for name, c := range cases {
		if _, err := c.mgr.VerifyToken(c.tok); err == nil {
			t.Errorf("%s: token accepted", name)
		}
	}
}

func TestMiddleware(t *testing.T) {
	m := newTestManager()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware(next)

	// tanpa token
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	// token valid
	token, _ := m.IssueToken("user-42")
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d", rec.Code)
	}
	if seen != "user-42" {
		t.Errorf("context user = %s, want user-42", seen)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "rahasia123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "salah") {
		t.Error("wrong password accepted")
	}
}
