package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/comp2537/web-portal/internal/middleware"
	"github.com/comp2537/web-portal/internal/session"
	"github.com/comp2537/web-portal/internal/users"
	"github.com/comp2537/web-portal/internal/utils"
)

// mockFetcher implements middleware.SessionFetcher without redis.
type mockFetcher struct {
	session session.Session
	err     error
}

func (m mockFetcher) Get(ctx context.Context, id string) (session.Session, error) {
	return m.session, m.err
}

// callWithCookie wraps a 200-OK inner handler in the provided middleware,
// optionally setting one cookie on the request, and returns the recorded
// response.
func callWithCookie(t *testing.T, mw func(http.Handler) http.Handler, cookieName, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if cookieName != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func validSession(role users.Role) session.Session {
	return session.Session{
		ID:        "tok",
		Name:      "Alice",
		Email:     "a@x.com",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// TestRequireSession_MissingCookie verifies that a request without a
// session_id cookie is redirected, never given an error payload.
func TestRequireSession_MissingCookie(t *testing.T) {
	mw := middleware.RequireSession(mockFetcher{err: session.ErrNotFound}, "/")

	rec := callWithCookie(t, mw, "", "")

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestRequireSession_UnknownToken(t *testing.T) {
	mw := middleware.RequireSession(mockFetcher{err: session.ErrNotFound}, "/login")

	rec := callWithCookie(t, mw, "session_id", "bogus")

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSession_ExpiredSession(t *testing.T) {
	expired := validSession(users.RoleUser)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	mw := middleware.RequireSession(mockFetcher{session: expired}, "/")

	rec := callWithCookie(t, mw, "session_id", "tok")

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303 for expired session, got %d", rec.Code)
	}
}

// TestRequireSession_Valid verifies the session lands in the request
// context for downstream handlers.
func TestRequireSession_Valid(t *testing.T) {
	mw := middleware.RequireSession(mockFetcher{session: validSession(users.RoleUser)}, "/")

	var got session.Session
	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = utils.GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "tok"})
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !ok {
		t.Fatal("expected session in context")
	}
	if got.Email != "a@x.com" {
		t.Errorf("expected session email a@x.com, got %q", got.Email)
	}
}

// TestRequireAdmin_NonAdmin verifies the 403 page. Any role that is not
// admin fails closed; it must not redirect.
func TestRequireAdmin_NonAdmin(t *testing.T) {
	for _, role := range []users.Role{users.RoleUser, users.Role("root"), users.Role("")} {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(utils.WithSession(req.Context(), validSession(role)))
		rec := httptest.NewRecorder()
		middleware.RequireAdmin(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("role %q: expected 403, got %d", role, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Not Authorized") {
			t.Errorf("role %q: expected Not Authorized page, got %q", role, rec.Body.String())
		}
		if loc := rec.Header().Get("Location"); loc != "" {
			t.Errorf("role %q: 403 must not redirect, got Location %q", role, loc)
		}
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(utils.WithSession(req.Context(), validSession(users.RoleAdmin)))
	rec := httptest.NewRecorder()
	middleware.RequireAdmin(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", rec.Code)
	}
}

// TestRequireAdmin_NoSessionInContext covers the guard ordering contract:
// RequireAdmin assumes RequireSession already ran.
func TestRequireAdmin_NoSessionInContext(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	middleware.RequireAdmin(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session context, got %d", rec.Code)
	}
}

// TestGuardComposition verifies the composed chain: no session redirects
// before any role check happens, so the response never leaks that the
// target requires admin.
func TestGuardComposition(t *testing.T) {
	chain := middleware.RequireSession(mockFetcher{err: session.ErrNotFound}, "/login")(
		middleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected redirect for missing session, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Not Authorized") {
		t.Error("missing session must not reach the role check")
	}
}
