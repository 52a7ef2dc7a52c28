package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/comp2537/web-portal/internal/session"
	"github.com/comp2537/web-portal/internal/utils"
)

type SessionFetcher interface {
	Get(ctx context.Context, id string) (session.Session, error)
}

// RequireSession resolves the session behind the session_id cookie and puts
// it in the request context. Missing or expired sessions redirect to
// redirectTo; they never get an error payload.
func RequireSession(fetcher SessionFetcher, redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err != nil {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}

			sess, err := fetcher.Get(r.Context(), cookie.Value)
			if err != nil {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}

			if sess.ExpiresAt.Before(time.Now()) {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}

			ctx := utils.WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after RequireSession; it assumes the session is
// already in context. A non-admin role fails closed with the 403 page and
// does not redirect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized: missing session in context", http.StatusUnauthorized)
			return
		}

		if !sess.IsAdmin() {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `<h1>Not Authorized</h1><p>You do not have permission to view this page.</p><a href="/">Home</a>`)
			return
		}

		next.ServeHTTP(w, r)
	})
}

var allowed = map[string]struct{}{
	"http://localhost:3000": {},
	"http://localhost:5173": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s %d %dms", r.Method, r.URL.Path, sw.status, time.Since(start).Milliseconds())
	})
}
