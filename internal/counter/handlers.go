package counter

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/comp2537/web-portal/internal/session"
)

// Handler serves the session-counter API and the style settings demo.
// Neither requires an authenticated session: a visitor without a cookie
// gets an anonymous token that scopes their counter and styles. That token
// resolves to no session payload, so it never authenticates member routes.
type Handler struct {
	Sessions *session.Store
}

// token returns the request's session token, minting and setting an
// anonymous one when the cookie is absent.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie("session_id"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := session.NewToken()
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.Sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := h.token(w, r)
	n, err := h.Sessions.Counter(r.Context(), id)
	if err != nil {
		log.Printf("counter get: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	writeCounter(w, n)
}

func (h *Handler) Up(w http.ResponseWriter, r *http.Request) {
	h.bump(w, r, 1)
}

// Down decrements unconditionally; the counter may go negative.
func (h *Handler) Down(w http.ResponseWriter, r *http.Request) {
	h.bump(w, r, -1)
}

func (h *Handler) bump(w http.ResponseWriter, r *http.Request, delta int64) {
	id := h.token(w, r)
	n, err := h.Sessions.IncrCounter(r.Context(), id, delta)
	if err != nil {
		log.Printf("counter bump: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	writeCounter(w, n)
}

func writeCounter(w http.ResponseWriter, n int64) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"counter": n})
}

const settingsPage = `<h1>Settings</h1>
<form method="GET" action="/changeStyle">
  <label>Text color <input name="color" /></label><br/>
  <label>Background <input name="bg" /></label><br/>
  <button type="submit">Save</button>
</form>
<a href="/">Home</a>`

func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, settingsPage)
}

// ChangeStyle saves the chosen colors in the session, then redirects home.
// Either param missing leaves the stored styles untouched.
func (h *Handler) ChangeStyle(w http.ResponseWriter, r *http.Request) {
	id := h.token(w, r)
	color := r.URL.Query().Get("color")
	bg := r.URL.Query().Get("bg")

	if color != "" && bg != "" {
		if err := h.Sessions.SaveStyles(r.Context(), id, session.Styles{Color: color, Bg: bg}); err != nil {
			log.Printf("save styles: %v", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
