package auth

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

type Handler struct {
	Svc *Service
}

const signupForm = `<h1>Sign Up</h1>
<form method="POST" action="/signup">
  <input name="name" placeholder="name" /><br/>
  <input name="email" placeholder="email" /><br/>
  <input name="password" type="password" placeholder="password" /><br/>
  <button type="submit">Sign Up</button>
</form>`

const loginForm = `<h1>Login</h1>
<form method="POST" action="/login">
  <input name="email" placeholder="email" /><br/>
  <input name="password" type="password" placeholder="password" /><br/>
  <button type="submit">Login</button>
</form>`

func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, signupForm)
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, loginForm)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	sess, err := h.Svc.Signup(r.Context(),
		r.FormValue("name"), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		h.renderSignupError(w, err)
		return
	}

	http.SetCookie(w, sessionCookie(sess.ID, int(h.Svc.sessions.TTL().Seconds())))
	http.Redirect(w, r, "/welcome", http.StatusSeeOther)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	sess, err := h.Svc.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		h.renderLoginError(w, err)
		return
	}

	http.SetCookie(w, sessionCookie(sess.ID, int(h.Svc.sessions.TTL().Seconds())))
	http.Redirect(w, r, "/welcome", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err == nil {
		if err := h.Svc.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("logout: delete session: %v", err)
		}
	}

	// Replace the cookie with an expired/empty one either way.
	http.SetCookie(w, sessionCookie("", -1))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderSignupError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		renderInlineError(w, "Signup Error", vErr.Message, "/signup")
	case errors.Is(err, ErrEmailTaken):
		renderInlineError(w, "Signup Error", "Email already registered.", "/signup")
	default:
		log.Printf("signup: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

func (h *Handler) renderLoginError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		renderInlineError(w, "Login Error", vErr.Message, "/login")
	case errors.Is(err, ErrUserNotFound):
		renderInlineError(w, "Login Error", "User not found.", "/login")
	case errors.Is(err, ErrInvalidPassword):
		renderInlineError(w, "Login Error", "Invalid password.", "/login")
	case errors.Is(err, ErrTooManyAttempts):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `<h1>Login Error</h1><p>Too many attempts. Wait a minute and try again.</p><a href="/login">Try again</a>`)
	default:
		log.Printf("login: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

// renderInlineError renders a validation/auth failure with a retry link.
func renderInlineError(w http.ResponseWriter, title, msg, retryPath string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<h1>%s</h1><p>%s</p><a href="%s">Try again</a>`,
		template.HTMLEscapeString(title), template.HTMLEscapeString(msg), retryPath)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}
