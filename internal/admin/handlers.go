package admin

import (
	"context"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comp2537/web-portal/internal/users"
)

type UserStore interface {
	ListAll(ctx context.Context) ([]users.User, error)
	UpdateRole(ctx context.Context, email string, role users.Role) (int64, error)
}

type Handler struct {
	Users UserStore
}

var adminPage = template.Must(template.New("admin").Parse(`<h1>Admin</h1>
<table border="1">
<tr><th>Name</th><th>Email</th><th>Role</th><th></th></tr>
{{range .}}<tr>
  <td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Role}}</td>
  <td>{{if eq .Role "admin"}}<form method="POST" action="/demote/{{.Email}}"><button>Demote</button></form>{{else}}<form method="POST" action="/promote/{{.Email}}"><button>Promote</button></form>{{end}}</td>
</tr>{{end}}
</table>
<a href="/">Home</a>`))

// List renders every user's name, email and role.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Users.ListAll(r.Context())
	if err != nil {
		log.Printf("admin list: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := adminPage.Execute(w, list); err != nil {
		log.Printf("admin render: %v", err)
	}
}

// Promote sets the role of the addressed user to admin. A missing email
// updates zero records and still redirects; it is not an error.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, users.RoleAdmin)
}

// Demote sets the role back to user. No self-demotion guard: an admin may
// demote their own account, and keeps the admin session until re-login.
func (h *Handler) Demote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, users.RoleUser)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, role users.Role) {
	email := chi.URLParam(r, "email")

	n, err := h.Users.UpdateRole(r.Context(), email, role)
	if err != nil {
		log.Printf("set role %s for %s: %v", role, email, err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if n == 0 {
		log.Printf("set role %s: no user with email %s", role, email)
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
