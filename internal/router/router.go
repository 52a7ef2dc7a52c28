package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/comp2537/web-portal/internal/admin"
	"github.com/comp2537/web-portal/internal/auth"
	"github.com/comp2537/web-portal/internal/counter"
	"github.com/comp2537/web-portal/internal/middleware"
	"github.com/comp2537/web-portal/internal/pages"
	"github.com/comp2537/web-portal/internal/session"
)

type Deps struct {
	Sessions *session.Store
	Auth     *auth.Handler
	Admin    *admin.Handler
	Pages    *pages.Handler
	Counter  *counter.Handler
}

// Setup wires every route behind its guards. Protected routes check the
// session first and only then the role, so an absent session never reveals
// whether the target needs admin.
func Setup(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware)
	r.NotFound(d.Pages.NotFound)

	r.Get("/", d.Pages.Home)
	r.Get("/signup", d.Auth.SignupForm)
	r.Post("/signup", d.Auth.Signup)
	r.Get("/login", d.Auth.LoginForm)
	r.Post("/login", d.Auth.Login)
	r.Get("/debug", d.Pages.Debug)

	// Member routes redirect home when no session resolves.
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireSession(d.Sessions, "/"))
		g.Get("/welcome", d.Pages.Welcome)
		g.Get("/members", d.Pages.Members)
		g.Get("/logout", d.Auth.Logout)
	})

	// Admin routes send the unauthenticated to the login form; the
	// authenticated-but-not-admin get the 403 page.
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireSession(d.Sessions, "/login"))
		g.Use(middleware.RequireAdmin)
		g.Get("/admin", d.Admin.List)
		g.Post("/promote/{email}", d.Admin.Promote)
		g.Post("/demote/{email}", d.Admin.Demote)
	})

	// Session-counter demo.
	r.Get("/api/counter", d.Counter.Get)
	r.Post("/api/counter/up", d.Counter.Up)
	r.Post("/api/counter/down", d.Counter.Down)
	r.Get("/settings", d.Counter.Settings)
	r.Get("/changeStyle", d.Counter.ChangeStyle)

	// Color/size route demo; values outside the closed sets 404.
	r.Get("/{color:red|green|blue}", d.Pages.Color)
	r.Get("/{color:red|green|blue}/{size:20|30|40}", d.Pages.ColorSize)

	return r
}
