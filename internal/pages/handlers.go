package pages

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comp2537/web-portal/internal/session"
	"github.com/comp2537/web-portal/internal/users"
	"github.com/comp2537/web-portal/internal/utils"
)

type GalleryStore interface {
	GalleryBySlug(ctx context.Context, slug string) (*users.Gallery, error)
}

type Handler struct {
	Sessions  *session.Store
	Galleries GalleryStore
}

// defaultImages is the hardcoded gallery the portal shipped with, used when
// no gallery record has been seeded.
var defaultImages = []string{"cat1.jpg", "cat2.jpg", "cat3.jpg"}

type homeData struct {
	LoggedIn bool
	Name     string
	Color    string
	Bg       string
}

// Home renders the landing page. The session is optional here; styles from
// the settings demo apply whether or not the visitor is authenticated.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := homeData{Color: "black", Bg: "white"}

	if cookie, err := r.Cookie("session_id"); err == nil {
		if sess, err := h.Sessions.Get(r.Context(), cookie.Value); err == nil {
			data.LoggedIn = true
			data.Name = sess.Name
		}
		if styles, err := h.Sessions.Styles(r.Context(), cookie.Value); err == nil {
			if styles.Color != "" {
				data.Color = styles.Color
			}
			if styles.Bg != "" {
				data.Bg = styles.Bg
			}
		}
	}

	render(w, homePage, data)
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	sess, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, welcomePage, map[string]string{"Name": sess.Name})
}

func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	sess, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	images := defaultImages
	if g, err := h.Galleries.GalleryBySlug(r.Context(), "members"); err == nil && len(g.Images) > 0 {
		images = g.Images
	}

	render(w, membersPage, map[string]any{"Name": sess.Name, "Images": images})
}

// Debug dumps the resolved session snapshot as JSON, or null when absent.
func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cookie, err := r.Cookie("session_id")
	if err != nil {
		w.Write([]byte("null"))
		return
	}
	sess, err := h.Sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		w.Write([]byte("null"))
		return
	}
	json.NewEncoder(w).Encode(sess)
}

// Color and ColorSize serve the route/templating demo. The router's regex
// patterns keep color and size inside their closed sets; anything else
// falls through to 404.
func (h *Handler) Color(w http.ResponseWriter, r *http.Request) {
	render(w, colorPage, map[string]string{"Color": chi.URLParam(r, "color")})
}

func (h *Handler) ColorSize(w http.ResponseWriter, r *http.Request) {
	render(w, colorSizePage, map[string]string{
		"Color": chi.URLParam(r, "color"),
		"Size":  chi.URLParam(r, "size"),
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`<h1>404 - Page Not Found</h1><a href="/">Home</a>`))
}

func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("render: %v", err)
	}
}
