// Package web renders the public blog pages from the sorted metadata
// projection and the post corpus.
package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/orglog/internal/apperr"
	"github.com/halvard/orglog/internal/metastore"
	"github.com/halvard/orglog/internal/postservice"
)

// pageDateFormat renders timestamps on HTML pages; the Atom feed keeps the
// projection's RFC3339 default.
const pageDateFormat = "2006-01-02"

// Site holds the presentation settings the handlers need.
type Site struct {
	Title       string
	Author      string
	BaseURL     string
	Welcome     string
	About       string
	RecentCount int
}

// Handler holds the blog route handlers.
type Handler struct {
	svc  *postservice.Service
	site Site
}

// NewHandler creates a new Handler.
func NewHandler(svc *postservice.Service, site Site) *Handler {
	return &Handler{svc: svc, site: site}
}

// Home handles GET /: welcome text plus the latest posts.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	recent, err := h.svc.Recent(r.Context(), pageDateFormat, h.site.RecentCount)
	if err != nil {
		h.serverError(w, "home", err)
		return
	}
	render(w, "home", struct {
		Title   string
		Welcome string
		Recent  []metastore.Listing
	}{h.site.Title, h.site.Welcome, recent})
}

// BlogIndex handles GET /blog: every post, newest first.
func (h *Handler) BlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.Listing(r.Context(), pageDateFormat)
	if err != nil {
		h.serverError(w, "blog index", err)
		return
	}
	render(w, "blog_index", struct {
		Title string
		Posts []metastore.Listing
	}{"Blog Posts", posts})
}

// BlogPost handles GET /blog/{filename}.
func (h *Handler) BlogPost(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	post, err := h.svc.GetPost(r.Context(), filename)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.serverError(w, "blog post", err)
		return
	}
	render(w, "blogpost", struct {
		Title string
		Body  template.HTML
	}{post.Title, template.HTML(post.Content)})
}

// About handles GET /about.
func (h *Handler) About(w http.ResponseWriter, _ *http.Request) {
	render(w, "about", struct {
		Title string
		About string
	}{"About", h.site.About})
}

func (h *Handler) serverError(w http.ResponseWriter, where string, err error) {
	slog.Error(where+" failed", slog.String("error", err.Error()))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
