package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/halvard/orglog/internal/postservice"
)

// NewRouter creates a chi router with all blog routes mounted.
func NewRouter(svc *postservice.Service, site Site) chi.Router {
	h := NewHandler(svc, site)

	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/blog", h.BlogIndex)
	r.Get("/blog/{filename}", h.BlogPost)
	r.Get("/about", h.About)
	r.Get("/feed.xml", h.Feed)
	r.Handle("/static/*", staticHandler())

	return r
}
