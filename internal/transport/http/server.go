// Package http exposes the material catalog over HTTP/JSON.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/check_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/get_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_events"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_favorites"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/search_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/delete_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/moderate_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/toggle_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/upload_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Deps lists everything the HTTP layer calls into.
type Deps struct {
	ListMaterials   *list_materials.Query
	SearchMaterials *search_materials.Query
	ListFavorites   *list_favorites.Query
	GetMaterial     *get_material.Query
	CheckFavorite   *check_favorite.Query
	ListEvents      *list_events.Query

	UploadMaterial   *upload_material.Interactor
	DeleteMaterial   *delete_material.Interactor
	ModerateMaterial *moderate_material.Interactor
	ToggleFavorite   *toggle_favorite.Interactor

	Categories contracts.CategoryStore
	Identity   *IdentityResolver
	Metrics    *Metrics

	// Files serves stored blobs under /files when set.
	Files http.Handler
	// AdminQueueSize is the default page size of the pending queue.
	AdminQueueSize int
	// MaxUploadBytes bounds the multipart body; 0 means 10 MiB.
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// Server holds the handlers and their dependencies.
type Server struct {
	deps     Deps
	identity *IdentityResolver
	metrics  *Metrics
	logger   *logger.Logger
}

// NewServer creates a new Server.
func NewServer(deps Deps, log *logger.Logger) *Server {
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 10 << 20
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 60 * time.Second
	}
	return &Server{
		deps:     deps,
		identity: deps.Identity,
		metrics:  deps.Metrics,
		logger:   log.With("component", "http"),
	}
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	if s.deps.Files != nil {
		r.Method(http.MethodGet, "/files/*", http.StripPrefix("/files/", s.deps.Files))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.deps.RequestTimeout))
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(s.Authenticate)

		r.Get("/categories", s.listCategories)

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", s.listMaterials)
			r.Get("/search", s.searchMaterials)
			r.Get("/{id}", s.getMaterial)

			r.Group(func(r chi.Router) {
				r.Use(s.RequireUser)
				r.Post("/", s.uploadMaterial)
				r.Delete("/{id}", s.deleteMaterial)
				r.Post("/{id}/favorite", s.toggleFavorite)
				r.Get("/{id}/favorite", s.checkFavorite)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(s.RequireUser)
			r.Get("/materials", s.myMaterials)
			r.Get("/favorites", s.myFavorites)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.RequireAdmin)
			r.Get("/materials", s.adminMaterials)
			r.Get("/materials/pending", s.pendingMaterials)
			r.Put("/materials/{id}/approve", s.approveMaterial)
			r.Put("/materials/{id}/reject", s.rejectMaterial)
			r.Delete("/materials/{id}", s.deleteMaterial)
			r.Get("/events", s.listEvents)
		})
	})
	return r
}
