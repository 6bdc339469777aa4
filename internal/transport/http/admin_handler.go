package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/moderate_material"
)

// adminMaterials handles GET /api/v1/admin/materials. Without a status the
// listing spans every moderation state.
func (s *Server) adminMaterials(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.deps.ListMaterials.Execute(r.Context(), &list_materials.Request{
		Caller:      callerFrom(r),
		CategoryID:  stringParam(r, "categoryId"),
		Status:      stringParam(r, "status"),
		Keyword:     stringParam(r, "keyword"),
		Sort:        stringParam(r, "sort"),
		Page:        page,
		PageSize:    size,
		AllStatuses: true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// pendingMaterials handles GET /api/v1/admin/materials/pending, oldest first.
func (s *Server) pendingMaterials(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if size == 0 {
		size = s.deps.AdminQueueSize
	}
	sort := stringParam(r, "sort")
	if sort == "" {
		sort = "oldest"
	}

	result, err := s.deps.ListMaterials.Execute(r.Context(), &list_materials.Request{
		Caller:     callerFrom(r),
		CategoryID: stringParam(r, "categoryId"),
		Status:     string(domain.StatusPending),
		Keyword:    stringParam(r, "keyword"),
		Sort:       sort,
		Page:       page,
		PageSize:   size,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// approveMaterial handles PUT /api/v1/admin/materials/{id}/approve.
func (s *Server) approveMaterial(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, moderate_material.Approve, "")
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (req *rejectRequest) Bind(r *http.Request) error { return nil }

// rejectMaterial handles PUT /api/v1/admin/materials/{id}/reject. The reason
// comes from a JSON body or the "reason" query parameter.
func (s *Server) rejectMaterial(w http.ResponseWriter, r *http.Request) {
	req := &rejectRequest{}
	if r.ContentLength != 0 {
		if err := render.Bind(r, req); err != nil {
			s.writeError(w, r, invalidInput("malformed reject request"))
			return
		}
	}
	if req.Reason == "" {
		req.Reason = r.URL.Query().Get("reason")
	}
	s.moderate(w, r, moderate_material.Reject, req.Reason)
}

func (s *Server) moderate(w http.ResponseWriter, r *http.Request, action moderate_material.Action, reason string) {
	result, err := s.deps.ModerateMaterial.Execute(r.Context(), &moderate_material.Request{
		MaterialID: chi.URLParam(r, "id"),
		Caller:     callerFrom(r),
		Action:     action,
		Reason:     reason,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
