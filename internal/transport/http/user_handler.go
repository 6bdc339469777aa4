package http

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_favorites"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_materials"
)

// myMaterials handles GET /api/v1/user/materials: the caller's uploads in
// every moderation state, optionally narrowed by status.
func (s *Server) myMaterials(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.deps.ListMaterials.Execute(r.Context(), &list_materials.Request{
		Caller:     callerFrom(r),
		CategoryID: stringParam(r, "categoryId"),
		Status:     stringParam(r, "status"),
		Keyword:    stringParam(r, "keyword"),
		Sort:       stringParam(r, "sort"),
		Page:       page,
		PageSize:   size,
		OwnerScope: true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// myFavorites handles GET /api/v1/user/favorites.
func (s *Server) myFavorites(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.deps.ListFavorites.Execute(r.Context(), &list_favorites.Request{
		Caller:     callerFrom(r),
		CategoryID: stringParam(r, "categoryId"),
		Keyword:    stringParam(r, "keyword"),
		Sort:       stringParam(r, "sort"),
		Page:       page,
		PageSize:   size,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
