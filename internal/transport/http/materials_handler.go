package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/check_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/get_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/search_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/delete_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/toggle_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/upload_material"
)

// listMaterials handles GET /api/v1/materials.
func (s *Server) listMaterials(w http.ResponseWriter, r *http.Request) {
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
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// searchMaterials handles GET /api/v1/materials/search.
func (s *Server) searchMaterials(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.deps.SearchMaterials.Execute(r.Context(), &search_materials.Request{
		Caller:     callerFrom(r),
		Keyword:    stringParam(r, "keyword"),
		CategoryID: stringParam(r, "categoryId"),
		Page:       page,
		PageSize:   size,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// getMaterial handles GET /api/v1/materials/{id}.
func (s *Server) getMaterial(w http.ResponseWriter, r *http.Request) {
	detail, err := s.deps.GetMaterial.Execute(r.Context(), &get_material.Request{
		MaterialID: chi.URLParam(r, "id"),
		Caller:     callerFrom(r),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, detail)
}

// uploadMaterial handles the multipart POST /api/v1/materials.
func (s *Server) uploadMaterial(w http.ResponseWriter, r *http.Request) {
	// Leave room for the form fields around the file.
	r.Body = http.MaxBytesReader(w, r.Body, s.deps.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(s.deps.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, domain.ErrFileTooLarge)
			return
		}
		s.writeError(w, r, invalidInput("request must be multipart/form-data"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			s.writeError(w, r, domain.ErrEmptyFile)
			return
		}
		s.writeError(w, r, invalidInput("file field is unreadable"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.deps.MaxUploadBytes+1))
	if err != nil {
		s.writeError(w, r, invalidInput("file field is unreadable"))
		return
	}

	result, err := s.deps.UploadMaterial.Execute(r.Context(), &upload_material.Request{
		Caller:      callerFrom(r),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CategoryID:  r.FormValue("categoryId"),
		Tags:        splitTags(r.MultipartForm.Value["tags"]),
		License:     r.FormValue("license"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.RecordUpload(len(data))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// deleteMaterial handles DELETE on both the owner and the admin route.
func (s *Server) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	err := s.deps.DeleteMaterial.Execute(r.Context(), &delete_material.Request{
		MaterialID: chi.URLParam(r, "id"),
		Caller:     callerFrom(r),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toggleFavorite handles POST /api/v1/materials/{id}/favorite.
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ToggleFavorite.Execute(r.Context(), &toggle_favorite.Request{
		MaterialID: chi.URLParam(r, "id"),
		Caller:     callerFrom(r),
	})
	if err != nil {
		s.metrics.RecordToggle("error")
		s.writeError(w, r, err)
		return
	}
	if result.Favorited {
		s.metrics.RecordToggle("added")
	} else {
		s.metrics.RecordToggle("removed")
	}
	render.JSON(w, r, result)
}

// checkFavorite handles GET /api/v1/materials/{id}/favorite.
func (s *Server) checkFavorite(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.CheckFavorite.Execute(r.Context(), &check_favorite.Request{
		MaterialID: chi.URLParam(r, "id"),
		Caller:     callerFrom(r),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// listCategories handles GET /api/v1/categories.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.deps.Categories.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			IconURL:     c.IconURL,
			Color:       c.Color,
			SortOrder:   c.SortOrder,
		})
	}
	render.JSON(w, r, out)
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	Color       string `json:"color,omitempty"`
	SortOrder   int64  `json:"sortOrder"`
}
