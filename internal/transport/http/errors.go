package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// ErrResponse is the JSON error body.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Code           string `json:"code"`
	Message        string `json:"message"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errBadRequest marks malformed input detected by the transport itself.
var errBadRequest = errors.New("bad request")

type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }
func (e badRequest) Unwrap() error { return errBadRequest }

func invalidInput(msg string) error { return badRequest{msg: msg} }

func isBadRequest(err error) (string, bool) {
	var br badRequest
	if errors.As(err, &br) {
		return br.msg, true
	}
	return "", false
}

// mapDomainError converts errors to HTTP status codes and client messages.
func mapDomainError(err error) *ErrResponse {
	if msg, ok := isBadRequest(err); ok {
		return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Code: "invalid_argument", Message: msg}
	}

	switch {
	case errors.Is(err, domain.ErrMaterialNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Code: "not_found", Message: err.Error()}

	case errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrMissingCategory),
		errors.Is(err, domain.ErrMissingOwner),
		errors.Is(err, domain.ErrTooManyTags),
		errors.Is(err, domain.ErrRejectReasonMissing),
		errors.Is(err, domain.ErrRejectReasonTooLong),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrInvalidFileName):
		return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Code: "invalid_argument", Message: err.Error()}

	case errors.Is(err, domain.ErrFileTooLarge):
		return &ErrResponse{HTTPStatusCode: http.StatusRequestEntityTooLarge, Code: "file_too_large", Message: err.Error()}

	case errors.Is(err, domain.ErrUnsupportedType):
		return &ErrResponse{HTTPStatusCode: http.StatusUnsupportedMediaType, Code: "unsupported_type", Message: err.Error()}

	case errors.Is(err, domain.ErrUnauthenticated):
		return &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, Code: "unauthenticated", Message: err.Error()}

	case errors.Is(err, ErrInvalidToken):
		return &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, Code: "invalid_token", Message: ErrInvalidToken.Error()}

	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrAccountBlocked):
		return &ErrResponse{HTTPStatusCode: http.StatusForbidden, Code: "forbidden", Message: err.Error()}

	case errors.Is(err, domain.ErrAlreadyApproved),
		errors.Is(err, domain.ErrAlreadyRejected),
		errors.Is(err, domain.ErrVersionConflict):
		return &ErrResponse{HTTPStatusCode: http.StatusConflict, Code: "conflict", Message: err.Error()}

	case errors.Is(err, contracts.ErrBlobStorage):
		return &ErrResponse{HTTPStatusCode: http.StatusBadGateway, Code: "storage_unavailable", Message: "file storage is unavailable"}

	default:
		return &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Code: "internal", Message: "internal server error"}
	}
}

// writeError renders err and logs anything that maps to a server error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := mapDomainError(err)
	if resp.HTTPStatusCode >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	_ = render.Render(w, r, resp)
}
