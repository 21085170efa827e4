package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fcv/porteria/internal/lib/api/response"
	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/lib/sl"
)

// renderError maps service errors onto status codes. Input errors carry
// their message to the caller; anything else is logged and reported
// generically.
func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, sentinel.ErrInvalidInput):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, sentinel.ErrUnavailable):
		logger.ErrorContext(r.Context(), "dependency unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("service unavailable"))
	default:
		logger.ErrorContext(r.Context(), "request failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("unexpected server error"))
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, resp response.Response) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, resp)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error("not found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, response.Error("method not allowed"))
}
