package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/fcv/porteria/internal/lib/api/response"
	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/service"
)

type AccessLogger interface {
	Record(ctx context.Context, req service.RecordRequest) (service.Recorded, error)
	List(ctx context.Context, f model.AccessLogFilter) ([]model.AccessLog, error)
}

type RecordLogRequest struct {
	RUT        *string    `json:"rut" validate:"required,max=64"`
	Direction  string     `json:"direction" validate:"required,oneof=entrada salida"`
	Gate       string     `json:"gate" validate:"max=128"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type RecordLogResponse struct {
	Log      model.AccessLog `json:"log"`
	Decision model.Decision  `json:"decision"`
}

func recordLog(log *slog.Logger, svc AccessLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.logs"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req RecordLogRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			logger.Debug("failed to decode request body", sl.Err(err))
			badRequest(w, r, response.Error("invalid JSON body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			badRequest(w, r, response.ValidationError(err))
			return
		}

		rr := service.RecordRequest{
			RUT:       *req.RUT,
			Direction: model.Direction(req.Direction),
			Gate:      req.Gate,
		}
		if req.OccurredAt != nil {
			rr.OccurredAt = *req.OccurredAt
		}

		rec, err := svc.Record(r.Context(), rr)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(RecordLogResponse{Log: rec.Log, Decision: rec.Decision}))
	}
}

func listLogs(log *slog.Logger, svc AccessLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.logs"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		f := model.AccessLogFilter{
			RUT:       q.Get("rut"),
			Direction: model.Direction(q.Get("direction")),
		}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				badRequest(w, r, response.Error("limit must be a non-negative integer"))
				return
			}
			f.Limit = n
		}

		logs, err := svc.List(r.Context(), f)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		if logs == nil {
			logs = []model.AccessLog{}
		}
		render.JSON(w, r, response.Ok(logs))
	}
}
