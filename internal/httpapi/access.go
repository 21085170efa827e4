package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fcv/porteria/internal/lib/api/response"
	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/model"
)

type AccessChecker interface {
	Check(ctx context.Context, raw string) (model.Decision, error)
}

// CheckRequest carries the raw identifier as typed at the gate. Any present
// string is evaluated, including "".
type CheckRequest struct {
	RUT *string `json:"rut" validate:"required,max=64"`
}

func checkAccess(log *slog.Logger, svc AccessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.access"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req CheckRequest
		proto := isProtobuf(r)
		if proto {
			var msg structpb.Struct
			if err := readProto(r, &msg); err != nil {
				logger.Debug("failed to decode protobuf body", sl.Err(err))
				badRequest(w, r, response.Error("invalid protobuf body"))
				return
			}
			raw, err := rutFromStruct(&msg)
			if err != nil {
				badRequest(w, r, response.Error(err.Error()))
				return
			}
			req.RUT = raw
		} else {
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				logger.Debug("failed to decode request body", sl.Err(err))
				badRequest(w, r, response.Error("invalid JSON body"))
				return
			}
		}

		if err := validate.Struct(req); err != nil {
			badRequest(w, r, response.ValidationError(err))
			return
		}

		d, err := svc.Check(r.Context(), *req.RUT)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}

		if proto {
			msg, err := decisionToStruct(d)
			if err != nil {
				renderError(w, r, logger, err)
				return
			}
			writeProto(w, http.StatusOK, msg)
			return
		}
		render.JSON(w, r, d)
	}
}
