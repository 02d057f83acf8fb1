// AngelaMos | 2026
// handler.go

package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/brightpath-edu/backend/internal/core"
	"github.com/brightpath-edu/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/quizzes", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/start", h.Start)
		r.Put("/{progressID}/complete", h.Complete)
		r.Put("/{progressID}/abandon", h.Abandon)
		r.Get("/me", h.ListMine)
	})
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	progress, err := h.service.Start(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.TopicID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSONError(w, core.NotFoundError("topic"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toProgressResponse(progress))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	progress, err := h.service.Complete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "progressID"),
		req.TimeSpentSeconds,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toProgressResponse(progress))
}

func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Abandon(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "progressID"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toProgressResponse(progress))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListMine(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]ProgressResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, toProgressResponse(&rows[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("quiz progress"))
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, core.ForbiddenError("quiz progress belongs to another user"))
	case errors.Is(err, core.ErrConflict):
		core.JSONError(w, core.ConflictError("quiz is not in progress"))
	default:
		core.InternalServerError(w, err)
	}
}
