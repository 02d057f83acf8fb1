// AngelaMos | 2026
// handler.go

package question

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

// RegisterRoutes exposes questions. Learners read sanitized questions
// and submit answers; admins manage the bank and see the answer keys.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/questions", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.List)
		r.Get("/{questionID}", h.Get)
		r.Post("/{questionID}/answer", h.SubmitAnswer)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{questionID}", h.Update)
			r.Delete("/{questionID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	question, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrNotFound):
			core.JSONError(w, core.NotFoundError("topic"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, toAdminQuestionResponse(question))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.Get(r.Context(), chi.URLParam(r, "questionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if middleware.IsAdminRole(middleware.GetUserRole(r.Context())) {
		core.OK(w, toAdminQuestionResponse(question))
		return
	}

	core.OK(w, toQuestionResponse(question))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	topicID := r.URL.Query().Get("topic_id")
	if topicID == "" {
		core.BadRequest(w, "topic_id is required")
		return
	}

	questions, err := h.service.ListByTopic(r.Context(), topicID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if middleware.IsAdminRole(middleware.GetUserRole(r.Context())) {
		responses := make([]AdminQuestionResponse, 0, len(questions))
		for i := range questions {
			responses = append(responses, toAdminQuestionResponse(&questions[i]))
		}
		core.OK(w, responses)
		return
	}

	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, toQuestionResponse(&questions[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	question, err := h.service.Update(
		r.Context(),
		chi.URLParam(r, "questionID"),
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toAdminQuestionResponse(question))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "questionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.SubmitAnswer(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "questionID"),
		req,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.JSONError(w, core.NotFoundError("question"))
		case errors.Is(err, ErrMissingAnswer):
			core.BadRequest(w, "answer is required")
		case errors.Is(err, ErrInvalidQuestionState):
			core.JSONError(w, core.NewAppError(
				err,
				"question has no usable answer key",
				http.StatusConflict,
				"INVALID_QUESTION_STATE",
			))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("question"))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
