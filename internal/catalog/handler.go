// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/brightpath-edu/backend/internal/core"
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

// RegisterRoutes exposes the content tree. Reads are open to any
// authenticated user; writes are admin only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/grades", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.ListGrades)
		r.Get("/{gradeID}", h.GetGrade)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateGrade)
			r.Put("/{gradeID}", h.UpdateGrade)
			r.Delete("/{gradeID}", h.DeleteGrade)
		})
	})

	r.Route("/subjects", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.ListSubjects)
		r.Get("/{subjectID}", h.GetSubject)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateSubject)
			r.Put("/{subjectID}", h.UpdateSubject)
			r.Delete("/{subjectID}", h.DeleteSubject)
		})
	})

	r.Route("/topics", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.ListTopics)
		r.Get("/{topicID}", h.GetTopic)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateTopic)
			r.Put("/{topicID}", h.UpdateTopic)
			r.Delete("/{topicID}", h.DeleteTopic)
		})
	})

	r.Route("/sections", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.ListSections)
		r.Get("/{sectionID}", h.GetSection)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateSection)
			r.Put("/{sectionID}", h.UpdateSection)
			r.Delete("/{sectionID}", h.DeleteSection)
		})
	})
}

func (h *Handler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req CreateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	grade, err := h.service.CreateGrade(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("grade"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toGradeResponse(grade))
}

func (h *Handler) GetGrade(w http.ResponseWriter, r *http.Request) {
	grade, err := h.service.GetGrade(r.Context(), chi.URLParam(r, "gradeID"))
	if err != nil {
		h.writeNodeError(w, err, "grade")
		return
	}

	core.OK(w, toGradeResponse(grade))
}

func (h *Handler) ListGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.service.ListGrades(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]GradeResponse, 0, len(grades))
	for i := range grades {
		responses = append(responses, toGradeResponse(&grades[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	grade, err := h.service.UpdateGrade(
		r.Context(),
		chi.URLParam(r, "gradeID"),
		req,
	)
	if err != nil {
		h.writeNodeError(w, err, "grade")
		return
	}

	core.OK(w, toGradeResponse(grade))
}

func (h *Handler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteGrade(r.Context(), chi.URLParam(r, "gradeID"))
	if err != nil {
		h.writeNodeError(w, err, "grade")
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	subject, err := h.service.CreateSubject(r.Context(), req)
	if err != nil {
		h.writeNodeError(w, err, "grade")
		return
	}

	core.Created(w, toSubjectResponse(subject))
}

func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	subject, err := h.service.GetSubject(
		r.Context(),
		chi.URLParam(r, "subjectID"),
	)
	if err != nil {
		h.writeNodeError(w, err, "subject")
		return
	}

	core.OK(w, toSubjectResponse(subject))
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(
		r.Context(),
		r.URL.Query().Get("grade_id"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]SubjectResponse, 0, len(subjects))
	for i := range subjects {
		responses = append(responses, toSubjectResponse(&subjects[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	subject, err := h.service.UpdateSubject(
		r.Context(),
		chi.URLParam(r, "subjectID"),
		req,
	)
	if err != nil {
		h.writeNodeError(w, err, "subject")
		return
	}

	core.OK(w, toSubjectResponse(subject))
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteSubject(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		h.writeNodeError(w, err, "subject")
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	topic, err := h.service.CreateTopic(r.Context(), req)
	if err != nil {
		h.writeNodeError(w, err, "subject")
		return
	}

	core.Created(w, toTopicResponse(topic))
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.service.GetTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		h.writeNodeError(w, err, "topic")
		return
	}

	core.OK(w, toTopicResponse(topic))
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.ListTopics(
		r.Context(),
		r.URL.Query().Get("subject_id"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]TopicResponse, 0, len(topics))
	for i := range topics {
		responses = append(responses, toTopicResponse(&topics[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	topic, err := h.service.UpdateTopic(
		r.Context(),
		chi.URLParam(r, "topicID"),
		req,
	)
	if err != nil {
		h.writeNodeError(w, err, "topic")
		return
	}

	core.OK(w, toTopicResponse(topic))
}

func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		h.writeNodeError(w, err, "topic")
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req CreateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	section, err := h.service.CreateSection(r.Context(), req)
	if err != nil {
		h.writeNodeError(w, err, "topic")
		return
	}

	core.Created(w, toSectionResponse(section))
}

func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.service.GetSection(
		r.Context(),
		chi.URLParam(r, "sectionID"),
	)
	if err != nil {
		h.writeNodeError(w, err, "section")
		return
	}

	core.OK(w, toSectionResponse(section))
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.ListSections(
		r.Context(),
		r.URL.Query().Get("topic_id"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]SectionResponse, 0, len(sections))
	for i := range sections {
		responses = append(responses, toSectionResponse(&sections[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	section, err := h.service.UpdateSection(
		r.Context(),
		chi.URLParam(r, "sectionID"),
		req,
	)
	if err != nil {
		h.writeNodeError(w, err, "section")
		return
	}

	core.OK(w, toSectionResponse(section))
}

func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteSection(r.Context(), chi.URLParam(r, "sectionID"))
	if err != nil {
		h.writeNodeError(w, err, "section")
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeNodeError(
	w http.ResponseWriter,
	err error,
	resource string,
) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, resource+" has children and cannot be deleted")
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError(resource))
	default:
		core.InternalServerError(w, err)
	}
}
