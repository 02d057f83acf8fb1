// AngelaMos | 2026
// handler.go

package quote

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/brightpath-edu/backend/internal/core"
)

type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes takes anonymous inquiries and lists them for admins.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Post("/quotes", h.Create)

	r.Route("/admin/quotes", func(r chi.Router) {
		r.Use(authenticator, adminOnly)
		r.Get("/", h.List)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	request := &Request{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Message:      req.Message,
	}

	if err := h.repo.Create(r.Context(), request); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toResponse(request))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := h.repo.List(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]Response, 0, len(rows))
	for i := range rows {
		responses = append(responses, toResponse(&rows[i]))
	}

	core.Paginated(w, responses, page, pageSize, total)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
