// AngelaMos | 2026
// handler.go

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/brightpath-edu/backend/internal/core"
	"github.com/brightpath-edu/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	pricing   *PricingStore
	validator *validator.Validate
}

func NewHandler(service *Service, pricing *PricingStore) *Handler {
	return &Handler{
		service:   service,
		pricing:   pricing,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes exposes the subscription lifecycle and pricing. Trial
// signup and pricing quotes are public; freeze and pricing management
// are admin operations.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/trial", h.CreateTrial)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMine)
			r.Put("/{subscriptionID}/cancel", h.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Put("/{subscriptionID}/freeze", h.ToggleFreeze)
			})
		})
	})

	r.Get("/pricing", h.GetPricing)
	r.Get("/pricing/quote", h.Quote)

	r.Route("/admin/pricing", func(r chi.Router) {
		r.Use(authenticator, adminOnly)
		r.Put("/", h.UpdatePricing)
		r.Post("/reload", h.ReloadPricing)
	})
}

func (h *Handler) CreateTrial(w http.ResponseWriter, r *http.Request) {
	var req CreateTrialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateTrial(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("payment reference"))
		case errors.Is(err, ErrInvalidPricingConfig):
			core.InternalServerError(w, err)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sub, err := h.service.Cancel(
		ctx,
		chi.URLParam(r, "subscriptionID"),
		middleware.GetUserID(ctx),
		middleware.IsAdminRole(middleware.GetUserRole(ctx)),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toSubscriptionResponse(sub))
}

func (h *Handler) ToggleFreeze(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.ToggleFreeze(
		r.Context(),
		chi.URLParam(r, "subscriptionID"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toSubscriptionResponse(sub))
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetCurrent(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toSubscriptionResponse(sub))
}

func (h *Handler) GetPricing(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.pricing.Current()
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, cfg)
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	params := QuoteParams{
		PlanType:     r.URL.Query().Get("plan_type"),
		BillingCycle: r.URL.Query().Get("billing_cycle"),
		LearnerCount: 1,
	}

	if raw := r.URL.Query().Get("learner_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			core.BadRequest(w, "learner_count must be an integer")
			return
		}
		params.LearnerCount = count
	}

	if err := h.validator.Struct(params); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	price, err := h.pricing.Quote(
		params.PlanType,
		params.BillingCycle,
		params.LearnerCount,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, QuoteResponse{
		PlanType:     params.PlanType,
		BillingCycle: params.BillingCycle,
		LearnerCount: params.LearnerCount,
		FinalPrice:   price,
	})
}

func (h *Handler) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	var cfg PricingConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.pricing.Update(r.Context(), cfg); err != nil {
		if errors.Is(err, ErrInvalidPricingConfig) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, cfg)
}

func (h *Handler) ReloadPricing(w http.ResponseWriter, r *http.Request) {
	if err := h.pricing.Load(r.Context()); err != nil {
		core.InternalServerError(w, err)
		return
	}

	cfg, err := h.pricing.Current()
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, cfg)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("subscription"))
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, core.ForbiddenError("subscription belongs to another user"))
	default:
		core.InternalServerError(w, err)
	}
}
