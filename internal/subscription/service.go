// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brightpath-edu/backend/internal/auth"
	"github.com/brightpath-edu/backend/internal/core"
	"github.com/brightpath-edu/backend/internal/user"
)

// TokenIssuer mints the access token a trial signup returns.
// Satisfied by auth.JWTManager.
type TokenIssuer interface {
	CreateAccessToken(claims auth.AccessTokenClaims) (string, error)
}

type Service struct {
	db        *sqlx.DB
	repo      Repository
	users     user.Repository
	pricing   *PricingStore
	issuer    TokenIssuer
	logger    *slog.Logger
	trialDays int
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	users user.Repository,
	pricing *PricingStore,
	issuer TokenIssuer,
	logger *slog.Logger,
	trialDays int,
) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		users:     users,
		pricing:   pricing,
		issuer:    issuer,
		logger:    logger,
		trialDays: trialDays,
	}
}

// CreateTrial resolves or creates the user by email and opens a trial
// subscription, both inside one transaction. A failed subscription
// insert rolls the user creation back with it.
func (s *Service) CreateTrial(
	ctx context.Context,
	req CreateTrialRequest,
) (*TrialResponse, error) {
	if req.PlanType == PlanSingle && req.SelectedSubject == nil {
		return nil, fmt.Errorf(
			"single plan requires selected_subject: %w",
			core.ErrInvalidInput,
		)
	}

	amount, err := s.pricing.Quote(req.PlanType, req.BillingCycle, req.ChildrenCount)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trialEnd := now.Add(time.Duration(s.trialDays) * 24 * time.Hour)

	var owner *user.User
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		usersTx := user.NewRepository(tx)

		owner, err = usersTx.GetByEmail(ctx, req.Email)
		switch {
		case errors.Is(err, core.ErrNotFound):
			owner = &user.User{
				ID:           uuid.New().String(),
				Email:        req.Email,
				Username:     req.Username,
				Role:         user.RoleTrial,
				Plan:         req.PlanType,
				IsSubscribed: true,
			}
			if err := usersTx.Create(ctx, owner); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := usersTx.SetSubscription(ctx, owner.ID, req.PlanType, true); err != nil {
				return err
			}
		}

		sub := &Subscription{
			ID:               uuid.New().String(),
			UserID:           owner.ID,
			PlanType:         req.PlanType,
			BillingCycle:     req.BillingCycle,
			ChildrenCount:    req.ChildrenCount,
			SelectedSubject:  req.SelectedSubject,
			AmountPaid:       amount,
			PaymentReference: req.PaymentReference,
			Status:           StatusTrial,
			StartDate:        now,
			EndDate:          now.AddDate(1, 0, 0),
			TrialEndDate:     &trialEnd,
			NextCheckAt:      &trialEnd,
			AutoRenew:        true,
			CardLastFour:     core.CardLastFour(req.CardLastFour),
		}

		return NewRepository(tx).Create(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.CreateAccessToken(auth.AccessTokenClaims{
		UserID:       owner.ID,
		Role:         owner.Role,
		Plan:         req.PlanType,
		TokenVersion: owner.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("issue trial token: %w", err)
	}

	s.logger.Info("trial created",
		"subscription_user", owner.ID,
		"plan", req.PlanType,
		"trial_end", trialEnd,
	)

	return &TrialResponse{
		TrialEndDate: trialEnd,
		UserID:       owner.ID,
		Token:        token,
	}, nil
}

// Cancel is effective immediately from any state and idempotent. Any
// pending trial-end evaluation is disarmed by the status guard.
func (s *Service) Cancel(
	ctx context.Context,
	id, callerID string,
	callerIsAdmin bool,
) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !callerIsAdmin && sub.UserID != callerID {
		return nil, fmt.Errorf("subscription %s: %w", id, core.ErrForbidden)
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return nil, err
	}

	if err := s.users.SetSubscription(ctx, sub.UserID, sub.PlanType, false); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// ToggleFreeze flips active and frozen. Any other status is left
// unchanged and reported back as-is.
func (s *Service) ToggleFreeze(ctx context.Context, id string) (*Subscription, error) {
	if _, err := s.repo.ToggleFreeze(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetCurrent(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	return s.repo.GetCurrentByUser(ctx, userID)
}

// SweepTrialEnds promotes due trials to active. Safe against duplicate
// firing and concurrent cancels; the conditional claim re-checks
// status and auto_renew. Charging a saved card is an extension point
// left unimplemented.
func (s *Service) SweepTrialEnds(ctx context.Context, batchSize int) (int, error) {
	now := time.Now()

	claimed, err := s.repo.ClaimDueTrials(ctx, now, batchSize)
	if err != nil {
		return 0, err
	}

	for i := range claimed {
		s.logger.Info("trial promoted to active",
			"subscription_id", claimed[i].ID,
			"subscription_user", claimed[i].UserID,
			"plan", claimed[i].PlanType,
		)
	}

	if err := s.repo.ClearStaleChecks(ctx, now); err != nil {
		return len(claimed), err
	}

	return len(claimed), nil
}
