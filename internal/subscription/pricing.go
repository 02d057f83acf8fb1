// AngelaMos | 2026
// pricing.go

package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInvalidPricingConfig means the stored pricing blob does not parse
// or validate. Pricing display treats it as fatal; no fallback price
// is invented.
var ErrInvalidPricingConfig = errors.New("invalid pricing configuration")

// PlanPricing configures one plan_type x billing_cycle cell. The
// yearly percentage discount is baked into the stored yearly BasePrice
// upstream; AdditionalLearnerDiscount is the flat per-learner amount
// applied at calculation time. The two numbers stay independent.
type PlanPricing struct {
	PlanType                  string  `json:"plan_type"`
	BillingCycle              string  `json:"billing_cycle"`
	BasePrice                 float64 `json:"base_price"`
	YearlyDiscountPercent     float64 `json:"yearly_discount_percent"`
	AdditionalLearnerDiscount float64 `json:"additional_learner_discount"`
}

type PricingConfig struct {
	Plans []PlanPricing `json:"plans"`
}

// FinalPrice computes the payable amount for learnerCount learners.
// Each learner beyond the first pays basePrice minus the flat
// discount. Monotonically non-decreasing in learnerCount as long as
// the discount does not exceed basePrice, which validation enforces
// at configuration time.
func FinalPrice(basePrice float64, learnerCount int, additionalLearnerDiscount float64) float64 {
	if learnerCount <= 1 {
		return basePrice
	}

	perAdditional := basePrice - additionalLearnerDiscount
	return basePrice + perAdditional*float64(learnerCount-1)
}

// ParsePricingConfig parses and validates the settings blob.
func ParsePricingConfig(raw []byte) (*PricingConfig, error) {
	var cfg PricingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse pricing blob: %v: %w", err, ErrInvalidPricingConfig)
	}

	if len(cfg.Plans) == 0 {
		return nil, fmt.Errorf("pricing blob has no plans: %w", ErrInvalidPricingConfig)
	}

	seen := make(map[string]bool, len(cfg.Plans))
	for i, plan := range cfg.Plans {
		if !ValidPlanType(plan.PlanType) {
			return nil, fmt.Errorf(
				"plan %d: unknown plan type %q: %w",
				i, plan.PlanType, ErrInvalidPricingConfig,
			)
		}
		if !ValidBillingCycle(plan.BillingCycle) {
			return nil, fmt.Errorf(
				"plan %d: unknown billing cycle %q: %w",
				i, plan.BillingCycle, ErrInvalidPricingConfig,
			)
		}
		if plan.BasePrice <= 0 {
			return nil, fmt.Errorf(
				"plan %s/%s: base price must be positive: %w",
				plan.PlanType, plan.BillingCycle, ErrInvalidPricingConfig,
			)
		}
		if plan.AdditionalLearnerDiscount < 0 || plan.AdditionalLearnerDiscount > plan.BasePrice {
			return nil, fmt.Errorf(
				"plan %s/%s: additional learner discount out of range: %w",
				plan.PlanType, plan.BillingCycle, ErrInvalidPricingConfig,
			)
		}
		if plan.YearlyDiscountPercent < 0 || plan.YearlyDiscountPercent >= 100 {
			return nil, fmt.Errorf(
				"plan %s/%s: yearly discount percent out of range: %w",
				plan.PlanType, plan.BillingCycle, ErrInvalidPricingConfig,
			)
		}

		key := plan.PlanType + "/" + plan.BillingCycle
		if seen[key] {
			return nil, fmt.Errorf(
				"duplicate plan entry %s: %w", key, ErrInvalidPricingConfig,
			)
		}
		seen[key] = true
	}

	return &cfg, nil
}

func (c *PricingConfig) find(planType, billingCycle string) (*PlanPricing, bool) {
	for i := range c.Plans {
		if c.Plans[i].PlanType == planType && c.Plans[i].BillingCycle == billingCycle {
			return &c.Plans[i], true
		}
	}
	return nil, false
}

// SettingsRepository reads and writes named configuration blobs.
type SettingsRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Upsert(ctx context.Context, key string, value []byte) error
}

// PricingStore holds the validated pricing table behind an atomic
// pointer. Readers never block; the snapshot changes only on explicit
// Load, Reload, or Update.
type PricingStore struct {
	settings SettingsRepository
	key      string
	snapshot atomic.Pointer[PricingConfig]
}

func NewPricingStore(settings SettingsRepository, key string) *PricingStore {
	return &PricingStore{settings: settings, key: key}
}

// Load reads, validates, and installs the stored pricing table.
func (s *PricingStore) Load(ctx context.Context) error {
	raw, err := s.settings.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load pricing settings %q: %w", s.key, err)
	}

	cfg, err := ParsePricingConfig(raw)
	if err != nil {
		return err
	}

	s.snapshot.Store(cfg)
	return nil
}

// Update validates, persists, and installs a new pricing table. On
// validation or persistence failure the previous snapshot stays live.
func (s *PricingStore) Update(ctx context.Context, cfg PricingConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal pricing config: %w", err)
	}

	validated, err := ParsePricingConfig(raw)
	if err != nil {
		return err
	}

	if err := s.settings.Upsert(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist pricing settings %q: %w", s.key, err)
	}

	s.snapshot.Store(validated)
	return nil
}

// Current returns the live snapshot, or an error if none was loaded.
func (s *PricingStore) Current() (*PricingConfig, error) {
	cfg := s.snapshot.Load()
	if cfg == nil {
		return nil, fmt.Errorf("pricing not loaded: %w", ErrInvalidPricingConfig)
	}
	return cfg, nil
}

// Quote prices a plan for the given number of learners.
func (s *PricingStore) Quote(
	planType, billingCycle string,
	learnerCount int,
) (float64, error) {
	cfg, err := s.Current()
	if err != nil {
		return 0, err
	}

	plan, ok := cfg.find(planType, billingCycle)
	if !ok {
		return 0, fmt.Errorf(
			"no pricing for %s/%s: %w",
			planType, billingCycle, ErrInvalidPricingConfig,
		)
	}

	return FinalPrice(plan.BasePrice, learnerCount, plan.AdditionalLearnerDiscount), nil
}
