// AngelaMos | 2026
// pricing_test.go

package subscription

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/backend/internal/core"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		learners int
		discount float64
		want     float64
	}{
		{"single learner pays base", 11.00, 1, 3.00, 11.00},
		{"single learner ignores discount", 11.00, 1, 11.00, 11.00},
		{"three learners", 11.00, 3, 3.00, 27.00},
		{"two learners no discount", 10.00, 2, 0, 20.00},
		{"zero learners treated as one", 15.00, 0, 5.00, 15.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPrice(tt.base, tt.learners, tt.discount)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestFinalPrice_MonotonicInLearnerCount(t *testing.T) {
	const base, discount = 20.00, 5.00

	prev := FinalPrice(base, 1, discount)
	for n := 2; n <= 10; n++ {
		next := FinalPrice(base, n, discount)
		assert.Greater(t, next, prev, "learner count %d", n)
		prev = next
	}
}

func TestParsePricingConfig(t *testing.T) {
	valid := `{
		"plans": [
			{"plan_type": "single", "billing_cycle": "monthly",
			 "base_price": 11.00, "yearly_discount_percent": 0,
			 "additional_learner_discount": 3.00},
			{"plan_type": "all_access", "billing_cycle": "yearly",
			 "base_price": 200.00, "yearly_discount_percent": 15,
			 "additional_learner_discount": 50.00}
		]
	}`

	t.Run("valid blob", func(t *testing.T) {
		cfg, err := ParsePricingConfig([]byte(valid))
		require.NoError(t, err)
		assert.Len(t, cfg.Plans, 2)
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"plans": [`},
		{"empty plans", `{"plans": []}`},
		{"unknown plan type", `{"plans": [{"plan_type": "family", "billing_cycle": "monthly", "base_price": 10}]}`},
		{"unknown billing cycle", `{"plans": [{"plan_type": "combo", "billing_cycle": "weekly", "base_price": 10}]}`},
		{"zero base price", `{"plans": [{"plan_type": "combo", "billing_cycle": "monthly", "base_price": 0}]}`},
		{"discount exceeds base", `{"plans": [{"plan_type": "combo", "billing_cycle": "monthly", "base_price": 10, "additional_learner_discount": 11}]}`},
		{"negative discount", `{"plans": [{"plan_type": "combo", "billing_cycle": "monthly", "base_price": 10, "additional_learner_discount": -1}]}`},
		{"yearly percent out of range", `{"plans": [{"plan_type": "combo", "billing_cycle": "yearly", "base_price": 10, "yearly_discount_percent": 100}]}`},
		{"duplicate plan cell", `{"plans": [
			{"plan_type": "combo", "billing_cycle": "monthly", "base_price": 10},
			{"plan_type": "combo", "billing_cycle": "monthly", "base_price": 12}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePricingConfig([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidPricingConfig)
		})
	}
}

type fakeSettings struct {
	blobs map[string][]byte
	fail  bool
}

func (f *fakeSettings) Get(_ context.Context, key string) ([]byte, error) {
	if value, ok := f.blobs[key]; ok {
		return value, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeSettings) Upsert(_ context.Context, key string, value []byte) error {
	if f.fail {
		return assert.AnError
	}
	if f.blobs == nil {
		f.blobs = map[string][]byte{}
	}
	f.blobs[key] = value
	return nil
}

func validPricing() PricingConfig {
	return PricingConfig{Plans: []PlanPricing{
		{
			PlanType:                  PlanSingle,
			BillingCycle:              CycleMonthly,
			BasePrice:                 11.00,
			AdditionalLearnerDiscount: 3.00,
		},
	}}
}

func TestPricingStore(t *testing.T) {
	ctx := context.Background()

	t.Run("quote before load fails", func(t *testing.T) {
		store := NewPricingStore(&fakeSettings{}, "default_pricing")

		_, err := store.Quote(PlanSingle, CycleMonthly, 1)
		assert.ErrorIs(t, err, ErrInvalidPricingConfig)
	})

	t.Run("load then quote", func(t *testing.T) {
		settings := &fakeSettings{}
		store := NewPricingStore(settings, "default_pricing")
		require.NoError(t, store.Update(ctx, validPricing()))

		price, err := store.Quote(PlanSingle, CycleMonthly, 3)
		require.NoError(t, err)
		assert.InDelta(t, 27.00, price, 0.001)
	})

	t.Run("quote unknown plan cell", func(t *testing.T) {
		store := NewPricingStore(&fakeSettings{}, "default_pricing")
		require.NoError(t, store.Update(ctx, validPricing()))

		_, err := store.Quote(PlanCombo, CycleYearly, 1)
		assert.ErrorIs(t, err, ErrInvalidPricingConfig)
	})

	t.Run("invalid update keeps previous snapshot", func(t *testing.T) {
		store := NewPricingStore(&fakeSettings{}, "default_pricing")
		require.NoError(t, store.Update(ctx, validPricing()))

		bad := validPricing()
		bad.Plans[0].BasePrice = -1
		assert.ErrorIs(t, store.Update(ctx, bad), ErrInvalidPricingConfig)

		price, err := store.Quote(PlanSingle, CycleMonthly, 1)
		require.NoError(t, err)
		assert.InDelta(t, 11.00, price, 0.001)
	})

	t.Run("failed persistence keeps previous snapshot", func(t *testing.T) {
		settings := &fakeSettings{}
		store := NewPricingStore(settings, "default_pricing")
		require.NoError(t, store.Update(ctx, validPricing()))

		settings.fail = true
		updated := validPricing()
		updated.Plans[0].BasePrice = 99.00
		require.Error(t, store.Update(ctx, updated))

		price, err := store.Quote(PlanSingle, CycleMonthly, 1)
		require.NoError(t, err)
		assert.InDelta(t, 11.00, price, 0.001)
	})

	t.Run("reload picks up stored changes", func(t *testing.T) {
		settings := &fakeSettings{}
		store := NewPricingStore(settings, "default_pricing")
		require.NoError(t, store.Update(ctx, validPricing()))

		other := NewPricingStore(settings, "default_pricing")
		require.NoError(t, other.Load(ctx))

		price, err := other.Quote(PlanSingle, CycleMonthly, 2)
		require.NoError(t, err)
		assert.InDelta(t, 19.00, price, 0.001)
	})
}
