// AngelaMos | 2026
// entity.go

package subscription

import "time"

const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusUpcoming  = "upcoming"
	StatusFrozen    = "frozen"
	StatusCancelled = "cancelled"
)

const (
	PlanAllAccess = "all_access"
	PlanCombo     = "combo"
	PlanSingle    = "single"
)

const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

func ValidPlanType(plan string) bool {
	switch plan {
	case PlanAllAccess, PlanCombo, PlanSingle:
		return true
	}
	return false
}

func ValidBillingCycle(cycle string) bool {
	return cycle == CycleMonthly || cycle == CycleYearly
}

// Subscription is never physically deleted; status transitions are the
// only mutation path. At most one subscription per user is current.
type Subscription struct {
	ID               string     `db:"id"`
	UserID           string     `db:"user_id"`
	PlanType         string     `db:"plan_type"`
	BillingCycle     string     `db:"billing_cycle"`
	ChildrenCount    int        `db:"children_count"`
	SelectedSubject  *string    `db:"selected_subject"`
	AmountPaid       float64    `db:"amount_paid"`
	PaymentReference string     `db:"payment_reference"`
	Status           string     `db:"status"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          time.Time  `db:"end_date"`
	TrialEndDate     *time.Time `db:"trial_end_date"`
	NextCheckAt      *time.Time `db:"next_check_at"`
	AutoRenew        bool       `db:"auto_renew"`
	CardLastFour     string     `db:"card_last_four"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}
