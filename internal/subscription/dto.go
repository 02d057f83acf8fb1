// AngelaMos | 2026
// dto.go

package subscription

import "time"

type CreateTrialRequest struct {
	Email            string  `json:"email" validate:"required,email"`
	Username         string  `json:"username" validate:"required,min=2,max=50"`
	PlanType         string  `json:"plan_type" validate:"required,oneof=all_access combo single"`
	BillingCycle     string  `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	ChildrenCount    int     `json:"children_count" validate:"required,gte=1"`
	SelectedSubject  *string `json:"selected_subject" validate:"omitempty,uuid"`
	PaymentReference string  `json:"payment_reference" validate:"required,max=100"`
	CardLastFour     string  `json:"card_last_four" validate:"omitempty,len=4,numeric"`
}

type TrialResponse struct {
	TrialEndDate time.Time `json:"trial_end_date"`
	UserID       string    `json:"user_id"`
	Token        string    `json:"token"`
}

type SubscriptionResponse struct {
	ID              string     `json:"id"`
	PlanType        string     `json:"plan_type"`
	BillingCycle    string     `json:"billing_cycle"`
	ChildrenCount   int        `json:"children_count"`
	SelectedSubject *string    `json:"selected_subject,omitempty"`
	AmountPaid      float64    `json:"amount_paid"`
	Status          string     `json:"status"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	TrialEndDate    *time.Time `json:"trial_end_date,omitempty"`
	AutoRenew       bool       `json:"auto_renew"`
	CardLastFour    string     `json:"card_last_four,omitempty"`
}

func toSubscriptionResponse(sub *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              sub.ID,
		PlanType:        sub.PlanType,
		BillingCycle:    sub.BillingCycle,
		ChildrenCount:   sub.ChildrenCount,
		SelectedSubject: sub.SelectedSubject,
		AmountPaid:      sub.AmountPaid,
		Status:          sub.Status,
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		TrialEndDate:    sub.TrialEndDate,
		AutoRenew:       sub.AutoRenew,
		CardLastFour:    sub.CardLastFour,
	}
}

type QuoteParams struct {
	PlanType     string `validate:"required,oneof=all_access combo single"`
	BillingCycle string `validate:"required,oneof=monthly yearly"`
	LearnerCount int    `validate:"gte=1"`
}

type QuoteResponse struct {
	PlanType     string  `json:"plan_type"`
	BillingCycle string  `json:"billing_cycle"`
	LearnerCount int     `json:"learner_count"`
	FinalPrice   float64 `json:"final_price"`
}
