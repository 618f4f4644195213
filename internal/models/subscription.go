package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlanStarter = "starter"
	PlanPro     = "pro"
)

// PlanCredits is the monthly credit allowance per plan.
var PlanCredits = map[string]int{
	PlanStarter: 100,
	PlanPro:     1000,
}

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusTrialing = "trialing"
)

// Subscription backs the per-organization credit ledger:
// available = max(0, monthly_credits - credits_used), reset monthly.
type Subscription struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Plan           string    `json:"plan"`
	Status         string    `json:"status"`
	MonthlyCredits int       `json:"monthly_credits"`
	CreditsUsed    int       `json:"credits_used"`
	CreditsResetAt time.Time `json:"credits_reset_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
