package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prospectr/backend/internal/models"
	"go.uber.org/zap"
)

// CreditStore is the storage boundary for the per-organization ledger.
type CreditStore interface {
	GetByOrg(ctx context.Context, orgID uuid.UUID) (*models.Subscription, error)
	ResetUsage(ctx context.Context, orgID uuid.UUID, nextReset time.Time) error
	ConsumeCredits(ctx context.Context, orgID uuid.UUID, amount int) (bool, error)
}

// Balance is the point-in-time credit position for one organization.
type Balance struct {
	Available int       `json:"available"`
	Used      int       `json:"used"`
	Total     int       `json:"total"`
	ResetAt   time.Time `json:"reset_at"`
	Plan      string    `json:"plan"`
}

// CreditService meters the monthly consumable budget. Rollover is an
// explicit step invoked before any read or consume, never a hidden side
// effect of a read.
type CreditService struct {
	store CreditStore
	now   func() time.Time
	log   *zap.Logger
}

func NewCreditService(store CreditStore, log *zap.Logger) *CreditService {
	return &CreditService{store: store, now: time.Now, log: log}
}

// MaybeRollover zeroes usage and advances the reset point by one month
// when the current window has lapsed.
func (s *CreditService) MaybeRollover(ctx context.Context, orgID uuid.UUID) error {
	sub, err := s.store.GetByOrg(ctx, orgID)
	if err != nil {
		return fmt.Errorf("subscription not found: %w", err)
	}

	now := s.now()
	if !now.After(sub.CreditsResetAt) {
		return nil
	}

	nextReset := now.AddDate(0, 1, 0)
	if err := s.store.ResetUsage(ctx, orgID, nextReset); err != nil {
		return err
	}
	s.log.Info("credits rolled over",
		zap.String("organization_id", orgID.String()),
		zap.Time("next_reset", nextReset),
	)
	return nil
}

func (s *CreditService) Balance(ctx context.Context, orgID uuid.UUID) (Balance, error) {
	if err := s.MaybeRollover(ctx, orgID); err != nil {
		return Balance{}, err
	}

	sub, err := s.store.GetByOrg(ctx, orgID)
	if err != nil {
		return Balance{}, err
	}

	available := sub.MonthlyCredits - sub.CreditsUsed
	if available < 0 {
		available = 0
	}
	return Balance{
		Available: available,
		Used:      sub.CreditsUsed,
		Total:     sub.MonthlyCredits,
		ResetAt:   sub.CreditsResetAt,
		Plan:      sub.Plan,
	}, nil
}

func (s *CreditService) CheckAvailable(ctx context.Context, orgID uuid.UUID, amount int) (bool, error) {
	balance, err := s.Balance(ctx, orgID)
	if err != nil {
		return false, err
	}
	return balance.Available >= amount, nil
}

// Consume settles amount against the ledger. Returns false without
// mutating state when the budget is insufficient; the store's
// conditional update makes check-then-increment atomic across
// concurrent runs for the same organization.
func (s *CreditService) Consume(ctx context.Context, orgID uuid.UUID, amount int) (bool, error) {
	if amount <= 0 {
		return true, nil
	}
	if err := s.MaybeRollover(ctx, orgID); err != nil {
		return false, err
	}

	ok, err := s.store.ConsumeCredits(ctx, orgID, amount)
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.Warn("credit consume rejected, insufficient balance",
			zap.String("organization_id", orgID.String()),
			zap.Int("amount", amount),
		)
	}
	return ok, nil
}
