package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prospectr/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memCreditStore struct {
	sub *models.Subscription
}

func (m *memCreditStore) GetByOrg(_ context.Context, orgID uuid.UUID) (*models.Subscription, error) {
	if m.sub == nil || m.sub.OrganizationID != orgID {
		return nil, errors.New("no rows")
	}
	cp := *m.sub
	return &cp, nil
}

func (m *memCreditStore) ResetUsage(_ context.Context, _ uuid.UUID, nextReset time.Time) error {
	m.sub.CreditsUsed = 0
	m.sub.CreditsResetAt = nextReset
	return nil
}

func (m *memCreditStore) ConsumeCredits(_ context.Context, _ uuid.UUID, amount int) (bool, error) {
	if m.sub.MonthlyCredits-m.sub.CreditsUsed < amount {
		return false, nil
	}
	m.sub.CreditsUsed += amount
	return true, nil
}

func newCreditFixture(monthly, used int, resetAt time.Time) (*CreditService, *memCreditStore, uuid.UUID) {
	orgID := uuid.New()
	store := &memCreditStore{sub: &models.Subscription{
		OrganizationID: orgID,
		Plan:           models.PlanStarter,
		MonthlyCredits: monthly,
		CreditsUsed:    used,
		CreditsResetAt: resetAt,
	}}
	return NewCreditService(store, zap.NewNop()), store, orgID
}

func TestBalanceComputesAvailable(t *testing.T) {
	svc, _, orgID := newCreditFixture(100, 30, time.Now().Add(24*time.Hour))

	b, err := svc.Balance(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, 70, b.Available)
	assert.Equal(t, 30, b.Used)
	assert.Equal(t, 100, b.Total)
}

func TestBalanceNeverNegative(t *testing.T) {
	// Plan downgrades can leave used > monthly; available floors at 0.
	svc, _, orgID := newCreditFixture(100, 140, time.Now().Add(24*time.Hour))

	b, err := svc.Balance(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Available)
}

func TestRolloverResetsLapsedWindow(t *testing.T) {
	svc, store, orgID := newCreditFixture(100, 90, time.Now().Add(-time.Hour))

	b, err := svc.Balance(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Available)
	assert.Equal(t, 0, b.Used)
	assert.True(t, store.sub.CreditsResetAt.After(time.Now()))
}

func TestRolloverLeavesCurrentWindowAlone(t *testing.T) {
	resetAt := time.Now().Add(48 * time.Hour)
	svc, store, orgID := newCreditFixture(100, 40, resetAt)

	require.NoError(t, svc.MaybeRollover(context.Background(), orgID))
	assert.Equal(t, 40, store.sub.CreditsUsed)
	assert.True(t, store.sub.CreditsResetAt.Equal(resetAt))
}

func TestConsumeDecrementsBudget(t *testing.T) {
	svc, store, orgID := newCreditFixture(100, 10, time.Now().Add(24*time.Hour))

	ok, err := svc.Consume(context.Background(), orgID, 12)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 22, store.sub.CreditsUsed)
}

func TestConsumeInsufficientLeavesStateUntouched(t *testing.T) {
	svc, store, orgID := newCreditFixture(100, 95, time.Now().Add(24*time.Hour))

	ok, err := svc.Consume(context.Background(), orgID, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 95, store.sub.CreditsUsed)
}

func TestConsumeAfterLapsedWindowUsesFreshBudget(t *testing.T) {
	svc, store, orgID := newCreditFixture(100, 100, time.Now().Add(-time.Minute))

	ok, err := svc.Consume(context.Background(), orgID, 40)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 40, store.sub.CreditsUsed)
}

func TestCheckAvailable(t *testing.T) {
	svc, _, orgID := newCreditFixture(100, 95, time.Now().Add(24*time.Hour))

	ok, err := svc.CheckAvailable(context.Background(), orgID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAvailable(context.Background(), orgID, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnknownOrgSurfacesError(t *testing.T) {
	svc, _, _ := newCreditFixture(100, 0, time.Now().Add(24*time.Hour))

	_, err := svc.Balance(context.Background(), uuid.New())
	assert.Error(t, err)
}
