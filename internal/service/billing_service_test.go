package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository/postgres"
	"github.com/mira/handwriting-trainer/internal/service"
	"github.com/mira/handwriting-trainer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingService(t *testing.T) (*service.BillingService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewBillingService(repos.Payment, repos.Subscription), testDB
}

func TestBillingService_StartPayment(t *testing.T) {
	svc, testDB := newBillingService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	plan := testutil.NewPlanBuilder().WithPrice(1499).Build(t, testDB.DB)

	t.Run("opens a pending payment at the plan price", func(t *testing.T) {
		payment, err := svc.StartPayment(ctx, service.StartPaymentInput{
			UserID: user.ID,
			PlanID: plan.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, payment.Status)
		assert.Equal(t, 1499, payment.AmountCents)
		assert.Nil(t, payment.SettledAt)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.StartPayment(ctx, service.StartPaymentInput{
			UserID: user.ID,
			PlanID: uuid.New(),
		})
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})
}

func TestBillingService_SettlePayment(t *testing.T) {
	svc, testDB := newBillingService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	plan := testutil.NewPlanBuilder().WithDuration(30).Build(t, testDB.DB)

	payment, err := svc.StartPayment(ctx, service.StartPaymentInput{UserID: user.ID, PlanID: plan.ID})
	require.NoError(t, err)

	t.Run("another user cannot settle the payment", func(t *testing.T) {
		stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		_, err := svc.SettlePayment(ctx, payment.ID, stranger.ID, true, nil)
		assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	})

	t.Run("successful settlement opens the subscription window", func(t *testing.T) {
		settled, err := svc.SettlePayment(ctx, payment.ID, user.ID, true, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSucceeded, settled.Status)
		require.NotNil(t, settled.SettledAt)

		sub, err := svc.ActiveSubscription(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
		assert.WithinDuration(t, sub.StartsAt.AddDate(0, 0, 30), sub.EndsAt, time.Second)
	})

	t.Run("settling twice is rejected", func(t *testing.T) {
		_, err := svc.SettlePayment(ctx, payment.ID, user.ID, true, nil)
		assert.ErrorIs(t, err, domain.ErrPaymentAlreadySettled)
	})

	t.Run("overlapping purchase is rejected while the window is open", func(t *testing.T) {
		_, err := svc.StartPayment(ctx, service.StartPaymentInput{UserID: user.ID, PlanID: plan.ID})
		assert.ErrorIs(t, err, domain.ErrSubscriptionOverlap)
	})
}

func TestBillingService_FailedSettlementOpensNothing(t *testing.T) {
	svc, testDB := newBillingService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	plan := testutil.NewPlanBuilder().Build(t, testDB.DB)

	payment, err := svc.StartPayment(ctx, service.StartPaymentInput{UserID: user.ID, PlanID: plan.ID})
	require.NoError(t, err)

	settled, err := svc.SettlePayment(ctx, payment.ID, user.ID, false, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, settled.Status)

	_, err = svc.ActiveSubscription(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotActive)
}

func TestBillingService_CancelSubscription(t *testing.T) {
	svc, testDB := newBillingService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	plan := testutil.NewPlanBuilder().Build(t, testDB.DB)

	payment, err := svc.StartPayment(ctx, service.StartPaymentInput{UserID: user.ID, PlanID: plan.ID})
	require.NoError(t, err)
	_, err = svc.SettlePayment(ctx, payment.ID, user.ID, true, nil)
	require.NoError(t, err)

	cancelled, err := svc.CancelSubscription(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusCancelled, cancelled.Status)

	_, err = svc.ActiveSubscription(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotActive)

	// With the window closed a new purchase may start.
	_, err = svc.StartPayment(ctx, service.StartPaymentInput{UserID: user.ID, PlanID: plan.ID})
	assert.NoError(t, err)
}
