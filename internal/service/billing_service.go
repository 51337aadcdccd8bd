package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BillingService owns payments and the subscriptions they open. There is no
// payment-provider integration here; a charge is recorded pending and
// settled when the provider callback reports the outcome.
type BillingService struct {
	paymentRepo      repository.PaymentRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewBillingService(paymentRepo repository.PaymentRepository, subscriptionRepo repository.SubscriptionRepository) *BillingService {
	return &BillingService{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *BillingService) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	return s.subscriptionRepo.ListPlans(ctx)
}

type StartPaymentInput struct {
	UserID      uuid.UUID
	PlanID      uuid.UUID
	ProviderRef string
}

func (s *BillingService) StartPayment(ctx context.Context, input StartPaymentInput) (*domain.Payment, error) {
	plan, err := s.subscriptionRepo.GetPlan(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	if _, err := s.subscriptionRepo.GetActiveByUser(ctx, input.UserID); err == nil {
		return nil, domain.ErrSubscriptionOverlap
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uuid.New(),
		UserID:      input.UserID,
		PlanID:      plan.ID,
		AmountCents: plan.PriceCents,
		Currency:    plan.Currency,
		Status:      domain.PaymentStatusPending,
		ProviderRef: input.ProviderRef,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// SettlePayment records the provider outcome. A successful settlement opens
// the subscription window for the paid plan.
func (s *BillingService) SettlePayment(ctx context.Context, paymentID, userID uuid.UUID, succeeded bool, metadata datatypes.JSON) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	// Other users' payment records are indistinguishable from absent ones.
	if payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}

	if payment.Status != domain.PaymentStatusPending {
		return nil, domain.ErrPaymentAlreadySettled
	}

	now := time.Now()
	payment.SettledAt = &now
	payment.Metadata = metadata
	if succeeded {
		payment.Status = domain.PaymentStatusSucceeded
	} else {
		payment.Status = domain.PaymentStatusFailed
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if !succeeded {
		return payment, nil
	}

	plan, err := s.subscriptionRepo.GetPlan(ctx, payment.PlanID)
	if err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ID:        uuid.New(),
		UserID:    payment.UserID,
		PlanID:    plan.ID,
		PaymentID: payment.ID,
		Status:    domain.SubscriptionStatusActive,
		StartsAt:  now,
		EndsAt:    now.AddDate(0, 0, plan.DurationDays),
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *BillingService) ListPayments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *BillingService) ActiveSubscription(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubscriptionNotActive
		}
		return nil, err
	}
	return sub, nil
}

func (s *BillingService) CancelSubscription(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubscriptionNotActive
		}
		return nil, err
	}

	sub.Status = domain.SubscriptionStatusCancelled
	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *BillingService) ListSubscriptions(ctx context.Context, userID uuid.UUID) ([]*domain.Subscription, error) {
	return s.subscriptionRepo.ListByUser(ctx, userID)
}
