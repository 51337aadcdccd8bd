package domain

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	PriceCents   int       `json:"priceCents" gorm:"not null"`
	Currency     string    `json:"currency" gorm:"not null;default:'USD'"`
	DurationDays int       `json:"durationDays" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID          `json:"userId" gorm:"type:uuid;not null;index"`
	PlanID    uuid.UUID          `json:"planId" gorm:"type:uuid;not null"`
	PaymentID uuid.UUID          `json:"paymentId" gorm:"type:uuid;not null"`
	Status    SubscriptionStatus `json:"status" gorm:"not null;default:'active'"`
	StartsAt  time.Time          `json:"startsAt" gorm:"not null"`
	EndsAt    time.Time          `json:"endsAt" gorm:"not null"`
	CreatedAt time.Time          `json:"createdAt"`

	// Relations
	Plan *Plan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}

// IsCurrent reports whether the subscription window covers now.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionStatusActive &&
		!now.Before(s.StartsAt) && now.Before(s.EndsAt)
}
