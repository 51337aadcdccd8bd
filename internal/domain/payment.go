package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is a local record of a charge. Provider integration happens
// outside this service; ProviderRef ties the record to the external charge
// and Metadata carries whatever the provider webhook delivered.
type Payment struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	PlanID      uuid.UUID      `json:"planId" gorm:"type:uuid;not null"`
	AmountCents int            `json:"amountCents" gorm:"not null"`
	Currency    string         `json:"currency" gorm:"not null;default:'USD'"`
	Status      PaymentStatus  `json:"status" gorm:"not null;default:'pending'"`
	ProviderRef string         `json:"providerRef"`
	Metadata    datatypes.JSON `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
	SettledAt   *time.Time     `json:"settledAt"`
}
