package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	DisplayName  string    `json:"displayName" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	// SessionID is rotated on every successful login. Only the most recently
	// issued access token carries the current value; older tokens fail
	// validation with ErrStaleSession even while cryptographically valid.
	SessionID  string    `json:"-" gorm:"not null;default:''"`
	IsVerified bool      `json:"isVerified" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AccessClaims is the typed payload of an access token. Parsing rejects
// tokens missing either ID; there is no untyped claims path.
type AccessClaims struct {
	UserID    uuid.UUID `json:"uid"`
	SessionID string    `json:"sid"`
	jwt.RegisteredClaims
}

// VerificationToken backs the email-verification flow. Only a SHA-256 hash
// of the emailed token is stored.
type VerificationToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
