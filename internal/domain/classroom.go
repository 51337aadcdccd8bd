package domain

import (
	"time"

	"github.com/google/uuid"
)

type ClassroomStatus string

const (
	ClassroomStatusActive   ClassroomStatus = "active"
	ClassroomStatusArchived ClassroomStatus = "archived"
)

type Classroom struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	JoinCode    string          `json:"joinCode" gorm:"uniqueIndex;not null"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	OwnerID     uuid.UUID       `json:"ownerId" gorm:"type:uuid;not null"`
	Status      ClassroomStatus `json:"status" gorm:"not null;default:'active'"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

type ClassroomMember struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClassroomID uuid.UUID `json:"classroomId" gorm:"type:uuid;not null;uniqueIndex:idx_classroom_member"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_classroom_member"`
	JoinedAt    time.Time `json:"joinedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
