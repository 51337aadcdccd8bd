package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two members of the same classroom.
type Message struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SenderID    uuid.UUID  `json:"senderId" gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID  `json:"recipientId" gorm:"type:uuid;not null;index"`
	Body        string     `json:"body" gorm:"not null"`
	ReadAt      *time.Time `json:"readAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Relations
	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

type NotificationKind string

const (
	NotificationMessage       NotificationKind = "message"
	NotificationClassroomJoin NotificationKind = "classroom_join"
	NotificationCoursePublish NotificationKind = "course_publish"
	NotificationScoreAssigned NotificationKind = "score_assigned"
)

// Notification is the envelope pushed to connected clients over the
// websocket hub. It is not persisted; missed notifications are recovered
// from the underlying records (unread messages, new courses).
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	UserID    uuid.UUID        `json:"userId"`
	Payload   any              `json:"payload,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
