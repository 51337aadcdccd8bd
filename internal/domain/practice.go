package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PracticeSet is an exercise sheet attached to a lesson. Template holds the
// glyph/stroke guide the client renders and traces against:
//
//	{"glyphs": ["a", "b"], "strokes": [...], "guideline": "seyes"}
type PracticeSet struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LessonID  uuid.UUID      `json:"lessonId" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID      `json:"authorId" gorm:"type:uuid;not null"`
	Title     string         `json:"title" gorm:"not null"`
	Template  datatypes.JSON `json:"template" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// PracticeSubmission records one attempt at a practice set. Strokes is the
// raw captured stroke data; Score is assigned out of band (0-100).
type PracticeSubmission struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PracticeSetID uuid.UUID      `json:"practiceSetId" gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	Strokes       datatypes.JSON `json:"strokes"`
	Score         *int           `json:"score"`
	SubmittedAt   time.Time      `json:"submittedAt"`
}
