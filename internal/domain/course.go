package domain

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
)

type Script string

const (
	ScriptLatinPrint   Script = "latin_print"
	ScriptLatinCursive Script = "latin_cursive"
	ScriptDevanagari   Script = "devanagari"
	ScriptArabic       Script = "arabic"
)

type Course struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Script      Script       `json:"script" gorm:"not null;default:'latin_print'"`
	AuthorID    uuid.UUID    `json:"authorId" gorm:"type:uuid;not null"`
	Status      CourseStatus `json:"status" gorm:"not null;default:'draft'"`
	// Premium courses require an active subscription to open.
	IsPremium   bool       `json:"isPremium" gorm:"not null;default:false"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Author  *User    `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}

type Lesson struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CourseID  uuid.UUID `json:"courseId" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
