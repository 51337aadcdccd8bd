package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpdateSessionID is the session bump: a single-column update, atomic at
	// the storage layer. Every previously issued token goes stale with it.
	UpdateSessionID(ctx context.Context, id uuid.UUID, sessionID string) error
	SetVerified(ctx context.Context, id uuid.UUID) error
}

type VerificationTokenRepository interface {
	Create(ctx context.Context, token *domain.VerificationToken) error
	GetByHash(ctx context.Context, hash string) (*domain.VerificationToken, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type ClassroomRepository interface {
	Create(ctx context.Context, classroom *domain.Classroom) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Classroom, error)
	GetByJoinCode(ctx context.Context, code string) (*domain.Classroom, error)
	Update(ctx context.Context, classroom *domain.Classroom) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Classroom, error)
	AddMember(ctx context.Context, member *domain.ClassroomMember) error
	GetMembers(ctx context.Context, classroomID uuid.UUID) ([]*domain.ClassroomMember, error)
	IsMember(ctx context.Context, classroomID, userID uuid.UUID) (bool, error)
	ShareClassroom(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	ListMemberIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	ListPublished(ctx context.Context, limit, offset int) ([]*domain.Course, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Course, error)
	CreateLesson(ctx context.Context, lesson *domain.Lesson) error
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
}

type PracticeRepository interface {
	CreateSet(ctx context.Context, set *domain.PracticeSet) error
	GetSet(ctx context.Context, id uuid.UUID) (*domain.PracticeSet, error)
	UpdateSet(ctx context.Context, set *domain.PracticeSet) error
	ListSetsByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.PracticeSet, error)
	CreateSubmission(ctx context.Context, sub *domain.PracticeSubmission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.PracticeSubmission, error)
	UpdateSubmission(ctx context.Context, sub *domain.PracticeSubmission) error
	ListSubmissions(ctx context.Context, setID, userID uuid.UUID) ([]*domain.PracticeSubmission, error)
	ListSubmissionsBySet(ctx context.Context, setID uuid.UUID) ([]*domain.PracticeSubmission, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Payment, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	Update(ctx context.Context, sub *domain.Subscription) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Subscription, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	CreatePlan(ctx context.Context, plan *domain.Plan) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	GetConversation(ctx context.Context, userA, userB uuid.UUID, limit, offset int) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Repositories struct {
	User              UserRepository
	VerificationToken VerificationTokenRepository
	Classroom         ClassroomRepository
	Course            CourseRepository
	Practice          PracticeRepository
	Payment           PaymentRepository
	Subscription      SubscriptionRepository
	Message           MessageRepository
}
