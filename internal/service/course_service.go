package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository"
	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo       repository.CourseRepository
	subscriptionRepo repository.SubscriptionRepository
	classroomRepo    repository.ClassroomRepository
	notifier         Notifier
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	subscriptionRepo repository.SubscriptionRepository,
	classroomRepo repository.ClassroomRepository,
	notifier Notifier,
) *CourseService {
	return &CourseService{
		courseRepo:       courseRepo,
		subscriptionRepo: subscriptionRepo,
		classroomRepo:    classroomRepo,
		notifier:         notifier,
	}
}

type CreateCourseInput struct {
	AuthorID    uuid.UUID
	Title       string
	Description string
	Script      domain.Script
	IsPremium   bool
}

func (s *CourseService) Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error) {
	course := &domain.Course{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Script:      input.Script,
		AuthorID:    input.AuthorID,
		Status:      domain.CourseStatusDraft,
		IsPremium:   input.IsPremium,
	}
	if course.Script == "" {
		course.Script = domain.ScriptLatinPrint
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get returns a course with its ordered lessons. Premium courses are only
// returned in full to the author or to users with an active subscription;
// everyone else gets the course header without lessons.
func (s *CourseService) Get(ctx context.Context, courseID, userID uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if course.Status != domain.CourseStatusPublished && course.AuthorID != userID {
		return nil, domain.ErrCourseNotFound
	}

	if course.IsPremium && course.AuthorID != userID {
		if _, err := s.subscriptionRepo.GetActiveByUser(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				course.Lessons = nil
				return course, nil
			}
			return nil, err
		}
	}

	return course, nil
}

func (s *CourseService) ListPublished(ctx context.Context, limit, offset int) ([]*domain.Course, error) {
	return s.courseRepo.ListPublished(ctx, limit, offset)
}

func (s *CourseService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Course, error) {
	return s.courseRepo.ListByAuthor(ctx, authorID)
}

type UpdateCourseInput struct {
	Title       *string
	Description *string
	Publish     bool
}

func (s *CourseService) Update(ctx context.Context, courseID, userID uuid.UUID, input UpdateCourseInput) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if course.AuthorID != userID {
		return nil, domain.ErrNotAuthor
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	published := input.Publish && course.Status != domain.CourseStatusPublished
	if published {
		now := time.Now()
		course.Status = domain.CourseStatusPublished
		course.PublishedAt = &now
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	if published {
		s.announcePublish(ctx, course)
	}

	return course, nil
}

// announcePublish pushes a course_publish notification to every student
// enrolled in one of the author's classrooms. Best effort; a lookup failure
// only costs the push.
func (s *CourseService) announcePublish(ctx context.Context, course *domain.Course) {
	studentIDs, err := s.classroomRepo.ListMemberIDsByOwner(ctx, course.AuthorID)
	if err != nil {
		log.Printf("ERROR [CourseService.announcePublish] listing students: %v", err)
		return
	}

	for _, studentID := range studentIDs {
		s.notifier.Notify(studentID, &domain.Notification{
			Kind:      domain.NotificationCoursePublish,
			UserID:    studentID,
			Payload:   map[string]string{"courseId": course.ID.String(), "title": course.Title},
			Timestamp: time.Now(),
		})
	}
}

type AddLessonInput struct {
	Title    string
	Position int
}

func (s *CourseService) AddLesson(ctx context.Context, courseID, userID uuid.UUID, input AddLessonInput) (*domain.Lesson, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if course.AuthorID != userID {
		return nil, domain.ErrNotAuthor
	}

	lesson := &domain.Lesson{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    input.Title,
		Position: input.Position,
	}
	if err := s.courseRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
