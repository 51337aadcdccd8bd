package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/email"
	"github.com/mira/handwriting-trainer/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PracticeService struct {
	practiceRepo repository.PracticeRepository
	courseRepo   repository.CourseRepository
	userRepo     repository.UserRepository
	mailer       email.Sender
	notifier     Notifier
}

func NewPracticeService(
	practiceRepo repository.PracticeRepository,
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	mailer email.Sender,
	notifier Notifier,
) *PracticeService {
	return &PracticeService{
		practiceRepo: practiceRepo,
		courseRepo:   courseRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		notifier:     notifier,
	}
}

type CreatePracticeSetInput struct {
	LessonID uuid.UUID
	AuthorID uuid.UUID
	Title    string
	Template datatypes.JSON
}

func (s *PracticeService) CreateSet(ctx context.Context, input CreatePracticeSetInput) (*domain.PracticeSet, error) {
	if _, err := s.courseRepo.GetLesson(ctx, input.LessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}

	set := &domain.PracticeSet{
		ID:       uuid.New(),
		LessonID: input.LessonID,
		AuthorID: input.AuthorID,
		Title:    input.Title,
		Template: input.Template,
	}
	if err := s.practiceRepo.CreateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *PracticeService) GetSet(ctx context.Context, id uuid.UUID) (*domain.PracticeSet, error) {
	set, err := s.practiceRepo.GetSet(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPracticeSetNotFound
		}
		return nil, err
	}
	return set, nil
}

func (s *PracticeService) ListSets(ctx context.Context, lessonID uuid.UUID) ([]*domain.PracticeSet, error) {
	return s.practiceRepo.ListSetsByLesson(ctx, lessonID)
}

type UpdatePracticeSetInput struct {
	Title    *string
	Template datatypes.JSON
}

func (s *PracticeService) UpdateSet(ctx context.Context, setID, userID uuid.UUID, input UpdatePracticeSetInput) (*domain.PracticeSet, error) {
	set, err := s.practiceRepo.GetSet(ctx, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPracticeSetNotFound
		}
		return nil, err
	}

	if set.AuthorID != userID {
		return nil, domain.ErrNotAuthor
	}

	if input.Title != nil {
		set.Title = *input.Title
	}
	if input.Template != nil {
		set.Template = input.Template
	}

	if err := s.practiceRepo.UpdateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *PracticeService) Submit(ctx context.Context, setID, userID uuid.UUID, strokes datatypes.JSON) (*domain.PracticeSubmission, error) {
	if _, err := s.practiceRepo.GetSet(ctx, setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPracticeSetNotFound
		}
		return nil, err
	}

	sub := &domain.PracticeSubmission{
		ID:            uuid.New(),
		PracticeSetID: setID,
		UserID:        userID,
		Strokes:       strokes,
		SubmittedAt:   time.Now(),
	}
	if err := s.practiceRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Score assigns a grade to a submission. Only the set's author may score;
// re-scoring overwrites the previous grade.
func (s *PracticeService) Score(ctx context.Context, submissionID, graderID uuid.UUID, score int) (*domain.PracticeSubmission, error) {
	if score < 0 || score > 100 {
		return nil, domain.ErrInvalidScore
	}

	sub, err := s.practiceRepo.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPracticeSetNotFound
		}
		return nil, err
	}

	set, err := s.practiceRepo.GetSet(ctx, sub.PracticeSetID)
	if err != nil {
		return nil, err
	}
	if set.AuthorID != graderID {
		return nil, domain.ErrNotAuthor
	}

	sub.Score = &score
	if err := s.practiceRepo.UpdateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	s.notifier.Notify(sub.UserID, &domain.Notification{
		Kind:      domain.NotificationScoreAssigned,
		UserID:    sub.UserID,
		Payload:   map[string]any{"submissionId": sub.ID.String(), "score": score},
		Timestamp: time.Now(),
	})

	if student, err := s.userRepo.GetByID(ctx, sub.UserID); err == nil {
		if err := s.mailer.SendScoreNotification(ctx, student.Email, set.Title, score); err != nil {
			log.Printf("ERROR [PracticeService.Score] failed to send score email: %v", err)
		}
	}

	return sub, nil
}

// ListSubmissions returns the caller's own attempts, or every attempt when
// the caller authored the set.
func (s *PracticeService) ListSubmissions(ctx context.Context, setID, userID uuid.UUID) ([]*domain.PracticeSubmission, error) {
	set, err := s.practiceRepo.GetSet(ctx, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPracticeSetNotFound
		}
		return nil, err
	}

	if set.AuthorID == userID {
		return s.practiceRepo.ListSubmissionsBySet(ctx, setID)
	}
	return s.practiceRepo.ListSubmissions(ctx, setID, userID)
}
