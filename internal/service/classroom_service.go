package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository"
	"gorm.io/gorm"
)

type ClassroomService struct {
	classroomRepo repository.ClassroomRepository
	notifier      Notifier
}

// Notifier is the push side of the websocket hub; services fan events out
// through it without knowing about connections.
type Notifier interface {
	Notify(userID uuid.UUID, n *domain.Notification)
}

func NewClassroomService(classroomRepo repository.ClassroomRepository, notifier Notifier) *ClassroomService {
	return &ClassroomService{
		classroomRepo: classroomRepo,
		notifier:      notifier,
	}
}

type CreateClassroomInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}

func (s *ClassroomService) Create(ctx context.Context, input CreateClassroomInput) (*domain.Classroom, error) {
	classroom := &domain.Classroom{
		ID:          uuid.New(),
		JoinCode:    generateJoinCode(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		Status:      domain.ClassroomStatusActive,
	}

	if err := s.classroomRepo.Create(ctx, classroom); err != nil {
		return nil, err
	}

	return classroom, nil
}

func (s *ClassroomService) Get(ctx context.Context, idOrCode string) (*domain.Classroom, error) {
	var (
		classroom *domain.Classroom
		err       error
	)
	if id, parseErr := uuid.Parse(idOrCode); parseErr == nil {
		classroom, err = s.classroomRepo.GetByID(ctx, id)
	} else {
		classroom, err = s.classroomRepo.GetByJoinCode(ctx, strings.ToUpper(idOrCode))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Join(ctx context.Context, joinCode string, userID uuid.UUID) (*domain.Classroom, error) {
	classroom, err := s.classroomRepo.GetByJoinCode(ctx, strings.ToUpper(joinCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, err
	}

	if classroom.Status == domain.ClassroomStatusArchived {
		return nil, domain.ErrClassroomArchived
	}

	if classroom.OwnerID == userID {
		return nil, domain.ErrAlreadyMember
	}
	isMember, err := s.classroomRepo.IsMember(ctx, classroom.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, domain.ErrAlreadyMember
	}

	member := &domain.ClassroomMember{
		ID:          uuid.New(),
		ClassroomID: classroom.ID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	}
	if err := s.classroomRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.notifier.Notify(classroom.OwnerID, &domain.Notification{
		Kind:      domain.NotificationClassroomJoin,
		UserID:    classroom.OwnerID,
		Payload:   map[string]string{"classroomId": classroom.ID.String(), "userId": userID.String()},
		Timestamp: time.Now(),
	})

	return classroom, nil
}

type UpdateClassroomInput struct {
	Name        *string
	Description *string
	Archive     bool
}

func (s *ClassroomService) Update(ctx context.Context, classroomID, userID uuid.UUID, input UpdateClassroomInput) (*domain.Classroom, error) {
	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, err
	}

	if classroom.OwnerID != userID {
		return nil, domain.ErrNotClassroomOwner
	}

	if input.Name != nil {
		classroom.Name = *input.Name
	}
	if input.Description != nil {
		classroom.Description = *input.Description
	}
	if input.Archive {
		classroom.Status = domain.ClassroomStatusArchived
	}

	if err := s.classroomRepo.Update(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Classroom, error) {
	return s.classroomRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *ClassroomService) Members(ctx context.Context, classroomID, userID uuid.UUID) ([]*domain.ClassroomMember, error) {
	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, err
	}

	if classroom.OwnerID != userID {
		isMember, err := s.classroomRepo.IsMember(ctx, classroomID, userID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, domain.ErrNotMember
		}
	}

	return s.classroomRepo.GetMembers(ctx, classroomID)
}

func generateJoinCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return strings.ToUpper(hex.EncodeToString(bytes))
}
