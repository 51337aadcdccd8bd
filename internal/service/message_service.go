package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository"
	"gorm.io/gorm"
)

type MessageService struct {
	messageRepo   repository.MessageRepository
	classroomRepo repository.ClassroomRepository
	notifier      Notifier
}

func NewMessageService(messageRepo repository.MessageRepository, classroomRepo repository.ClassroomRepository, notifier Notifier) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		classroomRepo: classroomRepo,
		notifier:      notifier,
	}
}

// Send delivers a direct message. Sender and recipient must share at least
// one classroom; this is the only reachability rule.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*domain.Message, error) {
	shared, err := s.classroomRepo.ShareClassroom(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !shared {
		return nil, domain.ErrMessageForbidden
	}

	msg := &domain.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notifier.Notify(recipientID, &domain.Notification{
		Kind:      domain.NotificationMessage,
		UserID:    recipientID,
		Payload:   msg,
		Timestamp: time.Now(),
	})

	return msg, nil
}

func (s *MessageService) Conversation(ctx context.Context, userID, otherID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	return s.messageRepo.GetConversation(ctx, userID, otherID, limit, offset)
}

// MarkRead marks a message read; only the recipient may do so.
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMessageNotFound
		}
		return err
	}
	if msg.RecipientID != userID {
		return domain.ErrMessageNotFound
	}
	return s.messageRepo.MarkRead(ctx, messageID)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}
