package service

import (
	"github.com/mira/handwriting-trainer/internal/config"
	"github.com/mira/handwriting-trainer/internal/email"
	"github.com/mira/handwriting-trainer/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Classroom *ClassroomService
	Course    *CourseService
	Practice  *PracticeService
	Billing   *BillingService
	Message   *MessageService
}

func NewServices(repos *repository.Repositories, mailer email.Sender, notifier Notifier, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, repos.VerificationToken, mailer, cfg),
		Classroom: NewClassroomService(repos.Classroom, notifier),
		Course:    NewCourseService(repos.Course, repos.Subscription, repos.Classroom, notifier),
		Practice:  NewPracticeService(repos.Practice, repos.Course, repos.User, mailer, notifier),
		Billing:   NewBillingService(repos.Payment, repos.Subscription),
		Message:   NewMessageService(repos.Message, repos.Classroom, notifier),
	}
}
