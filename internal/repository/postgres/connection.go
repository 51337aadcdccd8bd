package postgres

import (
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.VerificationToken{},
		&domain.Classroom{},
		&domain.ClassroomMember{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.PracticeSet{},
		&domain.PracticeSubmission{},
		&domain.Plan{},
		&domain.Payment{},
		&domain.Subscription{},
		&domain.Message{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:              NewUserRepository(db),
		VerificationToken: NewVerificationTokenRepository(db),
		Classroom:         NewClassroomRepository(db),
		Course:            NewCourseRepository(db),
		Practice:          NewPracticeRepository(db),
		Payment:           NewPaymentRepository(db),
		Subscription:      NewSubscriptionRepository(db),
		Message:           NewMessageRepository(db),
	}
}
