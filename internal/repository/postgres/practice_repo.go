package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"gorm.io/gorm"
)

type practiceRepository struct {
	db *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *practiceRepository {
	return &practiceRepository{db: db}
}

func (r *practiceRepository) CreateSet(ctx context.Context, set *domain.PracticeSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *practiceRepository) GetSet(ctx context.Context, id uuid.UUID) (*domain.PracticeSet, error) {
	var set domain.PracticeSet
	err := r.db.WithContext(ctx).First(&set, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *practiceRepository) UpdateSet(ctx context.Context, set *domain.PracticeSet) error {
	return r.db.WithContext(ctx).Save(set).Error
}

func (r *practiceRepository) ListSetsByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.PracticeSet, error) {
	var sets []*domain.PracticeSet
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&sets).Error
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *practiceRepository) CreateSubmission(ctx context.Context, sub *domain.PracticeSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *practiceRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.PracticeSubmission, error) {
	var sub domain.PracticeSubmission
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *practiceRepository) UpdateSubmission(ctx context.Context, sub *domain.PracticeSubmission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *practiceRepository) ListSubmissions(ctx context.Context, setID, userID uuid.UUID) ([]*domain.PracticeSubmission, error) {
	var subs []*domain.PracticeSubmission
	err := r.db.WithContext(ctx).
		Where("practice_set_id = ? AND user_id = ?", setID, userID).
		Order("submitted_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *practiceRepository) ListSubmissionsBySet(ctx context.Context, setID uuid.UUID) ([]*domain.PracticeSubmission, error) {
	var subs []*domain.PracticeSubmission
	err := r.db.WithContext(ctx).
		Where("practice_set_id = ?", setID).
		Order("submitted_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
