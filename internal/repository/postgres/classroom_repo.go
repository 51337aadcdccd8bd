package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"gorm.io/gorm"
)

type classroomRepository struct {
	db *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *classroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) Create(ctx context.Context, classroom *domain.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Classroom, error) {
	var classroom domain.Classroom
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&classroom, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepository) GetByJoinCode(ctx context.Context, code string) (*domain.Classroom, error) {
	var classroom domain.Classroom
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&classroom, "join_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepository) Update(ctx context.Context, classroom *domain.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

func (r *classroomRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Classroom, error) {
	var classrooms []*domain.Classroom
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN classroom_members ON classroom_members.classroom_id = classrooms.id").
		Where("classrooms.owner_id = ? OR classroom_members.user_id = ?", userID, userID).
		Group("classrooms.id").
		Order("classrooms.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&classrooms).Error
	if err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (r *classroomRepository) AddMember(ctx context.Context, member *domain.ClassroomMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *classroomRepository) GetMembers(ctx context.Context, classroomID uuid.UUID) ([]*domain.ClassroomMember, error) {
	var members []*domain.ClassroomMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("classroom_id = ?", classroomID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *classroomRepository) IsMember(ctx context.Context, classroomID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ClassroomMember{}).
		Where("classroom_id = ? AND user_id = ?", classroomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMemberIDsByOwner returns the distinct students enrolled across all of
// an owner's classrooms.
func (r *classroomRepository) ListMemberIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.ClassroomMember{}).
		Distinct("classroom_members.user_id").
		Joins("JOIN classrooms ON classrooms.id = classroom_members.classroom_id").
		Where("classrooms.owner_id = ?", ownerID).
		Pluck("classroom_members.user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ShareClassroom reports whether two users participate in at least one
// common classroom. The owner counts as a participant without a member row.
func (r *classroomRepository) ShareClassroom(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("classrooms").
		Joins("LEFT JOIN classroom_members AS a ON a.classroom_id = classrooms.id AND a.user_id = ?", userA).
		Joins("LEFT JOIN classroom_members AS b ON b.classroom_id = classrooms.id AND b.user_id = ?", userB).
		Where("(classrooms.owner_id = ? OR a.user_id IS NOT NULL) AND (classrooms.owner_id = ? OR b.user_id IS NOT NULL)", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
