package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"monkid.com/backoffice/internal/entity"
)

type TeacherRepository interface {
	List(ctx context.Context, order clause.OrderByColumn, offset, limit int) ([]*entity.Teacher, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Teacher, error)
	Create(ctx context.Context, teacher *entity.Teacher) error
	Update(ctx context.Context, teacher *entity.Teacher) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindMissing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, []uuid.UUID, error)
	Totals(ctx context.Context) (*Totals, error)
}

// Totals aggregates the salary ledger across all teachers.
type Totals struct {
	Count       int64
	TotalSalary float64
	PaidAmount  float64
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) List(ctx context.Context, order clause.OrderByColumn, offset, limit int) ([]*entity.Teacher, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Teacher{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teachers []*entity.Teacher
	if err := r.db.WithContext(ctx).
		Order(order).
		Order("created_at").
		Offset(offset).
		Limit(limit).
		Find(&teachers).Error; err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

func (r *teacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Teacher, error) {
	var teacher entity.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) Create(ctx context.Context, teacher *entity.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepository) Update(ctx context.Context, teacher *entity.Teacher) error {
	return r.db.WithContext(ctx).
		Model(teacher).
		Select("*").
		Omit("id", "created_at").
		Updates(teacher).Error
}

func (r *teacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Teacher{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teacherRepository) FindMissing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return findMissing(r.db.WithContext(ctx), ids)
}

// BulkDelete removes every listed teacher or none of them.
func (r *teacherRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, []uuid.UUID, error) {
	var deleted int64
	var missing []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if missing, err = findMissing(tx, ids); err != nil || len(missing) > 0 {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&entity.Teacher{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, nil, err
	}
	return deleted, missing, nil
}

func (r *teacherRepository) Totals(ctx context.Context) (*Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).
		Model(&entity.Teacher{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_salary), 0) AS total_salary, COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func findMissing(db *gorm.DB, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uuid.UUID
	if err := db.Model(&entity.Teacher{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
