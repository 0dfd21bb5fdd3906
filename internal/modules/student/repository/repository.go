package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"monkid.com/backoffice/internal/entity"
)

const maxCreateAttempts = 5

// immutableColumns are never written by an update.
var immutableColumns = []string{"student_id", "sequential_number", "created_at"}

type StudentRepository interface {
	List(ctx context.Context, order clause.OrderByColumn, offset, limit int) ([]*entity.Student, int64, error)
	FindBySequentialNumber(ctx context.Context, seq uuid.UUID) (*entity.Student, error)
	Create(ctx context.Context, student *entity.Student) error
	CreateWithNextID(ctx context.Context, student *entity.Student) error
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, seq uuid.UUID) error
	FindMissing(ctx context.Context, seqs []uuid.UUID) ([]uuid.UUID, error)
	BulkDelete(ctx context.Context, seqs []uuid.UUID) (int64, []uuid.UUID, error)
	Totals(ctx context.Context) (*Totals, error)
}

// Totals aggregates the fee ledger across all students.
type Totals struct {
	Count           int64
	TotalFee        float64
	PaidAmount      float64
	RemainingAmount float64
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, order clause.OrderByColumn, offset, limit int) ([]*entity.Student, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []*entity.Student
	if err := r.db.WithContext(ctx).
		Order(order).
		Order("student_id").
		Offset(offset).
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *studentRepository) FindBySequentialNumber(ctx context.Context, seq uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	if err := r.db.WithContext(ctx).Where("sequential_number = ?", seq).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// CreateWithNextID assigns max(student_id)+1 inside a transaction and
// retries when a concurrent insert claimed the same id first.
func (r *studentRepository) CreateWithNextID(ctx context.Context, student *entity.Student) error {
	var err error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var maxID int64
			if err := tx.Model(&entity.Student{}).
				Select("COALESCE(MAX(student_id), 0)").
				Scan(&maxID).Error; err != nil {
				return err
			}
			student.StudentID = maxID + 1
			return tx.Create(student).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).
		Model(student).
		Select("*").
		Omit(immutableColumns...).
		Updates(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, seq uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("sequential_number = ?", seq).Delete(&entity.Student{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepository) FindMissing(ctx context.Context, seqs []uuid.UUID) ([]uuid.UUID, error) {
	return findMissing(r.db.WithContext(ctx), seqs)
}

// BulkDelete removes every listed student or none of them. When some are
// missing it returns their sequential numbers and deletes nothing.
func (r *studentRepository) BulkDelete(ctx context.Context, seqs []uuid.UUID) (int64, []uuid.UUID, error) {
	var deleted int64
	var missing []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if missing, err = findMissing(tx, seqs); err != nil || len(missing) > 0 {
			return err
		}

		result := tx.Where("sequential_number IN ?", seqs).Delete(&entity.Student{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, nil, err
	}
	return deleted, missing, nil
}

func (r *studentRepository) Totals(ctx context.Context) (*Totals, error) {
	var totals Totals
	if err := r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Select("COUNT(*) AS count, " +
			"COALESCE(SUM(total_fee), 0) AS total_fee, " +
			"COALESCE(SUM(paid_amount), 0) AS paid_amount, " +
			"COALESCE(SUM(remaining_amount), 0) AS remaining_amount").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

func findMissing(db *gorm.DB, seqs []uuid.UUID) ([]uuid.UUID, error) {
	if len(seqs) == 0 {
		return nil, nil
	}

	var found []uuid.UUID
	if err := db.Model(&entity.Student{}).
		Where("sequential_number IN ?", seqs).
		Pluck("sequential_number", &found).Error; err != nil {
		return nil, err
	}

	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, seq := range found {
		existing[seq] = struct{}{}
	}
	var missing []uuid.UUID
	for _, seq := range seqs {
		if _, ok := existing[seq]; !ok {
			missing = append(missing, seq)
		}
	}
	return missing, nil
}
