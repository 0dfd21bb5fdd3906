package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"monkid.com/backoffice/internal/entity"
)

type AttendanceRepository interface {
	FindByMonth(ctx context.Context, teacherID uuid.UUID, year, month int) (*entity.TeacherAttendance, error)
	Upsert(ctx context.Context, record *entity.TeacherAttendance) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) FindByMonth(ctx context.Context, teacherID uuid.UUID, year, month int) (*entity.TeacherAttendance, error) {
	var record entity.TeacherAttendance
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND year = ? AND month = ?", teacherID, year, month).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert writes the four day lists, replacing the row for the same teacher and
// month. The row is matched on that key, never on record.ID.
func (r *attendanceRepository) Upsert(ctx context.Context, record *entity.TeacherAttendance) error {
	row := *record
	row.ID = 0
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "teacher_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_days", "half_days", "absent_days", "extra_days", "updated_at",
		}),
	}).Create(&row).Error
}
