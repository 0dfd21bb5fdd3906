package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TeacherAttendance holds one teacher's marked days for a calendar month.
// Each list holds day-of-month numbers.
type TeacherAttendance struct {
	ID         uint                     `gorm:"primaryKey" json:"id"`
	TeacherID  uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_teacher_month" json:"teacher_id"`
	Teacher    Teacher                  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Year       int                      `gorm:"not null;uniqueIndex:idx_attendance_teacher_month" json:"year"`
	Month      int                      `gorm:"not null;uniqueIndex:idx_attendance_teacher_month" json:"month"`
	FullDays   datatypes.JSONSlice[int] `json:"full_days"`
	HalfDays   datatypes.JSONSlice[int] `json:"half_days"`
	AbsentDays datatypes.JSONSlice[int] `json:"absent_days"`
	ExtraDays  datatypes.JSONSlice[int] `json:"extra_days"`
	UpdatedAt  time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
}
