package dto

import (
	"time"

	"github.com/google/uuid"
	"monkid.com/backoffice/internal/entity"
)

// AttendanceInput records a teacher's month. A list left out of the body keeps
// its stored value; an empty list clears it.
type AttendanceInput struct {
	TeacherID  string `json:"teacher_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=1900,max=9999"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	FullDays   []int  `json:"full_days" binding:"omitempty,dive,min=1,max=31"`
	HalfDays   []int  `json:"half_days" binding:"omitempty,dive,min=1,max=31"`
	AbsentDays []int  `json:"absent_days" binding:"omitempty,dive,min=1,max=31"`
	ExtraDays  []int  `json:"extra_days" binding:"omitempty,dive,min=1,max=31"`
}

// Totals are the counters derived from the day lists. Half days count 0.5.
type Totals struct {
	TeachingDays      float64 `json:"teaching_days"`
	AbsenceDays       int     `json:"absence_days"`
	ExtraTeachingDays float64 `json:"extra_teaching_days"`
}

type AttendanceResponse struct {
	ID         uint      `json:"id"`
	TeacherID  uuid.UUID `json:"teacher_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	FullDays   []int     `json:"full_days"`
	HalfDays   []int     `json:"half_days"`
	AbsentDays []int     `json:"absent_days"`
	ExtraDays  []int     `json:"extra_days"`
	UpdatedAt  time.Time `json:"updated_at"`
	Totals
}

func NewAttendanceResponse(a *entity.TeacherAttendance, totals Totals) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		TeacherID:  a.TeacherID,
		Year:       a.Year,
		Month:      a.Month,
		FullDays:   orEmpty(a.FullDays),
		HalfDays:   orEmpty(a.HalfDays),
		AbsentDays: orEmpty(a.AbsentDays),
		ExtraDays:  orEmpty(a.ExtraDays),
		UpdatedAt:  a.UpdatedAt,
		Totals:     totals,
	}
}

func orEmpty(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}
