package dto

import (
	"time"

	"github.com/google/uuid"
	"monkid.com/backoffice/internal/entity"
)

// TeacherInput is shared by create, PUT and PATCH. name and role are
// required on create and PUT; id and created_at are not accepted.
type TeacherInput struct {
	Name                  *string  `json:"name" binding:"omitempty,max=255"`
	Role                  *string  `json:"role" binding:"omitempty,max=100"`
	Phone                 *string  `json:"phone" binding:"omitempty,max=20"`
	BaseSalary            *float64 `json:"base_salary" binding:"omitempty,gte=0"`
	TeachingDays          *int     `json:"teaching_days" binding:"omitempty,gte=0"`
	AbsenceDays           *int     `json:"absence_days" binding:"omitempty,gte=0"`
	ReceivedSalary        *float64 `json:"received_salary" binding:"omitempty,gte=0"`
	ExtraTeachingDays     *int     `json:"extra_teaching_days" binding:"omitempty,gte=0"`
	ExtraSalary           *float64 `json:"extra_salary" binding:"omitempty,gte=0"`
	InsuranceSupport      *float64 `json:"insurance_support" binding:"omitempty,gte=0"`
	ResponsibilitySupport *float64 `json:"responsibility_support" binding:"omitempty,gte=0"`
	BreakfastSupport      *float64 `json:"breakfast_support" binding:"omitempty,gte=0"`
	SkillSessions         *int     `json:"skill_sessions" binding:"omitempty,gte=0"`
	SkillSalary           *float64 `json:"skill_salary" binding:"omitempty,gte=0"`
	EnglishSessions       *int     `json:"english_sessions" binding:"omitempty,gte=0"`
	EnglishSalary         *float64 `json:"english_salary" binding:"omitempty,gte=0"`
	NewStudentsList       *string  `json:"new_students_list"`
	PaidAmount            *float64 `json:"paid_amount" binding:"omitempty,gte=0"`
	TotalSalary           *float64 `json:"total_salary" binding:"omitempty,gte=0"`
	Note                  *string  `json:"note"`
}

type TeacherResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Role                  string    `json:"role"`
	Phone                 *string   `json:"phone"`
	BaseSalary            float64   `json:"base_salary"`
	TeachingDays          int       `json:"teaching_days"`
	AbsenceDays           int       `json:"absence_days"`
	ReceivedSalary        float64   `json:"received_salary"`
	ExtraTeachingDays     int       `json:"extra_teaching_days"`
	ExtraSalary           float64   `json:"extra_salary"`
	InsuranceSupport      float64   `json:"insurance_support"`
	ResponsibilitySupport float64   `json:"responsibility_support"`
	BreakfastSupport      float64   `json:"breakfast_support"`
	SkillSessions         int       `json:"skill_sessions"`
	SkillSalary           float64   `json:"skill_salary"`
	EnglishSessions       int       `json:"english_sessions"`
	EnglishSalary         float64   `json:"english_salary"`
	NewStudentsList       *string   `json:"new_students_list"`
	PaidAmount            float64   `json:"paid_amount"`
	TotalSalary           float64   `json:"total_salary"`
	Note                  *string   `json:"note"`
	CreatedAt             time.Time `json:"created_at"`
}

func NewTeacherResponse(t *entity.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:                    t.ID,
		Name:                  t.Name,
		Role:                  t.Role,
		Phone:                 t.Phone,
		BaseSalary:            t.BaseSalary,
		TeachingDays:          t.TeachingDays,
		AbsenceDays:           t.AbsenceDays,
		ReceivedSalary:        t.ReceivedSalary,
		ExtraTeachingDays:     t.ExtraTeachingDays,
		ExtraSalary:           t.ExtraSalary,
		InsuranceSupport:      t.InsuranceSupport,
		ResponsibilitySupport: t.ResponsibilitySupport,
		BreakfastSupport:      t.BreakfastSupport,
		SkillSessions:         t.SkillSessions,
		SkillSalary:           t.SkillSalary,
		EnglishSessions:       t.EnglishSessions,
		EnglishSalary:         t.EnglishSalary,
		NewStudentsList:       t.NewStudentsList,
		PaidAmount:            t.PaidAmount,
		TotalSalary:           t.TotalSalary,
		Note:                  t.Note,
		CreatedAt:             t.CreatedAt,
	}
}

// TeacherSalaryResponse is the salary breakdown served by /teachers/{id}/salary/.
type TeacherSalaryResponse struct {
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	BaseSalary   float64 `json:"base_salary"`
	TeachingDays int     `json:"teaching_days"`
	AbsenceDays  int     `json:"absence_days"`
	ExtraSalary  float64 `json:"extra_salary"`
	TotalSalary  float64 `json:"total_salary"`
	PaidAmount   float64 `json:"paid_amount"`
}

func NewTeacherSalaryResponse(t *entity.Teacher) TeacherSalaryResponse {
	return TeacherSalaryResponse{
		Name:         t.Name,
		Role:         t.Role,
		BaseSalary:   t.BaseSalary,
		TeachingDays: t.TeachingDays,
		AbsenceDays:  t.AbsenceDays,
		ExtraSalary:  t.ExtraSalary,
		TotalSalary:  t.TotalSalary,
		PaidAmount:   t.PaidAmount,
	}
}
