package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Teacher struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                  string    `gorm:"size:255;not null" json:"name"`
	Role                  string    `gorm:"size:100;not null" json:"role"`
	Phone                 *string   `gorm:"size:20" json:"phone"`
	BaseSalary            float64   `gorm:"type:numeric(12,2);not null;default:0" json:"base_salary"`
	TeachingDays          int       `gorm:"not null;default:0" json:"teaching_days"`
	AbsenceDays           int       `gorm:"not null;default:0" json:"absence_days"`
	ReceivedSalary        float64   `gorm:"type:numeric(12,2);not null;default:0" json:"received_salary"`
	ExtraTeachingDays     int       `gorm:"not null;default:0" json:"extra_teaching_days"`
	ExtraSalary           float64   `gorm:"type:numeric(12,2);not null;default:0" json:"extra_salary"`
	InsuranceSupport      float64   `gorm:"type:numeric(12,2);not null;default:0" json:"insurance_support"`
	ResponsibilitySupport float64   `gorm:"type:numeric(12,2);not null;default:0" json:"responsibility_support"`
	BreakfastSupport      float64   `gorm:"type:numeric(12,2);not null;default:0" json:"breakfast_support"`
	SkillSessions         int       `gorm:"not null;default:0" json:"skill_sessions"`
	SkillSalary           float64   `gorm:"type:numeric(12,2);not null;default:0" json:"skill_salary"`
	EnglishSessions       int       `gorm:"not null;default:0" json:"english_sessions"`
	EnglishSalary         float64   `gorm:"type:numeric(12,2);not null;default:0" json:"english_salary"`
	NewStudentsList       *string   `gorm:"type:text" json:"new_students_list"`
	PaidAmount            float64   `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`
	TotalSalary           float64   `gorm:"type:numeric(12,2);not null;default:0" json:"total_salary"`
	Note                  *string   `gorm:"type:text" json:"note"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
