package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Student struct {
	StudentID          int64           `gorm:"primaryKey;autoIncrement:false" json:"student_id"`
	SequentialNumber   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"sequential_number"`
	Name               *string         `gorm:"size:255" json:"name"`
	Birthdate          *datatypes.Date `json:"birthdate"`
	Classroom          *string         `gorm:"size:50" json:"classroom"`
	BaseFee            float64         `gorm:"type:numeric(12,2);not null;default:0" json:"base_fee"`
	DiscountPercentage float64         `gorm:"not null;default:0" json:"discount_percentage"`
	FinalFee           float64         `gorm:"type:numeric(12,2);not null;default:0" json:"final_fee"`
	UtilitiesFee       float64         `gorm:"type:numeric(12,2);not null;default:0" json:"utilities_fee"`
	PT                 float64         `gorm:"column:pt;type:numeric(12,2);not null;default:0" json:"pt"`
	PM                 float64         `gorm:"column:pm;type:numeric(12,2);not null;default:0" json:"pm"`
	MealFee            float64         `gorm:"type:numeric(12,2);not null;default:0" json:"meal_fee"`
	EngFee             float64         `gorm:"type:numeric(12,2);not null;default:0" json:"eng_fee"`
	SkillFee           float64         `gorm:"type:numeric(12,2);not null;default:0" json:"skill_fee"`
	StudentFund        float64         `gorm:"type:numeric(12,2);not null;default:0" json:"student_fund"`
	FacilityFee        float64         `gorm:"type:numeric(12,2);not null;default:0" json:"facility_fee"`
	TotalFee           float64         `gorm:"type:numeric(12,2);not null;default:0" json:"total_fee"`
	PaidAmount         float64         `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`
	RemainingAmount    float64         `gorm:"type:numeric(12,2);not null;default:0" json:"remaining_amount"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.SequentialNumber == uuid.Nil {
		s.SequentialNumber = uuid.New()
	}
	return nil
}
