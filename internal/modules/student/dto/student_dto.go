package dto

import (
	"time"

	"github.com/google/uuid"
	"monkid.com/backoffice/internal/entity"
)

const DateLayout = "2006-01-02"

// StudentInput carries the editable columns and is the body of PUT and PATCH.
// Omitted fields keep their current value. student_id and sequential_number
// have no field here, so update payloads carrying them are ignored.
type StudentInput struct {
	Name               *string  `json:"name" binding:"omitempty,max=255"`
	Birthdate          *string  `json:"birthdate" binding:"omitempty,datetime=2006-01-02"`
	Classroom          *string  `json:"classroom" binding:"omitempty,max=50"`
	BaseFee            *float64 `json:"base_fee" binding:"omitempty,gte=0"`
	DiscountPercentage *float64 `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
	FinalFee           *float64 `json:"final_fee" binding:"omitempty,gte=0"`
	UtilitiesFee       *float64 `json:"utilities_fee" binding:"omitempty,gte=0"`
	PT                 *float64 `json:"pt" binding:"omitempty,gte=0"`
	PM                 *float64 `json:"pm" binding:"omitempty,gte=0"`
	MealFee            *float64 `json:"meal_fee" binding:"omitempty,gte=0"`
	EngFee             *float64 `json:"eng_fee" binding:"omitempty,gte=0"`
	SkillFee           *float64 `json:"skill_fee" binding:"omitempty,gte=0"`
	StudentFund        *float64 `json:"student_fund" binding:"omitempty,gte=0"`
	FacilityFee        *float64 `json:"facility_fee" binding:"omitempty,gte=0"`
	TotalFee           *float64 `json:"total_fee" binding:"omitempty,gte=0"`
	PaidAmount         *float64 `json:"paid_amount" binding:"omitempty,gte=0"`
	RemainingAmount    *float64 `json:"remaining_amount" binding:"omitempty,gte=0"`
}

// CreateStudentInput adds the optional explicit student_id accepted on create.
type CreateStudentInput struct {
	StudentID *int64 `json:"student_id" binding:"omitempty,min=1"`
	StudentInput
}

type StudentResponse struct {
	StudentID          int64     `json:"student_id"`
	SequentialNumber   uuid.UUID `json:"sequential_number"`
	Name               *string   `json:"name"`
	Birthdate          *string   `json:"birthdate"`
	Classroom          *string   `json:"classroom"`
	BaseFee            float64   `json:"base_fee"`
	DiscountPercentage float64   `json:"discount_percentage"`
	FinalFee           float64   `json:"final_fee"`
	UtilitiesFee       float64   `json:"utilities_fee"`
	PT                 float64   `json:"pt"`
	PM                 float64   `json:"pm"`
	MealFee            float64   `json:"meal_fee"`
	EngFee             float64   `json:"eng_fee"`
	SkillFee           float64   `json:"skill_fee"`
	StudentFund        float64   `json:"student_fund"`
	FacilityFee        float64   `json:"facility_fee"`
	TotalFee           float64   `json:"total_fee"`
	PaidAmount         float64   `json:"paid_amount"`
	RemainingAmount    float64   `json:"remaining_amount"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewStudentResponse(s *entity.Student) StudentResponse {
	res := StudentResponse{
		StudentID:          s.StudentID,
		SequentialNumber:   s.SequentialNumber,
		Name:               s.Name,
		Classroom:          s.Classroom,
		BaseFee:            s.BaseFee,
		DiscountPercentage: s.DiscountPercentage,
		FinalFee:           s.FinalFee,
		UtilitiesFee:       s.UtilitiesFee,
		PT:                 s.PT,
		PM:                 s.PM,
		MealFee:            s.MealFee,
		EngFee:             s.EngFee,
		SkillFee:           s.SkillFee,
		StudentFund:        s.StudentFund,
		FacilityFee:        s.FacilityFee,
		TotalFee:           s.TotalFee,
		PaidAmount:         s.PaidAmount,
		RemainingAmount:    s.RemainingAmount,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.Birthdate != nil {
		formatted := time.Time(*s.Birthdate).Format(DateLayout)
		res.Birthdate = &formatted
	}
	return res
}

// StudentFeesResponse is the fee breakdown served by /students/{seq}/fees/.
type StudentFeesResponse struct {
	StudentID          int64   `json:"student_id"`
	Name               *string `json:"name"`
	BaseFee            float64 `json:"base_fee"`
	DiscountPercentage float64 `json:"discount_percentage"`
	FinalFee           float64 `json:"final_fee"`
	TotalFee           float64 `json:"total_fee"`
	PaidAmount         float64 `json:"paid_amount"`
	RemainingAmount    float64 `json:"remaining_amount"`
}

func NewStudentFeesResponse(s *entity.Student) StudentFeesResponse {
	return StudentFeesResponse{
		StudentID:          s.StudentID,
		Name:               s.Name,
		BaseFee:            s.BaseFee,
		DiscountPercentage: s.DiscountPercentage,
		FinalFee:           s.FinalFee,
		TotalFee:           s.TotalFee,
		PaidAmount:         s.PaidAmount,
		RemainingAmount:    s.RemainingAmount,
	}
}
