package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/student/dto"
	"monkid.com/backoffice/internal/modules/student/repository"
	"monkid.com/backoffice/pkg/apperror"
	commonDto "monkid.com/backoffice/pkg/dto"
	"monkid.com/backoffice/pkg/sanitize"
)

var Ordering = commonDto.Ordering{
	Allowed: map[string]string{
		"student_id": "student_id",
		"name":       "name",
		"classroom":  "classroom",
		"base_fee":   "base_fee",
		"total_fee":  "total_fee",
	},
	Default: "student_id",
}

type StudentService interface {
	List(ctx context.Context, q commonDto.PageQuery) ([]dto.StudentResponse, int64, error)
	Get(ctx context.Context, seq uuid.UUID) (*dto.StudentResponse, error)
	Fees(ctx context.Context, seq uuid.UUID) (*dto.StudentFeesResponse, error)
	Create(ctx context.Context, input dto.CreateStudentInput) (*dto.StudentResponse, error)
	Update(ctx context.Context, seq uuid.UUID, input dto.StudentInput) (*dto.StudentResponse, error)
	Delete(ctx context.Context, seq uuid.UUID) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

type studentService struct {
	repo    repository.StudentRepository
	cleaner *sanitize.Cleaner
}

func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{
		repo:    repo,
		cleaner: sanitize.New(),
	}
}

func (s *studentService) List(ctx context.Context, q commonDto.PageQuery) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.List(ctx, Ordering.Clause(q.Ordering), q.Offset(), q.Size)
	if err != nil {
		return nil, 0, err
	}

	res := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		res = append(res, dto.NewStudentResponse(student))
	}
	return res, total, nil
}

func (s *studentService) Get(ctx context.Context, seq uuid.UUID) (*dto.StudentResponse, error) {
	student, err := s.find(ctx, seq)
	if err != nil {
		return nil, err
	}
	res := dto.NewStudentResponse(student)
	return &res, nil
}

func (s *studentService) Fees(ctx context.Context, seq uuid.UUID) (*dto.StudentFeesResponse, error) {
	student, err := s.find(ctx, seq)
	if err != nil {
		return nil, err
	}
	res := dto.NewStudentFeesResponse(student)
	return &res, nil
}

func (s *studentService) Create(ctx context.Context, input dto.CreateStudentInput) (*dto.StudentResponse, error) {
	student := &entity.Student{}
	if err := s.apply(student, input.StudentInput); err != nil {
		return nil, err
	}

	var err error
	if input.StudentID != nil {
		if *input.StudentID < 1 {
			return nil, apperror.NewValidationError("student_id", "ensure this value is greater than or equal to 1")
		}
		student.StudentID = *input.StudentID
		err = s.repo.Create(ctx, student)
	} else {
		err = s.repo.CreateWithNextID(ctx, student)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewValidationError("student_id", "student with this student id already exists")
		}
		return nil, err
	}

	log.Printf("created student %d (%s)", student.StudentID, student.SequentialNumber)
	res := dto.NewStudentResponse(student)
	return &res, nil
}

// Update applies a full or partial update. Fields missing from the input are kept.
func (s *studentService) Update(ctx context.Context, seq uuid.UUID, input dto.StudentInput) (*dto.StudentResponse, error) {
	student, err := s.find(ctx, seq)
	if err != nil {
		return nil, err
	}

	if err := s.apply(student, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}

	res := dto.NewStudentResponse(student)
	return &res, nil
}

func (s *studentService) Delete(ctx context.Context, seq uuid.UUID) error {
	if err := s.repo.Delete(ctx, seq); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("student not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *studentService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	seqs, invalid := commonDto.ParseIDs(ids)
	if len(invalid) > 0 {
		missing, err := s.repo.FindMissing(ctx, seqs)
		if err != nil {
			return 0, err
		}
		return 0, &apperror.MissingError{IDs: append(invalid, commonDto.UUIDStrings(missing)...)}
	}

	deleted, missing, err := s.repo.BulkDelete(ctx, seqs)
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		return 0, &apperror.MissingError{IDs: commonDto.UUIDStrings(missing)}
	}

	log.Printf("bulk deleted %d students", deleted)
	return deleted, nil
}

func (s *studentService) find(ctx context.Context, seq uuid.UUID) (*entity.Student, error) {
	student, err := s.repo.FindBySequentialNumber(ctx, seq)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return student, nil
}

func (s *studentService) apply(student *entity.Student, input dto.StudentInput) error {
	if input.Name != nil {
		student.Name = s.cleaner.OptionalLine(*input.Name)
	}
	if input.Classroom != nil {
		student.Classroom = s.cleaner.OptionalLine(*input.Classroom)
	}
	if input.Birthdate != nil {
		if *input.Birthdate == "" {
			student.Birthdate = nil
		} else {
			parsed, err := time.Parse(dto.DateLayout, *input.Birthdate)
			if err != nil {
				return apperror.NewValidationError("birthdate", "date has wrong format, use YYYY-MM-DD")
			}
			date := datatypes.Date(parsed)
			student.Birthdate = &date
		}
	}

	setAmount(&student.BaseFee, input.BaseFee)
	setAmount(&student.DiscountPercentage, input.DiscountPercentage)
	setAmount(&student.FinalFee, input.FinalFee)
	setAmount(&student.UtilitiesFee, input.UtilitiesFee)
	setAmount(&student.PT, input.PT)
	setAmount(&student.PM, input.PM)
	setAmount(&student.MealFee, input.MealFee)
	setAmount(&student.EngFee, input.EngFee)
	setAmount(&student.SkillFee, input.SkillFee)
	setAmount(&student.StudentFund, input.StudentFund)
	setAmount(&student.FacilityFee, input.FacilityFee)
	setAmount(&student.TotalFee, input.TotalFee)
	setAmount(&student.PaidAmount, input.PaidAmount)
	setAmount(&student.RemainingAmount, input.RemainingAmount)
	return nil
}

func setAmount(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
