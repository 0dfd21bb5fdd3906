package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/teacher/dto"
	"monkid.com/backoffice/internal/modules/teacher/repository"
	"monkid.com/backoffice/pkg/apperror"
	commonDto "monkid.com/backoffice/pkg/dto"
	"monkid.com/backoffice/pkg/sanitize"
)

var Ordering = commonDto.Ordering{
	Allowed: map[string]string{
		"name":         "name",
		"role":         "role",
		"base_salary":  "base_salary",
		"total_salary": "total_salary",
	},
	Default: "name",
}

type TeacherService interface {
	List(ctx context.Context, q commonDto.PageQuery) ([]dto.TeacherResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TeacherResponse, error)
	Salary(ctx context.Context, id uuid.UUID) (*dto.TeacherSalaryResponse, error)
	Create(ctx context.Context, input dto.TeacherInput) (*dto.TeacherResponse, error)
	Update(ctx context.Context, id uuid.UUID, input dto.TeacherInput, partial bool) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

type teacherService struct {
	repo    repository.TeacherRepository
	cleaner *sanitize.Cleaner
}

func NewTeacherService(repo repository.TeacherRepository) TeacherService {
	return &teacherService{
		repo:    repo,
		cleaner: sanitize.New(),
	}
}

func (s *teacherService) List(ctx context.Context, q commonDto.PageQuery) ([]dto.TeacherResponse, int64, error) {
	teachers, total, err := s.repo.List(ctx, Ordering.Clause(q.Ordering), q.Offset(), q.Size)
	if err != nil {
		return nil, 0, err
	}

	res := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		res = append(res, dto.NewTeacherResponse(teacher))
	}
	return res, total, nil
}

func (s *teacherService) Get(ctx context.Context, id uuid.UUID) (*dto.TeacherResponse, error) {
	teacher, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewTeacherResponse(teacher)
	return &res, nil
}

func (s *teacherService) Salary(ctx context.Context, id uuid.UUID) (*dto.TeacherSalaryResponse, error) {
	teacher, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewTeacherSalaryResponse(teacher)
	return &res, nil
}

func (s *teacherService) Create(ctx context.Context, input dto.TeacherInput) (*dto.TeacherResponse, error) {
	teacher := &entity.Teacher{}
	if err := s.apply(teacher, input, false); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	log.Printf("created teacher %s", teacher.ID)
	res := dto.NewTeacherResponse(teacher)
	return &res, nil
}

// Update replaces (PUT) or patches (PATCH) a teacher. Both keep fields the
// payload omits; PUT additionally requires name and role.
func (s *teacherService) Update(ctx context.Context, id uuid.UUID, input dto.TeacherInput, partial bool) (*dto.TeacherResponse, error) {
	teacher, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(teacher, input, partial); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	res := dto.NewTeacherResponse(teacher)
	return &res, nil
}

func (s *teacherService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("teacher not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *teacherService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	parsed, invalid := commonDto.ParseIDs(ids)
	if len(invalid) > 0 {
		missing, err := s.repo.FindMissing(ctx, parsed)
		if err != nil {
			return 0, err
		}
		return 0, &apperror.MissingError{IDs: append(invalid, commonDto.UUIDStrings(missing)...)}
	}

	deleted, missing, err := s.repo.BulkDelete(ctx, parsed)
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		return 0, &apperror.MissingError{IDs: commonDto.UUIDStrings(missing)}
	}

	log.Printf("bulk deleted %d teachers", deleted)
	return deleted, nil
}

func (s *teacherService) find(ctx context.Context, id uuid.UUID) (*entity.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) apply(teacher *entity.Teacher, input dto.TeacherInput, partial bool) error {
	fields := map[string][]string{}
	requireText(fields, "name", &teacher.Name, input.Name, partial, s.cleaner)
	requireText(fields, "role", &teacher.Role, input.Role, partial, s.cleaner)
	if len(fields) > 0 {
		return &apperror.ValidationError{Fields: fields}
	}

	if input.Phone != nil {
		teacher.Phone = s.cleaner.OptionalLine(*input.Phone)
	}
	if input.NewStudentsList != nil {
		teacher.NewStudentsList = s.cleaner.OptionalText(*input.NewStudentsList)
	}
	if input.Note != nil {
		teacher.Note = s.cleaner.OptionalText(*input.Note)
	}

	setAmount(&teacher.BaseSalary, input.BaseSalary)
	setAmount(&teacher.ReceivedSalary, input.ReceivedSalary)
	setAmount(&teacher.ExtraSalary, input.ExtraSalary)
	setAmount(&teacher.InsuranceSupport, input.InsuranceSupport)
	setAmount(&teacher.ResponsibilitySupport, input.ResponsibilitySupport)
	setAmount(&teacher.BreakfastSupport, input.BreakfastSupport)
	setAmount(&teacher.SkillSalary, input.SkillSalary)
	setAmount(&teacher.EnglishSalary, input.EnglishSalary)
	setAmount(&teacher.PaidAmount, input.PaidAmount)
	setAmount(&teacher.TotalSalary, input.TotalSalary)

	setCount(&teacher.TeachingDays, input.TeachingDays)
	setCount(&teacher.AbsenceDays, input.AbsenceDays)
	setCount(&teacher.ExtraTeachingDays, input.ExtraTeachingDays)
	setCount(&teacher.SkillSessions, input.SkillSessions)
	setCount(&teacher.EnglishSessions, input.EnglishSessions)
	return nil
}

// requireText writes a required text column. Full writes must carry a
// non-blank value; partial writes may omit it but not blank it.
func requireText(fields map[string][]string, name string, dst *string, src *string, partial bool, cleaner *sanitize.Cleaner) {
	if src == nil {
		if !partial {
			fields[name] = []string{"this field is required"}
		}
		return
	}
	value := cleaner.Line(*src)
	if value == "" {
		fields[name] = []string{"this field may not be blank"}
		return
	}
	*dst = value
}

func setAmount(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setCount(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
