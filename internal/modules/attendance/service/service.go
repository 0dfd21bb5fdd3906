package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/attendance/dto"
	"monkid.com/backoffice/internal/modules/attendance/repository"
	teacherRepo "monkid.com/backoffice/internal/modules/teacher/repository"
	"monkid.com/backoffice/pkg/apperror"
)

type AttendanceService interface {
	Save(ctx context.Context, input dto.AttendanceInput) (*dto.AttendanceResponse, error)
	Get(ctx context.Context, teacherID uuid.UUID, year, month int) (*dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	teachers teacherRepo.TeacherRepository
}

func NewAttendanceService(repo repository.AttendanceRepository, teachers teacherRepo.TeacherRepository) AttendanceService {
	return &attendanceService{
		repo:     repo,
		teachers: teachers,
	}
}

// Save creates or updates the record for the teacher and month in the input.
func (s *attendanceService) Save(ctx context.Context, input dto.AttendanceInput) (*dto.AttendanceResponse, error) {
	teacherID, err := uuid.Parse(input.TeacherID)
	if err != nil {
		return nil, apperror.NewValidationError("teacher_id", "must be a valid UUID")
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	record, err := s.repo.FindByMonth(ctx, teacherID, input.Year, input.Month)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = &entity.TeacherAttendance{TeacherID: teacherID, Year: input.Year, Month: input.Month}
	} else if err != nil {
		return nil, err
	}

	lastDay := daysIn(input.Year, input.Month)
	fields := map[string][]string{}
	assign := func(field string, dst *[]int, days []int) {
		if days == nil {
			return
		}
		normalized, bad, ok := normalizeDays(days, lastDay)
		if !ok {
			fields[field] = append(fields[field], fmt.Sprintf("day %d is not in %04d-%02d", bad, input.Year, input.Month))
			return
		}
		*dst = normalized
	}

	var full, half, absent, extra []int = record.FullDays, record.HalfDays, record.AbsentDays, record.ExtraDays
	assign("full_days", &full, input.FullDays)
	assign("half_days", &half, input.HalfDays)
	assign("absent_days", &absent, input.AbsentDays)
	assign("extra_days", &extra, input.ExtraDays)
	if len(fields) > 0 {
		return nil, &apperror.ValidationError{Fields: fields}
	}

	record.FullDays = orEmpty(full)
	record.HalfDays = orEmpty(half)
	record.AbsentDays = orEmpty(absent)
	record.ExtraDays = orEmpty(extra)
	record.UpdatedAt = time.Now()
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	saved, err := s.repo.FindByMonth(ctx, teacherID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	log.Printf("saved attendance for teacher %s %04d-%02d", teacherID, input.Year, input.Month)
	res := dto.NewAttendanceResponse(saved, ComputeTotals(saved))
	return &res, nil
}

func (s *attendanceService) Get(ctx context.Context, teacherID uuid.UUID, year, month int) (*dto.AttendanceResponse, error) {
	if month < 1 || month > 12 {
		return nil, apperror.NewValidationError("month", "ensure this value is between 1 and 12")
	}

	record, err := s.repo.FindByMonth(ctx, teacherID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attendance record not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	res := dto.NewAttendanceResponse(record, ComputeTotals(record))
	return &res, nil
}

// ComputeTotals counts weekday attendance as teaching days and weekend work
// as extra days. Absences on weekends are not counted.
func ComputeTotals(a *entity.TeacherAttendance) dto.Totals {
	var totals dto.Totals
	weekday := func(day int) time.Weekday {
		return time.Date(a.Year, time.Month(a.Month), day, 0, 0, 0, 0, time.UTC).Weekday()
	}

	for _, day := range a.FullDays {
		switch wd := weekday(day); {
		case isWorkday(wd):
			totals.TeachingDays++
		case wd == time.Saturday:
			totals.ExtraTeachingDays++
		}
	}
	for _, day := range a.HalfDays {
		switch wd := weekday(day); {
		case isWorkday(wd):
			totals.TeachingDays += 0.5
		case wd == time.Saturday:
			totals.ExtraTeachingDays += 0.5
		}
	}
	for _, day := range a.AbsentDays {
		if isWorkday(weekday(day)) {
			totals.AbsenceDays++
		}
	}
	for _, day := range a.ExtraDays {
		if wd := weekday(day); wd == time.Saturday || wd == time.Sunday {
			totals.ExtraTeachingDays++
		}
	}
	return totals
}

func isWorkday(wd time.Weekday) bool {
	return wd >= time.Monday && wd <= time.Friday
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// normalizeDays sorts and deduplicates days. ok is false when a day falls
// outside 1..lastDay, and bad is the first such day.
func normalizeDays(days []int, lastDay int) (normalized []int, bad int, ok bool) {
	for _, day := range days {
		if day < 1 || day > lastDay {
			return nil, day, false
		}
	}
	normalized = slices.Clone(days)
	slices.Sort(normalized)
	return slices.Compact(normalized), 0, true
}

func orEmpty(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}
