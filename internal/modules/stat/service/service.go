package service

import (
	"context"

	"monkid.com/backoffice/internal/modules/stat/dto"
	studentRepo "monkid.com/backoffice/internal/modules/student/repository"
	teacherRepo "monkid.com/backoffice/internal/modules/teacher/repository"
	userRepo "monkid.com/backoffice/internal/modules/user/repository"
)

type StatService interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
}

type statService struct {
	userRepo    userRepo.UserRepository
	studentRepo studentRepo.StudentRepository
	teacherRepo teacherRepo.TeacherRepository
}

func NewStatService(users userRepo.UserRepository, students studentRepo.StudentRepository, teachers teacherRepo.TeacherRepository) StatService {
	return &statService{
		userRepo:    users,
		studentRepo: students,
		teacherRepo: teachers,
	}
}

func (s *statService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teacherRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.OverviewResponse{
		TotalUsers: users,
		Students: dto.StudentStats{
			Count:           students.Count,
			TotalFee:        students.TotalFee,
			PaidAmount:      students.PaidAmount,
			RemainingAmount: students.RemainingAmount,
		},
		Teachers: dto.TeacherStats{
			Count:       teachers.Count,
			TotalSalary: teachers.TotalSalary,
			PaidAmount:  teachers.PaidAmount,
		},
	}, nil
}
