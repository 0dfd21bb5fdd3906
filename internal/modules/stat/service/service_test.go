package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"monkid.com/backoffice/internal/entity"
	studentRepo "monkid.com/backoffice/internal/modules/student/repository"
	teacherRepo "monkid.com/backoffice/internal/modules/teacher/repository"
	userRepo "monkid.com/backoffice/internal/modules/user/repository"
	"monkid.com/backoffice/internal/testutil"
)

func TestOverviewOnEmptyLedgers(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewStatService(userRepo.NewUserRepository(db), studentRepo.NewStudentRepository(db), teacherRepo.NewTeacherRepository(db))

	res, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.TotalUsers)
	assert.Zero(t, res.Students.Count)
	assert.Zero(t, res.Students.TotalFee)
	assert.Zero(t, res.Teachers.TotalSalary)
}

func TestOverviewSumsLedgers(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "admin@example.com", testutil.Roles{Admin: true})

	require.NoError(t, db.Create(&entity.Student{StudentID: 1, TotalFee: 1000, PaidAmount: 400, RemainingAmount: 600}).Error)
	require.NoError(t, db.Create(&entity.Student{StudentID: 2, TotalFee: 500, PaidAmount: 500}).Error)
	require.NoError(t, db.Create(&entity.Teacher{Name: "Lan", Role: "Homeroom", TotalSalary: 9000, PaidAmount: 3000}).Error)

	svc := NewStatService(userRepo.NewUserRepository(db), studentRepo.NewStudentRepository(db), teacherRepo.NewTeacherRepository(db))
	res, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.TotalUsers)
	assert.Equal(t, int64(2), res.Students.Count)
	assert.Equal(t, 1500.0, res.Students.TotalFee)
	assert.Equal(t, 900.0, res.Students.PaidAmount)
	assert.Equal(t, 600.0, res.Students.RemainingAmount)
	assert.Equal(t, int64(1), res.Teachers.Count)
	assert.Equal(t, 9000.0, res.Teachers.TotalSalary)
	assert.Equal(t, 3000.0, res.Teachers.PaidAmount)
}
