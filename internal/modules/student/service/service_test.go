package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"monkid.com/backoffice/internal/modules/student/dto"
	"monkid.com/backoffice/internal/modules/student/repository"
	"monkid.com/backoffice/internal/testutil"
	"monkid.com/backoffice/pkg/apperror"
	commonDto "monkid.com/backoffice/pkg/dto"
)

func newService(t *testing.T) StudentService {
	t.Helper()
	return NewStudentService(repository.NewStudentRepository(testutil.NewDB(t)))
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i64Ptr(i int64) *int64     { return &i }

func named(name string) dto.CreateStudentInput {
	return dto.CreateStudentInput{StudentInput: dto.StudentInput{Name: strPtr(name)}}
}

func TestCreateAssignsNextStudentID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, named("An"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.StudentID)
	assert.NotEqual(t, uuid.Nil, first.SequentialNumber)

	_, err = svc.Create(ctx, dto.CreateStudentInput{StudentID: i64Ptr(41), StudentInput: dto.StudentInput{Name: strPtr("Binh")}})
	require.NoError(t, err)

	next, err := svc.Create(ctx, named("Chi"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), next.StudentID)
}

func TestCreateRejectsDuplicateStudentID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateStudentInput{StudentID: i64Ptr(7)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateStudentInput{StudentID: i64Ptr(7)})
	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "student_id")

	_, err = svc.Create(ctx, dto.CreateStudentInput{StudentID: i64Ptr(0)})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateSanitisesAndParsesBirthdate(t *testing.T) {
	svc := newService(t)

	res, err := svc.Create(context.Background(), dto.CreateStudentInput{StudentInput: dto.StudentInput{
		Name:      strPtr("  <b>Ngọc</b>   Anh "),
		Classroom: strPtr("  "),
		Birthdate: strPtr("2018-03-09"),
		BaseFee:   f64Ptr(1500000),
	}})
	require.NoError(t, err)
	require.NotNil(t, res.Name)
	assert.Equal(t, "Ngọc Anh", *res.Name)
	assert.Nil(t, res.Classroom)
	require.NotNil(t, res.Birthdate)
	assert.Equal(t, "2018-03-09", *res.Birthdate)
	assert.Equal(t, 1500000.0, res.BaseFee)
}

func TestUpdateKeepsIdentityAndOmittedFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateStudentInput{StudentInput: dto.StudentInput{Name: strPtr("An"), BaseFee: f64Ptr(100), PaidAmount: f64Ptr(40)}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.SequentialNumber, dto.StudentInput{PaidAmount: f64Ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, created.StudentID, updated.StudentID)
	assert.Equal(t, created.SequentialNumber, updated.SequentialNumber)
	assert.Equal(t, 100.0, updated.PaidAmount)
	assert.Equal(t, 100.0, updated.BaseFee)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "An", *updated.Name)

	fetched, err := svc.Get(ctx, created.SequentialNumber)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fetched.PaidAmount)

	fees, err := svc.Fees(ctx, created.SequentialNumber)
	require.NoError(t, err)
	assert.Equal(t, created.StudentID, fees.StudentID)
	assert.Equal(t, 100.0, fees.PaidAmount)
}

func TestUpdateUnknownStudent(t *testing.T) {
	svc := newService(t)

	_, err := svc.Update(context.Background(), uuid.New(), dto.StudentInput{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), apperror.ErrNotFound)
}

func TestListOrdersAndPages(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Chi", "An", "Binh"} {
		_, err := svc.Create(ctx, named(name))
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, commonDto.PageQuery{Page: 1, Size: 2, Ordering: "-student_id"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].StudentID)
	assert.Equal(t, int64(2), page[1].StudentID)

	byName, _, err := svc.List(ctx, commonDto.PageQuery{Page: 1, Size: 10, Ordering: "name"})
	require.NoError(t, err)
	assert.Equal(t, "An", *byName[0].Name)

	fallback, _, err := svc.List(ctx, commonDto.PageQuery{Page: 2, Size: 2, Ordering: "password"})
	require.NoError(t, err)
	require.Len(t, fallback, 1)
	assert.Equal(t, int64(3), fallback[0].StudentID)
}

func TestBulkDeleteIsAllOrNothing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateStudentInput{})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.CreateStudentInput{})
	require.NoError(t, err)

	ghost := uuid.New()
	_, err = svc.BulkDelete(ctx, []string{a.SequentialNumber.String(), ghost.String()})
	var missing *apperror.MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ghost.String()}, missing.IDs)

	_, err = svc.Get(ctx, a.SequentialNumber)
	require.NoError(t, err, "nothing is deleted when an id is missing")

	_, err = svc.BulkDelete(ctx, []string{"not-a-uuid", b.SequentialNumber.String()})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"not-a-uuid"}, missing.IDs)

	deleted, err := svc.BulkDelete(ctx, []string{a.SequentialNumber.String(), b.SequentialNumber.String(), a.SequentialNumber.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, total, err := svc.List(ctx, commonDto.PageQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
