package dto

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsPageSize(t *testing.T) {
	q := PageQuery{}.Normalize(50, 1000)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 50, q.Size)
	assert.Equal(t, 0, q.Offset())

	q = PageQuery{Page: 3, Size: 5000}.Normalize(50, 1000)
	assert.Equal(t, 1000, q.Size)
	assert.Equal(t, 2000, q.Offset())
}

func TestPaginatedResponseLinks(t *testing.T) {
	u, err := url.Parse("http://api.example.com/students/?page=2&size=10&ordering=name")
	require.NoError(t, err)

	res := NewPaginatedResponse([]int{1, 2}, 25, PageQuery{Page: 2, Size: 10}, u)
	assert.Equal(t, int64(25), res.Count)
	assert.Equal(t, 3, res.TotalPages)
	require.NotNil(t, res.Next)
	require.NotNil(t, res.Previous)
	assert.Equal(t, "http://api.example.com/students/?ordering=name&page=3&size=10", *res.Next)
	assert.Equal(t, "http://api.example.com/students/?ordering=name&size=10", *res.Previous)
}

func TestPaginatedResponseEdges(t *testing.T) {
	u, err := url.Parse("http://api.example.com/teachers/")
	require.NoError(t, err)

	empty := NewPaginatedResponse[int](nil, 0, PageQuery{Page: 1, Size: 10}, u)
	assert.NotNil(t, empty.Results)
	assert.Zero(t, empty.TotalPages)
	assert.Nil(t, empty.Next)
	assert.Nil(t, empty.Previous)

	last := NewPaginatedResponse([]int{1}, 21, PageQuery{Page: 3, Size: 10}, u)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "http://api.example.com/teachers/?page=2", *last.Previous)
}

func TestOrderingClause(t *testing.T) {
	o := Ordering{Allowed: map[string]string{"name": "name", "total": "total_fee"}, Default: "name"}

	c := o.Clause("-total")
	assert.Equal(t, "total_fee", c.Column.Name)
	assert.True(t, c.Desc)

	c = o.Clause("password; DROP TABLE students")
	assert.Equal(t, "name", c.Column.Name)
	assert.False(t, c.Desc)

	c = o.Clause("")
	assert.Equal(t, "name", c.Column.Name)
}

func TestParseIDs(t *testing.T) {
	id := uuid.New()

	ids, invalid := ParseIDs([]string{id.String(), " " + id.String() + " ", "nope"})
	assert.Equal(t, []uuid.UUID{id}, ids)
	assert.Equal(t, []string{"nope"}, invalid)
	assert.Equal(t, []string{id.String()}, UUIDStrings(ids))
}
