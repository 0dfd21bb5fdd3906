package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"monkid.com/backoffice/internal/entity"
)

var allActions = []Action{
	ActionList, ActionRetrieve, ActionSummary,
	ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy, ActionBulkDelete,
}

func TestPolicies(t *testing.T) {
	plain := &entity.User{IsActive: true}
	teacher := &entity.User{IsActive: true, IsTeacher: true}
	admin := &entity.User{IsActive: true, IsAdmin: true}
	superuser := &entity.User{IsActive: true, IsSuperuser: true}
	inactiveAdmin := &entity.User{IsActive: false, IsAdmin: true}

	tests := []struct {
		name       string
		policy     Policy
		user       *entity.User
		wantWrites bool
	}{
		{"teacher-or-admin anonymous", TeacherOrAdmin(), nil, false},
		{"teacher-or-admin plain user", TeacherOrAdmin(), plain, false},
		{"teacher-or-admin teacher", TeacherOrAdmin(), teacher, true},
		{"teacher-or-admin admin", TeacherOrAdmin(), admin, true},
		{"teacher-or-admin superuser", TeacherOrAdmin(), superuser, true},
		{"teacher-or-admin inactive admin", TeacherOrAdmin(), inactiveAdmin, false},
		{"admin-or-read-only anonymous", AdminOrReadOnly(), nil, false},
		{"admin-or-read-only plain user", AdminOrReadOnly(), plain, false},
		{"admin-or-read-only teacher", AdminOrReadOnly(), teacher, false},
		{"admin-or-read-only admin", AdminOrReadOnly(), admin, true},
		{"admin-or-read-only superuser", AdminOrReadOnly(), superuser, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, action := range allActions {
				want := action.IsRead() || tt.wantWrites
				assert.Equal(t, want, tt.policy.Allows(tt.user, action), "action %s", action)
			}
		})
	}
}

func TestActionIsRead(t *testing.T) {
	assert.True(t, ActionList.IsRead())
	assert.True(t, ActionRetrieve.IsRead())
	assert.True(t, ActionSummary.IsRead())
	assert.False(t, ActionCreate.IsRead())
	assert.False(t, ActionBulkDelete.IsRead())
	assert.False(t, Action("unknown").IsRead())
}
