package permission

import "monkid.com/backoffice/internal/entity"

// Action names a resource operation checked by a Policy.
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionSummary       Action = "summary"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
	ActionBulkDelete    Action = "bulk_delete"
)

// IsRead reports whether the action only reads data.
func (a Action) IsRead() bool {
	switch a {
	case ActionList, ActionRetrieve, ActionSummary:
		return true
	}
	return false
}

// Policy decides whether a caller may perform an action. A nil user is an
// anonymous caller.
type Policy interface {
	Name() string
	Allows(user *entity.User, action Action) bool
}

type teacherOrAdmin struct{}

// TeacherOrAdmin lets anyone read and lets teachers, admins and superusers write.
func TeacherOrAdmin() Policy { return teacherOrAdmin{} }

func (teacherOrAdmin) Name() string { return "teacher_or_admin" }

func (teacherOrAdmin) Allows(user *entity.User, action Action) bool {
	if action.IsRead() {
		return true
	}
	if !authenticated(user) {
		return false
	}
	return user.IsSuperuser || user.IsAdmin || user.IsTeacher
}

type adminOrReadOnly struct{}

// AdminOrReadOnly lets anyone read and lets admins and superusers write.
func AdminOrReadOnly() Policy { return adminOrReadOnly{} }

func (adminOrReadOnly) Name() string { return "admin_or_read_only" }

func (adminOrReadOnly) Allows(user *entity.User, action Action) bool {
	if action.IsRead() {
		return true
	}
	if !authenticated(user) {
		return false
	}
	return user.IsSuperuser || user.IsAdmin
}

func authenticated(user *entity.User) bool {
	return user != nil && user.IsActive
}
