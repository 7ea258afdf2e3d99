package auth

import "github.com/amanda-parkwaylabs/task-manager/internal/server/models"

// OwnershipFilter narrows task access to what an identity is entitled to.
// Admins see and change every task; users only the tasks they created.
type OwnershipFilter struct{}

// Scope returns the task filter for id performing op. The store applies it
// inside the same statement as the read or mutation, so a task outside the
// scope behaves exactly like a missing one.
//
// Whether a user reaches update/delete at all is decided by the Policy; when
// it lets them through (MutationOwnerOrAdmin) this scope confines them. The
// rule is currently the same for every operation.
func (OwnershipFilter) Scope(id Identity, op Operation) models.TaskFilter {
	if id.Role == RoleAdmin {
		return models.TaskFilter{}
	}
	return models.TaskFilter{CreatedBy: id.SubjectID}
}
