package auth

import (
	"fmt"
	"slices"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
)

// Operation names a guarded action.
type Operation string

const (
	OpTaskCreate Operation = "task.create"
	OpTaskList   Operation = "task.list"
	OpTaskUpdate Operation = "task.update"
	OpTaskDelete Operation = "task.delete"
)

// MutationPolicy decides who may update or delete tasks.
//
// MutationAdminOnly gates update/delete behind the admin role; an ordinary
// user is refused even for tasks they created. MutationOwnerOrAdmin lets
// users mutate, and the OwnershipFilter confines them to their own tasks.
type MutationPolicy string

const (
	MutationAdminOnly    MutationPolicy = "admin-only"
	MutationOwnerOrAdmin MutationPolicy = "owner-or-admin"
)

// ParseMutationPolicy validates s. An empty string yields MutationAdminOnly.
func ParseMutationPolicy(s string) (MutationPolicy, error) {
	switch MutationPolicy(s) {
	case "", MutationAdminOnly:
		return MutationAdminOnly, nil
	case MutationOwnerOrAdmin:
		return MutationOwnerOrAdmin, nil
	default:
		return "", fmt.Errorf("unknown mutation policy %q", s)
	}
}

// Policy maps each guarded operation to the roles allowed to perform it.
// It is built once at startup and only read afterwards.
type Policy map[Operation][]Role

// NewPolicy returns the role table for the given mutation policy.
func NewPolicy(mp MutationPolicy) Policy {
	mutators := []Role{RoleAdmin}
	if mp == MutationOwnerOrAdmin {
		mutators = []Role{RoleAdmin, RoleUser}
	}
	return Policy{
		OpTaskCreate: {RoleAdmin, RoleUser},
		OpTaskList:   {RoleAdmin, RoleUser},
		OpTaskUpdate: mutators,
		OpTaskDelete: mutators,
	}
}

// Allows reports whether role may perform op. Operations missing from the
// table are denied.
func (p Policy) Allows(op Operation, role Role) bool {
	return slices.Contains(p[op], role)
}

// Authorize returns common.ErrorForbidden unless id's role may perform op.
func (p Policy) Authorize(id Identity, op Operation) error {
	if !p.Allows(op, id.Role) {
		return common.ErrorForbidden
	}
	return nil
}
