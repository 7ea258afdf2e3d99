// Package auth implements the request-guarding core of the task manager:
// password hashing, bearer token issuance and verification, the role policy
// table and the ownership scoping applied to task access.
package auth

import (
	"context"
	"fmt"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
)

// Role is the coarse permission level carried by a user and their tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates s as a Role. An empty string yields RoleUser, the
// default for new accounts.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", common.ErrorValidation, s)
	}
}

// Identity is the authenticated principal of a single request.
type Identity struct {
	SubjectID string
	Role      Role
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity bound by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
