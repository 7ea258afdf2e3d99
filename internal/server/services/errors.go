// Package services contains the server-side business logic: account
// registration and login, and ownership-scoped task operations. Errors
// returned from this package are safe to show to clients; raw storage
// failures are logged here and replaced with common.ErrStoreUnavailable.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
)

var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", common.ErrorNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	ErrTaskNotFound       = fmt.Errorf("%w: task not found", common.ErrorNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", common.ErrAlreadyExists)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

// storeError logs an unexpected repository failure and hides it behind
// ErrStoreUnavailable. Context cancellation is passed through unchanged.
func storeError(ctx context.Context, log logging.Logger, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	log.Error(ctx, "store failure", "op", op, "error", err)
	return common.ErrStoreUnavailable
}
