package cli

import (
	"context"
	"errors"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.report("Register", err)
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report("Register", err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report("Register", err)
	}
	role, err := GetSimpleText(a.reader, "Role (user or admin, empty for user)", a.out)
	if err != nil {
		return a.report("Register", err)
	}

	msg, err := a.api.Register(ctx, name, email, password, role)
	if err != nil {
		return a.report("Register", err)
	}
	a.printf("%s", msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report("Login", err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report("Login", err)
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.report("Login", err)
	}
	if token == "" {
		return a.report("Login", errors.New("server returned no token"))
	}
	a.token, a.email = token, email
	a.printf("Login successful")
	return nil
}

// Logout forgets the token. Tokens are stateless, so the server is not
// contacted; the token stays valid until it expires.
func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.token, a.email = "", ""
	a.printf("Logged out")
	return nil
}
