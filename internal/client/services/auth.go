// Package services holds the console's application services: thin typed
// operations over the API client plus the client-side validation that must
// pass before a request is sent.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/common"
)

// MinPasswordLength is enforced before a change-password request.
const MinPasswordLength = 8

// SessionStore is the part of session.Store the auth service drives.
type SessionStore interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

// AuthService signs the admin in and out and changes the admin password.
// Password buffers are wiped once a call returns.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, current, next, confirm []byte) error
}

type authService struct {
	client  client.Client
	session SessionStore
}

func NewAuthService(c client.Client, s SessionStore) AuthService {
	return &authService{client: c, session: s}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.session.Login(ctx, token); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) ChangePassword(ctx context.Context, current, next, confirm []byte) error {
	defer common.WipeByteArray(current)
	defer common.WipeByteArray(next)
	defer common.WipeByteArray(confirm)

	if err := ValidatePasswordChange(current, next, confirm); err != nil {
		return err
	}
	if err := a.client.ChangePassword(ctx, string(current), string(next)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// ValidatePasswordChange runs the checks that block a change-password
// request client side.
func ValidatePasswordChange(current, next, confirm []byte) error {
	if len(current) == 0 {
		return fmt.Errorf("%w: current password is required", common.ErrorValidation)
	}
	if string(next) != string(confirm) {
		return common.ErrPasswordMismatch
	}
	if len([]rune(string(next))) < MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	return nil
}
