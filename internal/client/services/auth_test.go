package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	token     string
	loginErr  error
	loggedOut bool
}

func (f *fakeSession) Login(_ context.Context, token string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = token
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.loggedOut = true
	f.token = ""
	return nil
}

func TestAuthService_Login(t *testing.T) {
	fc := &fakeClient{LoginToken: "tok"}
	sess := &fakeSession{}
	svc := NewAuthService(fc, sess)
	password := []byte("secret")

	require.NoError(t, svc.Login(context.Background(), " admin@rent.example ", password))
	assert.Equal(t, "tok", sess.token)
	assert.Equal(t, "admin@rent.example", fc.LastEmail)
	assert.Equal(t, "secret", fc.LastPass)
	assert.Equal(t, make([]byte, 6), password, "password buffer wiped")
}

func TestAuthService_LoginValidation(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeSession{})

	require.ErrorIs(t, svc.Login(context.Background(), "  ", []byte("x")), common.ErrorValidation)
	require.ErrorIs(t, svc.Login(context.Background(), "a@b", nil), common.ErrorValidation)
	assert.Empty(t, fc.Calls())
}

func TestAuthService_LoginErrors(t *testing.T) {
	boom := errors.New("boom")

	svc := NewAuthService(&fakeClient{LoginErr: boom}, &fakeSession{})
	require.ErrorIs(t, svc.Login(context.Background(), "a@b", []byte("x")), boom)

	sess := &fakeSession{loginErr: boom}
	svc = NewAuthService(&fakeClient{LoginToken: "tok"}, sess)
	require.ErrorIs(t, svc.Login(context.Background(), "a@b", []byte("x")), boom)
	assert.Empty(t, sess.token)
}

func TestAuthService_Logout(t *testing.T) {
	sess := &fakeSession{token: "tok"}
	require.NoError(t, NewAuthService(&fakeClient{}, sess).Logout(context.Background()))
	assert.True(t, sess.loggedOut)
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		confirm string
		wantErr error
		sent    bool
	}{
		{"ok", "old", "newpassword", "newpassword", nil, true},
		{"mismatch", "old", "newpassword", "newpassw0rd", common.ErrPasswordMismatch, false},
		{"too short", "old", "short", "short", common.ErrPasswordTooShort, false},
		{"missing current", "", "newpassword", "newpassword", common.ErrorValidation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := NewAuthService(fc, &fakeSession{})

			err := svc.ChangePassword(context.Background(), []byte(tt.current), []byte(tt.next), []byte(tt.confirm))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.sent {
				assert.Equal(t, []string{"ChangePassword"}, fc.Calls())
				assert.Equal(t, tt.current, fc.LastCurrent)
				assert.Equal(t, tt.next, fc.LastNext)
			} else {
				assert.Empty(t, fc.Calls())
			}
		})
	}
}
