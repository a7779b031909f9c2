package cli

import (
	"context"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for the admin email and password and signs in. The token
// is persisted by the session store, so a later start skips the prompt.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		a.logger.Info(ctx, "login unsuccessful", "error", err)
		a.println("Login failed:", client.UserMessage(err))
		return err
	}
	a.expired.Store(false)
	a.println("Logged in.")
	return nil
}

// Logout removes the persisted token and closes the open report.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.reports.CloseDetail()
	a.reports.SetVisible(false)
	a.println("Logged out.")
	return nil
}

// ChangePassword asks for the current password and the new one twice.
// Mismatch and short passwords are reported before anything is sent.
func (a *App) ChangePassword(ctx context.Context) error {
	prompts := []string{"Current password", "New password", "Confirm new password"}
	pw := make([][]byte, 0, len(prompts))
	defer func() {
		for _, p := range pw {
			common.WipeByteArray(p)
		}
	}()

	for _, prompt := range prompts {
		p, err := getPassword(prompt, a.out)
		if err != nil {
			return err
		}
		pw = append(pw, p)
	}

	if err := a.authService.ChangePassword(ctx, pw[0], pw[1], pw[2]); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}
