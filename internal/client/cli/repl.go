package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/screens"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	sessionExpired() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Properties(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Reports(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: dashboard, users, properties, verify, reports, passwd, logout, help, exit\n" +
		"Type a command without arguments to list it; e.g. 'users role landlord', 'reports show <id>'."
)

// runREPL starts a simple read-eval-print loop for the admin console.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. The loop exits on EOF, on ctx cancellation, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           show available commands
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - dashboard      platform totals
//	  - users ...      user management
//	  - properties ... property management
//	  - verify ...     landlord document verification
//	  - reports ...    report moderation
//	  - passwd         change the admin password
//	  - logout         log out
//	  - exit | quit    leave the program
//
// Errors returned by command handlers are printed as a one-line message and
// the loop continues. When the server rejected the session the user is asked
// to log in again before the next command.
//
// The reader is shared with the input helpers so prompts issued by a
// command (passwords, confirmations) consume the following lines.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if a.sessionExpired() {
			printlnFn("Session expired, please log in again.")
			_ = a.Login(ctx)
		}

		printlnFn(fmt.Sprintf("admin %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isCommand(cmd) {
				printlnFn("Please log in first.")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			err = a.Logout(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)
		case "dashboard":
			err = a.Dashboard(ctx)
		case "users":
			err = a.Users(ctx, args)
		case "properties":
			err = a.Properties(ctx, args)
		case "verify":
			err = a.Verify(ctx, args)
		case "reports":
			err = a.Reports(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn(errorMessage(err))
		}
	}
}

func isCommand(cmd string) bool {
	switch cmd {
	case "logout", "passwd", "dashboard", "users", "properties", "verify", "reports":
		return true
	}
	return false
}

func errorMessage(err error) string {
	var u usageError
	switch {
	case errors.As(err, &u):
		return err.Error()
	case errors.Is(err, screens.ErrCanceled):
		return "Canceled."
	default:
		return "Error: " + client.UserMessage(err)
	}
}
