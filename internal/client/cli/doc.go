// Package cli provides the interactive admin console.
//
// It wires configuration, the persisted session, the API client and the
// screens into a line-oriented REPL. Typical flow: restore the session (or
// prompt for credentials), start the reports poller in the background, and
// execute admin commands until the user exits.
//
// Key features:
//   - Login / Logout / password change
//   - Dashboard totals
//   - Users and properties: search, filter, sort, paging, moderation
//   - Landlord identity-document verification
//   - Report moderation with auto refresh
//
// Destructive actions are confirmed through a y/N prompt driven by the
// dialog package. The REPL is started via App.Run(ctx), which blocks until
// the user exits. See App and runREPL for details.
package cli
