// Package client contains the console's building blocks for talking to the
// marketplace backend.
//
// # Overview
//
//  1. A transport-agnostic API contract (the Client interface) covering
//     admin auth, dashboard counters, users, properties, landlord
//     verification and report moderation.
//  2. A JSON/HTTP implementation (HTTPClient) that reads the bearer token
//     from the injected Session on each request, tags requests with an
//     X-Request-ID, and invalidates the session on a 401 answer.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and embedded goose migrations.
//
// # Error Handling
//
// Failures map onto sentinels matched with errors.Is: ErrUnavailable for
// transport errors, ErrUnauthorized (401), ErrForbidden (403), ErrNotFound
// (404). Every non-2xx answer is an *APIError carrying the server message,
// which UserMessage turns into the text shown to the admin. Nothing is
// retried automatically.
package client
