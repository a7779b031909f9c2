// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed ADMIN_, with a .env file in the working
//     directory loaded first (see parseEnv).
//  3. Optional JSON or YAML file selected with -c or -config (see parseFile).
//  4. Command-line flags (see parseFlags).
//
// After loading, (*Config).Resolve derives the API base URL from the origin
// when it was not given explicitly, and the uploads base from the API base.
//
// # File schema
//
//	api_base_url: https://rent.example/api
//	uploads_base_url: s3://rent-uploads/ids
//	refresh_interval: 15s
//	request_timeout: 10s
//	session_db: console.db
//	log_level: debug
package config
