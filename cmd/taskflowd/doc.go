// Package main runs the development TaskFlow API used by the taskflow CLI
// during development and tests. See package authserver for the HTTP API.
//
// Behaviour
//
//   - Accounts persist in a SQLite file (default taskflowd.db); ":memory:"
//     keeps them for the process lifetime only.
//   - Bearer tokens and task lists are held in memory and lost on exit.
//   - Responses are JSON. Non-2xx statuses carry {"message": "..."}.
//   - A structured access log records method, path, remote, status, bytes and
//     duration for each request.
//   - GET /metrics serves Prometheus counters.
//   - The default listen address is :8080.
//
// Settings come from TASKFLOWD_* environment variables and are overridden by
// flags.
package main
