// Package app wires application dependencies for the CLI.
//
// It loads Config (defaults, config.yaml, .env, environment), builds the
// dispatch queue, durable store, services and HTTP client from it, and exposes
// them via Wire. App layers the form-level flows the commands share on top:
// validation, the session transition, and the task refresh that follows a
// successful login.
package app
