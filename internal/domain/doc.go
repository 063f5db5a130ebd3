// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (state snapshots, credentials, outcomes) and contracts
// (verifier, durable storage, presentation hooks) only.
package domain
