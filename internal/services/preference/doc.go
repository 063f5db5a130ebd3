// Package preference owns the light/dark display mode.
//
// The mode is resolved once at start-up (stored value, then the ambient system
// signal, then light), written back to durable storage, and pushed to the
// presentation marker before the first render. Toggle is the only mutator.
// Storage failures are absorbed: the in-memory mode and the marker always
// reflect the latest commit even when persistence fails.
package preference
