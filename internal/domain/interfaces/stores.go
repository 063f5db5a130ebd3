package interfaces

// KV is durable key-value storage surviving process restarts.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
