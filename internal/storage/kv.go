package storage

// KV is the durable key-value capability injected into the stores. Keys are
// namespaced per identity by the callers; no two identities ever share a
// slot.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
