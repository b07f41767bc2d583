package kvstore

// Store is the persistent key/value interface backing the configuration
// store. One fixed key per top-level configuration field; last writer wins.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores a value. Writes are independent per key; a failed write
	// for one key never affects another.
	Set(key, value string) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns all stored keys.
	Keys() ([]string, error)
	Close() error
}
