package store

// BackendType selects the persistence implementation.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// CleanupFunc releases resources held by a store.
type CleanupFunc func() error

// Result contains the store instance and its cleanup function.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}
