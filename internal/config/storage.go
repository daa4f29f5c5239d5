package config

// StorageConfig holds settings for session persistence.
type StorageConfig struct {
	// Path is the badger directory. Empty keeps sessions in memory only.
	Path string

	// InMemory runs badger without touching disk. Path is ignored.
	InMemory bool
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{}
}

// Enabled reports whether sessions are persisted through badger.
func (s *StorageConfig) Enabled() bool {
	return s.InMemory || s.Path != ""
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	return nil
}
