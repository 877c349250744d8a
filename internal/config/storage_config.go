package config

// StorageConfig defines configuration for the version store
type StorageConfig struct {
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		DatabasePath: DefaultStorageDatabasePath,
	}
}
