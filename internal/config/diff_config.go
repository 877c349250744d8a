package config

// DiffConfig defines configuration for content diffing
type DiffConfig struct {
	Granularity      string `json:"granularity,omitempty" yaml:"granularity,omitempty" validate:"omitempty,granularity"`
	MaxContentSizeMB int    `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Granularity:      DefaultDiffGranularity,
		MaxContentSizeMB: DefaultDiffMaxContentSizeMB,
	}
}
