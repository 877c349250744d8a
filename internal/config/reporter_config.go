package config

// ReporterConfig defines configuration for generating diff reports
type ReporterConfig struct {
	OutputDir          string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	RefineReplacements bool   `json:"refine_replacements" yaml:"refine_replacements"`
	ReportTitle        string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputDir:          DefaultReporterOutputDir,
		RefineReplacements: true,
		ReportTitle:        DefaultReporterReportTitle,
	}
}
