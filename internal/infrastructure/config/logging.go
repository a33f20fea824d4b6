package config

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	// At debug the planner logs every probe spread of a solve
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Include caller information (file:line)
	IncludeCaller bool `mapstructure:"include_caller"`

	// Include stack traces for errors
	IncludeStacktrace bool `mapstructure:"include_stacktrace"`

	// Sampling caps repeated entries per second, so a daemon under a burst of solves
	// does not flood its log
	Sampling SamplingConfig `mapstructure:"sampling"`
}

// SamplingConfig keeps the first Initial entries with the same message each second,
// then every Thereafter-th. Zero values disable sampling.
type SamplingConfig struct {
	Initial    int `mapstructure:"initial" validate:"min=0"`
	Thereafter int `mapstructure:"thereafter" validate:"min=0"`
}

// Enabled reports whether sampling is configured
func (s SamplingConfig) Enabled() bool {
	return s.Initial > 0 && s.Thereafter > 0
}

// Encoding maps Format onto the zap encoder name
func (c LoggingConfig) Encoding() string {
	if c.Format == "text" {
		return "console"
	}
	return "json"
}
