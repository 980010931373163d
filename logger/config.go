package logger

import "github.com/kbukum/foldkit/validation"

// Accepted values of the Config fields.
var (
	Levels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	Formats = []string{FormatJSON, FormatConsole}
	Outputs = []string{"stdout", "stderr"}
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration. Failures are an INVALID_CONFIG
// error carrying one field error per bad setting.
func (c *Config) Validate() error {
	return validation.New().
		OneOf("level", c.Level, Levels...).
		OneOf("format", c.Format, Formats...).
		OneOf("output", c.Output, Outputs...).
		Err()
}
