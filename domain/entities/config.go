package entities

import "time"

// Panel variants.
const (
	PanelVariantLog      = "log"
	PanelVariantResponse = "response"
)

// Config holds the plugin settings. Zero-valued fields in a config file keep
// the defaults from DefaultConfig.
type Config struct {
	// ListenAddress is the interface the listener binds; loopback only.
	ListenAddress string `yaml:"listen_address" json:"listen_address" validate:"required,ip,loopback"`

	// Port is the listener TCP port.
	Port int `yaml:"port" json:"port" validate:"min=1,max=65535"`

	// LogCapacity bounds the panel activity log.
	LogCapacity int `yaml:"log_capacity" json:"log_capacity" validate:"min=1"`

	// MaxRequestBytes bounds the execute request body.
	MaxRequestBytes int64 `yaml:"max_request_bytes" json:"max_request_bytes" validate:"min=1"`

	// MaxPrintBytes bounds captured print() output per evaluation.
	MaxPrintBytes int `yaml:"max_print_bytes" json:"max_print_bytes" validate:"min=0"`

	// EvalTimeout cancels evaluation after the given duration; 0 disables it.
	EvalTimeout time.Duration `yaml:"eval_timeout" json:"eval_timeout" validate:"min=0"`

	// ShutdownTimeout bounds listener shutdown on unregister.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" validate:"min=0"`

	// LogLevel is the slog verbosity.
	LogLevel string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`

	// PanelVariant selects where Run Script writes its result.
	PanelVariant string `yaml:"panel_variant" json:"panel_variant" validate:"oneof=log response"`
}

// Defaults.
const (
	DefaultListenAddress   = "127.0.0.1"
	DefaultPort            = 8765
	DefaultLogCapacity     = 50
	DefaultMaxRequestBytes = 1 << 20
	DefaultMaxPrintBytes   = 64 << 10
	DefaultShutdownTimeout = 5 * time.Second
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddress:   DefaultListenAddress,
		Port:            DefaultPort,
		LogCapacity:     DefaultLogCapacity,
		MaxRequestBytes: DefaultMaxRequestBytes,
		MaxPrintBytes:   DefaultMaxPrintBytes,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        "info",
		PanelVariant:    PanelVariantLog,
	}
}

// ConfigOption is a functional option for adjusting a Config.
type ConfigOption func(*Config)

// WithPort overrides the listener port.
func WithPort(port int) ConfigOption {
	return func(c *Config) {
		c.Port = port
	}
}

// WithEvalTimeout sets the evaluation timeout.
func WithEvalTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		if d >= 0 {
			c.EvalTimeout = d
		}
	}
}

// WithPanelVariant selects the panel variant.
func WithPanelVariant(variant string) ConfigOption {
	return func(c *Config) {
		c.PanelVariant = variant
	}
}

// NewConfig returns DefaultConfig with the given options applied.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
