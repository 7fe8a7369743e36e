package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. WEBSERVER_ADDR.
const EnvPrefix = "WEBSERVER"

// Config holds everything the server needs at startup.
type Config struct {
	Addr               string        `mapstructure:"addr"`
	Root               string        `mapstructure:"root"`
	ServerName         string        `mapstructure:"server_name"`
	TemplateServerName string        `mapstructure:"template_server_name"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	Log                LogConfig     `mapstructure:"log"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Default returns the default configuration. ReadTimeout is zero: idle
// clients are not timed out unless asked for.
func Default() *Config {
	return &Config{
		Addr:               ":8080",
		Root:               ".",
		ServerName:         "Jason's very own server",
		TemplateServerName: "Jason's Server",
		ReadTimeout:        0,
		ShutdownTimeout:    30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"addr":                 "addr",
	"root":                 "root",
	"server-name":          "server_name",
	"template-server-name": "template_server_name",
	"read-timeout":         "read_timeout",
	"shutdown-timeout":     "shutdown_timeout",
	"log-level":            "log.level",
	"log-format":           "log.format",
}

// RegisterFlags adds the server flags to fs with defaults taken from Default.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("addr", d.Addr, "address to listen on")
	fs.String("root", d.Root, "document root")
	fs.String("server-name", d.ServerName, "value of the Server header")
	fs.String("template-server-name", d.TemplateServerName, "replacement for the server marker in HTML files")
	fs.Duration("read-timeout", d.ReadTimeout, "deadline for reading a request (0 disables)")
	fs.Duration("shutdown-timeout", d.ShutdownTimeout, "how long shutdown waits for in-flight connections")
	fs.String("log-level", d.Log.Level, "debug, info, warn or error")
	fs.String("log-format", d.Log.Format, "console or json")
}

// Load builds a Config from, lowest precedence first: defaults, the config
// file (if path is not empty), WEBSERVER_* environment variables and flags
// that were set explicitly on fs. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("root", d.Root)
	v.SetDefault("server_name", d.ServerName)
	v.SetDefault("template_server_name", d.TemplateServerName)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, &ConfigError{Field: "addr", Message: "must not be empty"})
	}

	if info, err := os.Stat(c.Root); err != nil {
		errs = append(errs, &ConfigError{Field: "root", Message: err.Error()})
	} else if !info.IsDir() {
		errs = append(errs, &ConfigError{Field: "root", Message: "not a directory"})
	}

	if c.ReadTimeout < 0 {
		errs = append(errs, &ConfigError{Field: "read_timeout", Message: "must not be negative"})
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, &ConfigError{Field: "shutdown_timeout", Message: "must not be negative"})
	}

	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, &ConfigError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)})
	}

	return errors.Join(errs...)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
