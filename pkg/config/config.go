// Package config builds the sockstat configuration from defaults, an
// optional config file, SOCKSTAT_* environment variables and command-line
// overrides, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AeroNotix/sockstat/pkg/logging"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/prometheus/procfs"
	"github.com/spf13/viper"
)

// Keys understood in config files and, upper-cased with the SOCKSTAT_
// prefix, in the environment.
const (
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
	KeyLogMaxSize    = "log_max_size"
	KeyLogMaxBackups = "log_max_backups"
	KeyLogMaxAge     = "log_max_age"
	KeyProcRoot      = "proc_root"
	KeyJSON          = "json"
	KeyDetailed      = "detailed"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SOCKSTAT"

// ConfigName is the base name looked up in the home directory.
const ConfigName = ".sockstat"

// ErrInvalidLogLevel is returned by Validate for a non-canonical level name.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config is the resolved configuration of one invocation.
type Config struct {
	// LogLevel is the minimum level name (DEBUG, INFO, WARNING, ERROR).
	LogLevel string

	// LogFile, when set, receives a rotated copy of every log line.
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	// ProcRoot is the proc mount point holding net/sockstat.
	ProcRoot string

	// JSON selects structured output, Detailed the extended report.
	JSON     bool
	Detailed bool

	// File is the config file that was read, if any.
	File string
}

// NewViper returns a viper instance carrying the defaults and env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
	v.SetDefault(KeyLogMaxAge, 7)
	v.SetDefault(KeyProcRoot, procfs.DefaultMountPoint)
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyDetailed, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile, or $HOME/.sockstat.* when cfgFile is empty, into v and
// resolves the result. A missing home config is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		LogLevel:      strings.ToUpper(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:       v.GetString(KeyLogFile),
		LogMaxSize:    v.GetInt(KeyLogMaxSize),
		LogMaxBackups: v.GetInt(KeyLogMaxBackups),
		LogMaxAge:     v.GetInt(KeyLogMaxAge),
		ProcRoot:      v.GetString(KeyProcRoot),
		JSON:          v.GetBool(KeyJSON),
		Detailed:      v.GetBool(KeyDetailed),
		File:          v.ConfigFileUsed(),
	}, nil
}

// Validate checks the log level.
func (c *Config) Validate() error {
	if !logging.Valid(c.LogLevel) {
		return fmt.Errorf("%w: %s (valid: %s)", ErrInvalidLogLevel, c.LogLevel, strings.Join(logging.Levels(), ", "))
	}
	return nil
}

// Structured reports whether the output should be JSON.
func (c *Config) Structured() bool {
	return c.JSON || c.Detailed
}

// ApplyLogging tees log into LogFile when one is configured.
func (c *Config) ApplyLogging(log *logging.Logger) error {
	if c.LogFile == "" {
		return nil
	}
	if err := log.EnableFileLogging(c.LogFile, c.LogMaxSize, c.LogMaxBackups, c.LogMaxAge); err != nil {
		return fmt.Errorf("failed to enable file logging: %w", err)
	}
	return nil
}
