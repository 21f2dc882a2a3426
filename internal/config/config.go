// Package config builds the explicit run configuration from a YAML file,
// a dotenv file and the process environment.
package config

import (
	"os"

	"github.com/caarlos0/env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://api.jquants.com/v1"
	DefaultOutputDir = "data"
	DefaultEnvFile   = ".env.jquants"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config is everything a pipeline run needs. It is built once at the process boundary.
type Config struct {
	// RefreshToken is the long-lived J-Quants refresh token. It is checked by the pipeline, not here.
	RefreshToken string `yaml:"-"          env:"JQUANTS_REFRESH_TOKEN"`
	BaseURL      string `yaml:"base_url"   env:"JQUANTS_API_BASE_URL" validate:"required,url"                  jsonschema:"title=Base URL,description=J-Quants API root,default=https://api.jquants.com/v1"`
	OutputDir    string `yaml:"output_dir" env:"JQUANTS_OUTPUT_DIR"   validate:"required"                      jsonschema:"title=Output directory,description=Directory for trading_calendar.json and trading_calendar.parquet,default=data"`
	EnvFile      string `yaml:"env_file"                                                                       jsonschema:"title=Env file,description=Dotenv file holding JQUANTS_REFRESH_TOKEN,default=.env.jquants"`
	LogLevel     string `yaml:"log_level"  env:"LOG_LEVEL"            validate:"oneof=debug info warn error" jsonschema:"title=Log level,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	LogFormat    string `yaml:"log_format" env:"LOG_FORMAT"           validate:"oneof=console json"          jsonschema:"title=Log format,description=console for colored text or json for structured lines,enum=console,enum=json,default=console"`
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an optional YAML file. Empty means none.
	ConfigFile string
	// EnvFile overrides the dotenv file path. Empty means the YAML value or DefaultEnvFile.
	EnvFile string
}

// Load reads the YAML file, the dotenv file and the environment, in that order of
// increasing precedence, then applies defaults and validates the result.
// A dotenv file that does not exist is ignored.
func Load(opts LoadOptions) (*Config, error) {
	cfg := &Config{}

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config file", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = cfg.EnvFile
	}

	if envFile == "" {
		envFile = DefaultEnvFile
	}

	cfg.EnvFile = envFile

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse environment variables", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the non-secret fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

// loadEnvFile populates unset environment variables from a dotenv file.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to load env file %s", path)
	}

	return nil
}
