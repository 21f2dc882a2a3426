package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"github.com/rxtech-lab/trading-calendar/pkg/utils"
	"gopkg.in/yaml.v3"
)

const (
	// SchemaFileName is the JSON schema written next to the sample config.
	SchemaFileName = "trading-calendar-config.json"
	// SampleFileName is the sample YAML config.
	SampleFileName = "trading-calendar.yaml"
)

// Default returns a Config holding every default value.
func Default() *Config {
	cfg := &Config{EnvFile: DefaultEnvFile}
	cfg.applyDefaults()

	return cfg
}

// GenerateSchemaJSON returns the JSON schema of the YAML config file.
func GenerateSchemaJSON() (string, error) {
	return utils.GetSchemaFromConfig(&Config{})
}

// InitResult lists the files written by Init.
type InitResult struct {
	SchemaPath string
	SamplePath string
	// SampleWritten is false when the sample config already existed.
	SampleWritten bool
}

// Init writes the config schema to dir and a sample config next to it.
// An existing sample config is left untouched; the schema is always rewritten.
func Init(dir string) (*InitResult, error) {
	result := &InitResult{
		SchemaPath: filepath.Join(dir, SchemaFileName),
		SamplePath: filepath.Join(dir, SampleFileName),
	}

	if err := generateSchemaFile(result.SchemaPath); err != nil {
		return nil, err
	}

	written, err := generateSampleConfig(result.SamplePath, SchemaFileName)
	if err != nil {
		return nil, err
	}

	result.SampleWritten = written

	return result, nil
}

func generateSchemaFile(path string) error {
	schemaJSON, err := GenerateSchemaJSON()
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOFailed, "failed to generate schema", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailed, "failed to create directory", err)
	}

	if err := os.WriteFile(path, []byte(schemaJSON), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailed, "failed to write schema", err)
	}

	return nil
}

func generateSampleConfig(path, schemaName string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	yamlBytes, err := yaml.Marshal(Default())
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeIOFailed, "failed to marshal sample config", err)
	}

	content := getSchemaReference(schemaName) + string(yamlBytes)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, errors.Wrap(errors.ErrCodeIOFailed, "failed to write sample config", err)
	}

	return true, nil
}

func getSchemaReference(schemaName string) string {
	var b strings.Builder

	b.WriteString("# yaml-language-server: $schema=")
	b.WriteString(schemaName)
	b.WriteString("\n")

	return b.String()
}
