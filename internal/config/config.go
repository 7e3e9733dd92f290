package config

import (
	"io"
	"os"
)

// Constants for the Output target.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// DefaultMetricsNamespace prefixes metric names when none is configured.
const DefaultMetricsNamespace = "prilog"

// Config represents the top-level structure of a prilog YAML configuration file.
type Config struct {
	SchemaVersion string `yaml:"schemaVersion"`
	// Level is the threshold name, one of prilog.LevelNames().
	Level string `yaml:"level"`
	// Output selects the stream lines are written to. Defaults to stdout.
	Output  string         `yaml:"output,omitempty"`
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`

	// FilePath is an internal field for storing the source file path for context
	// in logging and error messages. It is not parsed from the YAML.
	FilePath string `yaml:"-"`
}

// MetricsConfig controls the Prometheus counters kept by the logger.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// GetOutput returns the configured output target or the default (stdout).
func (c *Config) GetOutput() string {
	if c.Output == "" {
		return OutputStdout
	}
	return c.Output
}

// Writer returns the stream selected by Output.
func (c *Config) Writer() io.Writer {
	if c.GetOutput() == OutputStderr {
		return os.Stderr
	}
	return os.Stdout
}

// MetricsEnabled reports whether metrics collection is switched on.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics != nil && c.Metrics.Enabled
}

// GetMetricsNamespace returns the configured namespace or the default ("prilog").
func (c *Config) GetMetricsNamespace() string {
	if c.Metrics != nil && c.Metrics.Namespace != "" {
		return c.Metrics.Namespace
	}
	return DefaultMetricsNamespace
}
