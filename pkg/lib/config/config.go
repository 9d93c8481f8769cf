// Package config resolves probe settings from defaults, an optional YAML
// file and PROBE_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v2"
)

const (
	DefaultShell   = "/bin/sh -c"
	DefaultCommand = "ls"
	DefaultAddress = "localhost:50061"
)

// Config holds everything the probe CLI and server need.
type Config struct {
	// Shell is the command processor invocation the command line is appended to.
	Shell   string `yaml:"shell"`
	Command string `yaml:"command"`
	Verbose bool   `yaml:"verbose"`

	Address        string `yaml:"address"`
	MetricsAddress string `yaml:"metrics_address"`

	// PEM contents, not paths.
	TLSKey    string `yaml:"tls_key"`
	TLSCert   string `yaml:"tls_cert"`
	CATLSCert string `yaml:"ca_tls_cert"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Shell:   DefaultShell,
		Command: DefaultCommand,
		Address: DefaultAddress,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	setString := func(name string, dst *string) {
		if v := os.Getenv(name); strings.TrimSpace(v) != "" {
			*dst = v
		}
	}

	setString("PROBE_SHELL", &cfg.Shell)
	setString("PROBE_COMMAND", &cfg.Command)
	setString("PROBE_ADDRESS", &cfg.Address)
	setString("PROBE_METRICS_ADDRESS", &cfg.MetricsAddress)
	setString("PROBE_TLS_KEY", &cfg.TLSKey)
	setString("PROBE_TLS_CERT", &cfg.TLSCert)
	setString("PROBE_CA_TLS_CERT", &cfg.CATLSCert)

	if v := os.Getenv("PROBE_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PROBE_VERBOSE value %q: %w", v, err)
		}
		cfg.Verbose = b
	}
	return nil
}

// ShellArgs splits Shell into the executable and its leading arguments.
func (cfg *Config) ShellArgs() ([]string, error) {
	args, err := shellwords.Parse(cfg.Shell)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shell %q: %w", cfg.Shell, err)
	}
	if len(args) == 0 {
		return nil, errors.New("shell is required")
	}
	return args, nil
}

// TLSEnabled reports whether all TLS material is present.
func (cfg *Config) TLSEnabled() bool {
	return cfg.TLSKey != "" && cfg.TLSCert != "" && cfg.CATLSCert != ""
}

// ValidateTLS accepts either a complete TLS configuration or none at all.
func (cfg *Config) ValidateTLS() error {
	if cfg.TLSEnabled() {
		return nil
	}
	if cfg.TLSKey != "" || cfg.TLSCert != "" || cfg.CATLSCert != "" {
		return fmt.Errorf("incomplete TLS configuration; require PROBE_TLS_KEY, PROBE_TLS_CERT, PROBE_CA_TLS_CERT")
	}
	return nil
}
