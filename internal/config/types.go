// Package config loads and validates per-instance configuration files.
//
// Each managed instance has a directory under the configs root named
// after the instance, containing a single config.yml that declares the
// desired machine shape.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors returned by Load. Callers distinguish them with
// errors.Is; both mean no API call should be attempted.
var (
	// ErrConfigNotFound indicates no config.yml exists for the instance name.
	ErrConfigNotFound = errors.New("instance config not found")

	// ErrConfigMalformed indicates the config file exists but is invalid.
	ErrConfigMalformed = errors.New("instance config malformed")
)

const (
	// DefaultConfigDir is the default configs root, relative to the
	// working directory.
	DefaultConfigDir = "configs"

	// configFileName is the per-instance config file name.
	configFileName = "config.yml"

	defaultDiskSizeGB = 10
	defaultNetwork    = "default"
)

// InstanceConfig describes the desired shape of a single Compute Engine
// instance. Name is taken from the config directory, not the file.
type InstanceConfig struct {
	Name string `yaml:"-"`

	// InstanceProject is the project that owns the source image family.
	InstanceProject string `yaml:"instance_project"`

	// InstanceFamily is the image family the boot disk is created from.
	InstanceFamily string `yaml:"instance_family"`

	// MachineType is the Compute Engine machine type, e.g. "n1-standard-1".
	MachineType string `yaml:"machine_type"`

	DiskSizeGB  int      `yaml:"disk_size_gb,omitempty"`
	Network     string   `yaml:"network,omitempty"`
	Preemptible bool     `yaml:"preemptible,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// instance names must be valid RFC 1035 labels per the Compute Engine API
var namePattern = regexp.MustCompile(`^[a-z]([-a-z0-9]*[a-z0-9])?$`)

// Load reads the configuration for the named instance from
// <dir>/<name>/config.yml. It returns ErrConfigNotFound if the file
// does not exist and ErrConfigMalformed if it cannot be parsed or
// fails validation.
func Load(dir, name string) (*InstanceConfig, error) {
	if dir == "" {
		dir = DefaultConfigDir
	}

	cfg := &InstanceConfig{Name: name}
	cfg.Normalize()

	if err := validateName(cfg.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}

	path := filepath.Join(dir, cfg.Name, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrConfigMalformed, err)
	}

	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}

	return cfg, nil
}

// Normalize sanitizes user input to consistent formats and fills
// defaults. Called automatically by Load before validation.
func (c *InstanceConfig) Normalize() {
	c.Name = strings.ToLower(strings.TrimSpace(c.Name))
	c.InstanceProject = strings.TrimSpace(c.InstanceProject)
	c.InstanceFamily = strings.TrimSpace(c.InstanceFamily)
	c.MachineType = strings.TrimSpace(c.MachineType)

	if c.DiskSizeGB == 0 {
		c.DiskSizeGB = defaultDiskSizeGB
	}
	if c.Network == "" {
		c.Network = defaultNetwork
	}
}

// Validate checks the configuration for errors. It does not verify
// that the referenced project, family, or machine type exist - only
// config structure.
func (c *InstanceConfig) Validate() error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	if c.InstanceProject == "" {
		return fmt.Errorf("instance_project is required")
	}
	if c.InstanceFamily == "" {
		return fmt.Errorf("instance_family is required")
	}
	if c.MachineType == "" {
		return fmt.Errorf("machine_type is required")
	}
	if c.DiskSizeGB < 0 {
		return fmt.Errorf("disk_size_gb must be > 0, got %d", c.DiskSizeGB)
	}
	for i, tag := range c.Tags {
		if !namePattern.MatchString(tag) {
			return fmt.Errorf("tags[%d]: invalid network tag %q", i, tag)
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name is required")
	}
	if len(name) > 63 {
		return fmt.Errorf("instance name must be at most 63 characters, got %d", len(name))
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("instance name must start with a letter and contain only lowercase letters, digits, or hyphens, got %q", name)
	}
	return nil
}
