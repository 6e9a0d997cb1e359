package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the parameters of the long-running sidecar and its probe.
type Settings struct {
	// ListenAddress is the gRPC address the sidecar listens on and the probe dials.
	ListenAddress string `yaml:"listen_addr"`
	// DirectivesPath pins the SHABBAT.md location; empty means search upward.
	DirectivesPath string `yaml:"directives_path,omitempty"`
	// Timeout is the duration for probe RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// PollInterval is how often the sidecar re-evaluates the window.
	PollInterval time.Duration `yaml:"poll_interval"`
}

const (
	// DefaultSettingsFilename is the default filename for sidecar settings.
	DefaultSettingsFilename = "shabbat-check-settings.yaml"

	// DefaultListenAddress is used when no address is configured.
	DefaultListenAddress = "127.0.0.1:50151"

	// DefaultTimeout is the default duration for probe calls.
	DefaultTimeout = 5 * time.Second

	// DefaultPollInterval is the default re-evaluation interval of the sidecar.
	DefaultPollInterval = 30 * time.Second

	// DefaultFilePermissions is the default file permission for settings files.
	DefaultFilePermissions = 0o600
)

// errSettingsAreNotSet is returned when nil settings are provided.
var errSettingsAreNotSet = errors.New("settings are not set")

// LoadSettings reads settings from path. A missing file yields defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		path = DefaultSettingsFilename
	}

	var settings Settings

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, &settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Keep defaults.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = ValidateSettings(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SaveSettings writes settings to path.
func SaveSettings(path string, settings *Settings) error {
	if settings == nil {
		return errSettingsAreNotSet
	}

	if path == "" {
		path = DefaultSettingsFilename
	}

	if err := ValidateSettings(settings); err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// WriteDefaultSettings saves default settings pinned to directivesPath.
// An existing file is only replaced when force is set.
func WriteDefaultSettings(path, directivesPath string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrTemplateExists)
		}
	}

	return SaveSettings(path, &Settings{DirectivesPath: directivesPath})
}

// ValidateSettings fills defaults and checks the listen address format.
func ValidateSettings(settings *Settings) error {
	if settings == nil {
		return errSettingsAreNotSet
	}

	if settings.ListenAddress == "" {
		settings.ListenAddress = DefaultListenAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.PollInterval <= 0 {
		settings.PollInterval = DefaultPollInterval
	}

	return nil
}
