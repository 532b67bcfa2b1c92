// Package config loads the taildropmenu settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rescp17/taildropMenu/pkg/notify"
	"github.com/rescp17/taildropMenu/pkg/tailscale"
	"github.com/rescp17/taildropMenu/pkg/transfer"
)

// Notifier kinds accepted in the notifier field.
const (
	NotifierDesktop = "desktop"
	NotifierSocket  = "socket"
	NotifierLog     = "log"
	NotifierNone    = "none"
)

const fileName = "config.yaml"

type Config struct {
	TailscaleBinary       string        `yaml:"tailscale_binary"`
	ShowDNSName           bool          `yaml:"show_dns_name"`
	HideOffline           bool          `yaml:"hide_offline"`
	NotifyDirectoryErrors bool          `yaml:"notify_directory_errors"`
	NotifyRejections      bool          `yaml:"notify_rejections"`
	PollInterval          time.Duration `yaml:"poll_interval"`
	DeviceCacheTTL        time.Duration `yaml:"device_cache_ttl"`
	Notifier              string        `yaml:"notifier"`
	NotifySocket          string        `yaml:"notify_socket"`
}

func Default() Config {
	return Config{
		TailscaleBinary: tailscale.DefaultBinary,
		PollInterval:    transfer.DefaultPollInterval,
		Notifier:        NotifierDesktop,
		NotifySocket:    notify.DefaultSocketPath,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/taildropmenu/config.yaml or the platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taildropmenu", fileName), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks if the configuration values are valid
func (c Config) Validate() error {
	if c.TailscaleBinary == "" {
		return errors.New("tailscale_binary cannot be empty")
	}
	if c.DeviceCacheTTL < 0 {
		return errors.New("device_cache_ttl cannot be negative")
	}
	switch c.Notifier {
	case NotifierDesktop, NotifierLog, NotifierNone:
	case NotifierSocket:
		if c.NotifySocket == "" {
			return errors.New("notify_socket is required for the socket notifier")
		}
	default:
		return fmt.Errorf("unknown notifier %q", c.Notifier)
	}
	return c.Transfer().Validate()
}

// Transfer returns the coordinator part of the configuration.
func (c Config) Transfer() *transfer.Config {
	return &transfer.Config{
		PollInterval:     c.PollInterval,
		NotifyRejections: c.NotifyRejections,
	}
}
