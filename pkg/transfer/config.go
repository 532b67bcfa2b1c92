package transfer

import (
	"errors"
	"time"
)

// DefaultPollInterval is how often the host loop checks the running job.
const DefaultPollInterval = 100 * time.Millisecond

// Config holds the coordinator settings.
type Config struct {
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	// NotifyRejections shows a notification when a request is refused
	// because another transfer is running. Rejections are always logged.
	NotifyRejections bool `yaml:"notify_rejections" json:"notify_rejections"`
}

func DefaultConfig() *Config {
	return &Config{
		PollInterval: DefaultPollInterval,
	}
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.PollInterval > time.Minute {
		return errors.New("poll_interval cannot exceed one minute")
	}
	return nil
}
