package notify

import "time"

// Defaults for the scheduler configuration.
const (
	DefaultCheckInterval = 120 * time.Second
	DefaultExpiredDays   = 30
)

// Config holds the expiry notification settings. It is consumed here but
// owned by the composition root, which assembles it from the environment.
type Config struct {
	// Enabled gates the whole subsystem; when false the scheduler logs once
	// and never runs for the process lifetime.
	Enabled bool
	// CheckInterval is the fixed-rate scan spacing.
	CheckInterval time.Duration
	// ExpiredDays is the warning horizon for the soon-to-expire band.
	ExpiredDays int
	// Phones receive every notification.
	Phones []string
	// TemplateCode and SignName identify the provider-side SMS template.
	TemplateCode string
	SignName     string
}

func (c Config) interval() time.Duration {
	if c.CheckInterval <= 0 {
		return DefaultCheckInterval
	}
	return c.CheckInterval
}

func (c Config) horizonDays() int {
	if c.ExpiredDays <= 0 {
		return DefaultExpiredDays
	}
	return c.ExpiredDays
}
