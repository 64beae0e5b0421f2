package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var logFormats = []string{"text", "json"}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.Server.RateLimitPerMinute))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of %v, got %q", logFormats, c.Log.Format))
	}
	if c.Mail.Enabled() && (c.Mail.Port < 1 || c.Mail.Port > 65535) {
		errs = append(errs, fmt.Errorf("MAIL_PORT must be between 1 and 65535, got %d", c.Mail.Port))
	}
	if c.Overdue.Enabled {
		if _, err := cron.ParseStandard(c.Overdue.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("OVERDUE_SWEEP_SCHEDULE: %w", err))
		}
	}

	return errors.Join(errs...)
}
