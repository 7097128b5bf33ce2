package config

import (
	"errors"
	"fmt"

	"github.com/phanxgames/texmorph"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMorph(); err != nil {
		return err
	}
	return c.validatePreview()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateMorph() error {
	if _, err := texmorph.EasingByName(c.Morph.Easing); err != nil {
		return fmt.Errorf("morph.easing: %w", err)
	}
	if c.Morph.DurationSeconds <= 0 {
		return errors.New("morph.duration_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePreview() error {
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	return nil
}

// Easing resolves the configured easing curve.
func (c *Config) Easing() texmorph.Easing {
	e, err := texmorph.EasingByName(c.Morph.Easing)
	if err != nil {
		return texmorph.Linear
	}
	return e
}
