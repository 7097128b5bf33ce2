package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeMorph()
	c.normalizePreview()
	return nil
}

func (c *Config) normalizeStore() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	var err error
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeMorph() {
	c.Morph.Easing = strings.TrimSpace(c.Morph.Easing)
	if c.Morph.Easing == "" {
		c.Morph.Easing = defaultEasing
	}
}

func (c *Config) normalizePreview() {
	c.Preview.Title = strings.TrimSpace(c.Preview.Title)
	if c.Preview.Title == "" {
		c.Preview.Title = defaultPreviewTitle
	}
}
