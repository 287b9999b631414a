package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
		return fmt.Errorf("paths.api_bind %q is not host:port: %w", c.Paths.APIBind, err)
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.PauseThreshold <= 0 {
		return errors.New("editor.pause_threshold must be positive")
	}
	if c.Editor.SnapGrid <= 0 {
		return errors.New("editor.snap_grid must be positive")
	}
	if c.Editor.MinItemDuration < c.Editor.SnapGrid {
		return errors.New("editor.min_item_duration must be at least editor.snap_grid")
	}
	if c.Editor.FPS <= 0 {
		return errors.New("editor.fps must be positive")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if c.Transcription.SilenceNoiseDB >= 0 {
		return errors.New("transcription.silence_noise_db must be negative decibels")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
