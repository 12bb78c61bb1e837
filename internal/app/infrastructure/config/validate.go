package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

func validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[cfg.App.GinMode] {
		return fmt.Errorf("app.gin_mode must be one of debug, release, test; got %s", cfg.App.GinMode)
	}

	if _, _, err := net.SplitHostPort(cfg.App.Listen); err != nil {
		return fmt.Errorf("app.listen: %w", err)
	}

	u, err := url.Parse(cfg.App.LinkBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("app.link_base must be an absolute url; got %q", cfg.App.LinkBase)
	}

	// data
	if cfg.Data.Backend != BackendFile && cfg.Data.Backend != BackendSQLite {
		return fmt.Errorf("data.backend must be 'file' or 'sqlite'; got %s", cfg.Data.Backend)
	}
	if cfg.Data.Path == "" {
		return errors.New("data.path is required")
	}

	// limiter
	if (cfg.Limiter.Requests != 0 && cfg.Limiter.Per == 0) || (cfg.Limiter.Requests == 0 && cfg.Limiter.Per != 0) {
		return errors.New("limiter.requests and limiter.per must both be set or both be zero")
	}
	if cfg.Limiter.Requests < 0 || cfg.Limiter.Per < 0 {
		return errors.New("limiter.requests and limiter.per must be >= 0")
	}

	// sound
	if cfg.Sound.MaxBytes <= 0 {
		return errors.New("sound.max_bytes must be > 0")
	}

	return nil
}
