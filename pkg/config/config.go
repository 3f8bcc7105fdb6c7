// Package config holds configuration for a generation run and its optional
// control plane, loadable from environment variables in the teacher's style.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tavianator/pixelforest/pkg/controlplane"
	"github.com/tavianator/pixelforest/pkg/generate"
)

// Config holds all pixelforest configuration.
type Config struct {
	Generate      GenerateConfig
	ControlPlane  ControlPlaneConfig
	Observability ObservabilityConfig
}

// GenerateConfig mirrors generate.Options, with defaults suited to a
// standalone CLI run.
type GenerateConfig struct {
	Width      int
	Height     int
	Bits       int
	Order      generate.Order
	Frontier   generate.FrontierKind
	ColorSpace generate.ColorSpace
	Striped    bool
	X0, Y0     uint32
}

// ControlPlaneConfig holds the optional HTTP server's configuration.
type ControlPlaneConfig struct {
	Enabled         bool
	Host            string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Auth      controlplane.AuthConfig
	RateLimit controlplane.RateLimitConfig
}

// ObservabilityConfig holds logging and metrics configuration.
type ObservabilityConfig struct {
	LogLevel    string
	MetricsPath string
}

// Default returns the default configuration for a single-process CLI run.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Width:      512,
			Height:     512,
			Bits:       24,
			Order:      generate.OrderHilbert,
			Frontier:   generate.FrontierMean,
			ColorSpace: generate.ColorSpaceOklab,
			Striped:    true,
		},
		ControlPlane: ControlPlaneConfig{
			Enabled:         false,
			Host:            "0.0.0.0",
			Port:            8080,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Auth: controlplane.AuthConfig{
				Enabled: false,
			},
			RateLimit: controlplane.RateLimitConfig{
				Enabled:        true,
				RequestsPerSec: 5,
				Burst:          10,
				PerIP:          true,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:    "INFO",
			MetricsPath: "/metrics",
		},
	}
}

// LoadFromEnv loads configuration from environment variables, overriding
// Default.
func LoadFromEnv() *Config {
	cfg := Default()

	if width := os.Getenv("PIXELFOREST_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil {
			cfg.Generate.Width = w
		}
	}
	if height := os.Getenv("PIXELFOREST_HEIGHT"); height != "" {
		if h, err := strconv.Atoi(height); err == nil {
			cfg.Generate.Height = h
		}
	}
	if bits := os.Getenv("PIXELFOREST_BITS"); bits != "" {
		if b, err := strconv.Atoi(bits); err == nil {
			cfg.Generate.Bits = b
		}
	}
	if order := os.Getenv("PIXELFOREST_ORDER"); order != "" {
		cfg.Generate.Order = generate.Order(order)
	}
	if frontierKind := os.Getenv("PIXELFOREST_FRONTIER"); frontierKind != "" {
		cfg.Generate.Frontier = generate.FrontierKind(frontierKind)
	}
	if colorSpace := os.Getenv("PIXELFOREST_COLOR_SPACE"); colorSpace != "" {
		cfg.Generate.ColorSpace = generate.ColorSpace(colorSpace)
	}
	if striped := os.Getenv("PIXELFOREST_STRIPED"); striped == "false" {
		cfg.Generate.Striped = false
	}

	if host := os.Getenv("PIXELFOREST_CONTROL_HOST"); host != "" {
		cfg.ControlPlane.Host = host
	}
	if port := os.Getenv("PIXELFOREST_CONTROL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.ControlPlane.Port = p
		}
	}
	if enabled := os.Getenv("PIXELFOREST_CONTROL_ENABLED"); enabled == "true" {
		cfg.ControlPlane.Enabled = true
	}
	if timeout := os.Getenv("PIXELFOREST_CONTROL_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			cfg.ControlPlane.RequestTimeout = t
		}
	}
	if authEnabled := os.Getenv("PIXELFOREST_AUTH_ENABLED"); authEnabled == "true" {
		cfg.ControlPlane.Auth.Enabled = true
		cfg.ControlPlane.Auth.JWTSecret = os.Getenv("PIXELFOREST_JWT_SECRET")
	}
	if rlEnabled := os.Getenv("PIXELFOREST_RATE_LIMIT_ENABLED"); rlEnabled == "false" {
		cfg.ControlPlane.RateLimit.Enabled = false
	}

	if level := os.Getenv("PIXELFOREST_LOG_LEVEL"); level != "" {
		cfg.Observability.LogLevel = level
	}

	return cfg
}

// Validate checks if the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Generate.Width < 1 || c.Generate.Height < 1 {
		return fmt.Errorf("invalid canvas size: %dx%d (both must be > 0)", c.Generate.Width, c.Generate.Height)
	}
	if c.Generate.Bits < 1 || c.Generate.Bits > 24 {
		return fmt.Errorf("invalid color bit depth: %d (must be 1-24)", c.Generate.Bits)
	}

	if c.ControlPlane.Enabled {
		if c.ControlPlane.Port < 1 || c.ControlPlane.Port > 65535 {
			return fmt.Errorf("invalid control plane port: %d (must be 1-65535)", c.ControlPlane.Port)
		}
		if c.ControlPlane.Auth.Enabled && c.ControlPlane.Auth.JWTSecret == "" {
			return fmt.Errorf("control plane auth enabled but no JWT secret specified")
		}
	}

	return nil
}

// Address returns the control plane's listen address (host:port).
func (c *ControlPlaneConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
