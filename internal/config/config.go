package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfmyers9/skipboi/internal/music"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Step for volume-up and volume-down
	// Default: 10
	VolumeStep int

	// Wait before querying the track after next/previous
	// Default: 500ms
	SettleDelay time.Duration

	// Per-script timeout, 0 waits for the host indefinitely
	Timeout time.Duration

	// Path to the osascript binary
	OsascriptPath string

	// Log level (debug, info, warn, error)
	LogLevel string

	// Show a desktop notification when printing the current track
	Notify bool

	// Output format template for the current command
	// Empty prints the multi-line block
	OutputFormat string

	// Fixed display width for the current command (0 = disabled)
	OutputWidth int

	// Shortcut names run for each AirPods mode
	AirPods AirPodsConfig
}

// AirPodsConfig holds the Shortcuts automation names for each mode
type AirPodsConfig struct {
	Cycle             string
	Transparency      string
	Adaptive          string
	NoiseCancellation string
	Off               string
}

// Shortcuts returns the names keyed by mode, for music.Options
func (a AirPodsConfig) Shortcuts() map[music.AirPodsMode]string {
	return map[music.AirPodsMode]string{
		music.ModeCycle:             a.Cycle,
		music.ModeTransparency:      a.Transparency,
		music.ModeAdaptive:          a.Adaptive,
		music.ModeNoiseCancellation: a.NoiseCancellation,
		music.ModeOff:               a.Off,
	}
}

// Load reads configuration from ~/.config/skipboi and the environment
func Load() (*Config, error) {
	return LoadFrom(GetConfigDir())
}

// LoadFrom reads config.yaml from dir (then the working directory) and
// applies SKIPBOI_* environment overrides. A missing file is not an error.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetDefault("volume_step", music.DefaultVolumeStep)
	v.SetDefault("settle_delay", "500ms")
	v.SetDefault("timeout", "0s")
	v.SetDefault("osascript_path", "osascript")
	v.SetDefault("log_level", "warn")
	v.SetDefault("notify", false)
	v.SetDefault("output_format", "")
	v.SetDefault("output_width", 0)
	v.SetDefault("airpods.cycle", music.DefaultShortcuts[music.ModeCycle])
	v.SetDefault("airpods.transparency", music.DefaultShortcuts[music.ModeTransparency])
	v.SetDefault("airpods.adaptive", music.DefaultShortcuts[music.ModeAdaptive])
	v.SetDefault("airpods.noise_cancellation", music.DefaultShortcuts[music.ModeNoiseCancellation])
	v.SetDefault("airpods.off", music.DefaultShortcuts[music.ModeOff])

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// SKIPBOI_AIRPODS_OFF overrides airpods.off
	v.SetEnvPrefix("SKIPBOI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		VolumeStep:    v.GetInt("volume_step"),
		SettleDelay:   v.GetDuration("settle_delay"),
		Timeout:       v.GetDuration("timeout"),
		OsascriptPath: v.GetString("osascript_path"),
		LogLevel:      v.GetString("log_level"),
		Notify:        v.GetBool("notify"),
		OutputFormat:  v.GetString("output_format"),
		OutputWidth:   v.GetInt("output_width"),
		AirPods: AirPodsConfig{
			Cycle:             v.GetString("airpods.cycle"),
			Transparency:      v.GetString("airpods.transparency"),
			Adaptive:          v.GetString("airpods.adaptive"),
			NoiseCancellation: v.GetString("airpods.noise_cancellation"),
			Off:               v.GetString("airpods.off"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the rest of the program cannot use
func (c *Config) Validate() error {
	if c.VolumeStep < 1 || c.VolumeStep > 100 {
		return fmt.Errorf("volume_step must be between 1 and 100, got %d", c.VolumeStep)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative, got %v", c.SettleDelay)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.OutputWidth < 0 {
		return fmt.Errorf("output_width must not be negative, got %d", c.OutputWidth)
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "skipboi")
}
