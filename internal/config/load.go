package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when Load gets an empty
// path.
const DefaultFile = "starburst.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Load reads the YAML file at path over the built-in defaults. An empty path
// tries DefaultFile and silently falls back to defaults when it is missing.
// Environment overrides are applied after the file, then the result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides reads STARBURST_* variables. Malformed values are
// reported rather than ignored.
func (c *Config) applyEnvOverrides() error {
	if val, ok := os.LookupEnv("STARBURST_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("STARBURST_VISUAL_MODE"); ok {
		mode, err := ParseVisualMode(val)
		if err != nil {
			return fmt.Errorf("STARBURST_VISUAL_MODE: %w", err)
		}
		c.VisualMode = mode
	}
	if val, ok := os.LookupEnv("STARBURST_BAR_COUNT"); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: STARBURST_BAR_COUNT: %v", ErrInvalid, err)
		}
		c.BarCount = n
	}
	if val, ok := os.LookupEnv("STARBURST_ENABLE_REFLECTION"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: STARBURST_ENABLE_REFLECTION: %v", ErrInvalid, err)
		}
		c.EnableReflection = b
	}
	if val, ok := os.LookupEnv("STARBURST_GLOW_ENABLED"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: STARBURST_GLOW_ENABLED: %v", ErrInvalid, err)
		}
		c.GlowEnabled = b
	}
	return nil
}

// Validate checks ranges that would otherwise produce NaN or empty output
// further down the pipeline.
func (c *Config) Validate() error {
	for _, f := range c.floats() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalid, f.name, f.value)
		}
	}
	if c.FFTSize < 32 || c.FFTSize > 32768 || c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("%w: fftSize must be a power of two in [32, 32768], got %d", ErrInvalid, c.FFTSize)
	}
	if c.SmoothingTimeConstant < 0 || c.SmoothingTimeConstant >= 1 {
		return fmt.Errorf("%w: smoothingTimeConstant must be in [0, 1), got %g", ErrInvalid, c.SmoothingTimeConstant)
	}
	if c.AudioBoost <= 0 {
		return fmt.Errorf("%w: audioBoost must be positive, got %g", ErrInvalid, c.AudioBoost)
	}
	if c.BarCount < 1 {
		return fmt.Errorf("%w: barCount must be at least 1, got %d", ErrInvalid, c.BarCount)
	}
	if c.MinBarHeight < 0 || c.MaxBarHeight < c.MinBarHeight {
		return fmt.Errorf("%w: bar heights must satisfy 0 <= min <= max, got %g..%g", ErrInvalid, c.MinBarHeight, c.MaxBarHeight)
	}
	if c.SmoothingFactor <= 0 || c.SmoothingFactor > 1 {
		return fmt.Errorf("%w: smoothingFactor must be in (0, 1], got %g", ErrInvalid, c.SmoothingFactor)
	}
	if c.UsableBinFraction <= 0 || c.UsableBinFraction > 1 {
		return fmt.Errorf("%w: usableBinFraction must be in (0, 1], got %g", ErrInvalid, c.UsableBinFraction)
	}
	if c.NeighborRadius < 0 {
		return fmt.Errorf("%w: neighborRadius must not be negative, got %d", ErrInvalid, c.NeighborRadius)
	}
	if c.BassBins < 1 {
		return fmt.Errorf("%w: bassBins must be at least 1, got %d", ErrInvalid, c.BassBins)
	}
	if c.BassSmoothing <= 0 || c.BassSmoothing > 1 {
		return fmt.Errorf("%w: bassSmoothing must be in (0, 1], got %g", ErrInvalid, c.BassSmoothing)
	}
	if c.ParticleCount < 0 {
		return fmt.Errorf("%w: particleCount must not be negative, got %d", ErrInvalid, c.ParticleCount)
	}
	if c.ParticleMinSize <= 0 || c.ParticleMaxSize < c.ParticleMinSize {
		return fmt.Errorf("%w: particle sizes must satisfy 0 < min <= max, got %g..%g", ErrInvalid, c.ParticleMinSize, c.ParticleMaxSize)
	}
	if c.PerspectiveScale <= 0 || c.PerspectiveScale > 1 {
		return fmt.Errorf("%w: perspectiveScale must be in (0, 1], got %g", ErrInvalid, c.PerspectiveScale)
	}
	if c.MaxDevicePixelRatio < 1 {
		return fmt.Errorf("%w: maxDevicePixelRatio must be at least 1, got %g", ErrInvalid, c.MaxDevicePixelRatio)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.VisualMode < ModeCircular || c.VisualMode > ModeMirrored {
		return fmt.Errorf("%w: unknown visual mode %d", ErrInvalid, int(c.VisualMode))
	}
	return nil
}

type namedFloat struct {
	name  string
	value float64
}

// floats lists every float option under its YAML key.
func (c *Config) floats() []namedFloat {
	return []namedFloat{
		{"smoothingTimeConstant", c.SmoothingTimeConstant},
		{"audioBoost", c.AudioBoost},
		{"innerRadius", c.InnerRadius},
		{"minBarHeight", c.MinBarHeight},
		{"maxBarHeight", c.MaxBarHeight},
		{"barWidth", c.BarWidth},
		{"perspectiveScale", c.PerspectiveScale},
		{"rotationSpeed", c.RotationSpeed},
		{"smoothingFactor", c.SmoothingFactor},
		{"usableBinFraction", c.UsableBinFraction},
		{"bassSmoothing", c.BassSmoothing},
		{"bassHitThreshold", c.BassHitThreshold},
		{"particleBaseSpeed", c.ParticleBaseSpeed},
		{"particleBassMultiplier", c.ParticleBassMultiplier},
		{"particleMinSize", c.ParticleMinSize},
		{"particleMaxSize", c.ParticleMaxSize},
		{"glowIntensity", c.GlowIntensity},
		{"hueStart", c.HueStart},
		{"hueRange", c.HueRange},
		{"hueDrift", c.HueDrift},
		{"maxDevicePixelRatio", c.MaxDevicePixelRatio},
	}
}
