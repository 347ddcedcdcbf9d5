package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Analysis node
	DefaultFFTSize               = 2048
	DefaultSmoothingTimeConstant = 0.8
	DefaultAudioBoost            = 1.4

	// Bars
	DefaultBarCount         = 180
	DefaultInnerRadius      = 90
	DefaultMinBarHeight     = 4
	DefaultMaxBarHeight     = 160
	DefaultBarWidth         = 3
	DefaultPerspectiveScale = 0.72
	DefaultRotationSpeed    = 0.0025
	DefaultSmoothingFactor  = 0.35
	DefaultUsableFraction   = 0.6
	DefaultNeighborRadius   = 1

	// Bass envelope
	DefaultBassBins         = 10
	DefaultBassSmoothing    = 0.5
	DefaultBassHitThreshold = 0.65
	DefaultBassHitInterval  = 100 * time.Millisecond

	// Particles
	DefaultParticleCount          = 90
	DefaultParticleBaseSpeed      = 0.35
	DefaultParticleBassMultiplier = 3
	DefaultParticleMinSize        = 0.8
	DefaultParticleMaxSize        = 2.6

	// Color
	DefaultHueStart      = 190
	DefaultHueRange      = 140
	DefaultHueDrift      = 20
	DefaultGlowIntensity = 14

	DefaultMaxDevicePixelRatio = 2
)

// Config holds every tunable of the visualizer. Values are read once when a
// session starts; only VisualMode is expected to change mid-session.
type Config struct {
	LogLevel string `yaml:"logLevel"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`

	FFTSize               int     `yaml:"fftSize"`
	SmoothingTimeConstant float64 `yaml:"smoothingTimeConstant"`
	AudioBoost            float64 `yaml:"audioBoost"`

	BarCount          int     `yaml:"barCount"`
	InnerRadius       float64 `yaml:"innerRadius"`
	MinBarHeight      float64 `yaml:"minBarHeight"`
	MaxBarHeight      float64 `yaml:"maxBarHeight"`
	BarWidth          float64 `yaml:"barWidth"`
	PerspectiveScale  float64 `yaml:"perspectiveScale"`
	RotationSpeed     float64 `yaml:"rotationSpeed"`
	SmoothingFactor   float64 `yaml:"smoothingFactor"`
	UsableBinFraction float64 `yaml:"usableBinFraction"`
	NeighborRadius    int     `yaml:"neighborRadius"`

	BassBins         int           `yaml:"bassBins"`
	BassSmoothing    float64       `yaml:"bassSmoothing"`
	BassHitThreshold float64       `yaml:"bassHitThreshold"`
	BassHitInterval  time.Duration `yaml:"bassHitInterval"`

	ParticleCount          int     `yaml:"particleCount"`
	ParticleBaseSpeed      float64 `yaml:"particleBaseSpeed"`
	ParticleBassMultiplier float64 `yaml:"particleBassMultiplier"`
	ParticleMinSize        float64 `yaml:"particleMinSize"`
	ParticleMaxSize        float64 `yaml:"particleMaxSize"`

	GlowEnabled   bool    `yaml:"glowEnabled"`
	GlowIntensity float64 `yaml:"glowIntensity"`
	HueStart      float64 `yaml:"hueStart"`
	HueRange      float64 `yaml:"hueRange"`
	HueDrift      float64 `yaml:"hueDrift"`

	MaxDevicePixelRatio float64    `yaml:"maxDevicePixelRatio"`
	EnableReflection    bool       `yaml:"enableReflection"`
	VisualMode          VisualMode `yaml:"visualMode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Width:    WindowWidth,
		Height:   WindowHeight,

		FFTSize:               DefaultFFTSize,
		SmoothingTimeConstant: DefaultSmoothingTimeConstant,
		AudioBoost:            DefaultAudioBoost,

		BarCount:          DefaultBarCount,
		InnerRadius:       DefaultInnerRadius,
		MinBarHeight:      DefaultMinBarHeight,
		MaxBarHeight:      DefaultMaxBarHeight,
		BarWidth:          DefaultBarWidth,
		PerspectiveScale:  DefaultPerspectiveScale,
		RotationSpeed:     DefaultRotationSpeed,
		SmoothingFactor:   DefaultSmoothingFactor,
		UsableBinFraction: DefaultUsableFraction,
		NeighborRadius:    DefaultNeighborRadius,

		BassBins:         DefaultBassBins,
		BassSmoothing:    DefaultBassSmoothing,
		BassHitThreshold: DefaultBassHitThreshold,
		BassHitInterval:  DefaultBassHitInterval,

		ParticleCount:          DefaultParticleCount,
		ParticleBaseSpeed:      DefaultParticleBaseSpeed,
		ParticleBassMultiplier: DefaultParticleBassMultiplier,
		ParticleMinSize:        DefaultParticleMinSize,
		ParticleMaxSize:        DefaultParticleMaxSize,

		GlowEnabled:   true,
		GlowIntensity: DefaultGlowIntensity,
		HueStart:      DefaultHueStart,
		HueRange:      DefaultHueRange,
		HueDrift:      DefaultHueDrift,

		MaxDevicePixelRatio: DefaultMaxDevicePixelRatio,
		EnableReflection:    true,
		VisualMode:          ModeCircular,
	}
}
