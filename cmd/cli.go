package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/starburst/internal/config"
)

// Options is the resolved command line: the effective configuration plus
// what to start on launch.
type Options struct {
	Config  *config.Config
	Track   string
	Capture bool
	// Run is false when the command only printed help or version.
	Run bool
}

const version = "0.3.0"

// ParseArgs loads the configuration file and applies command line overrides
// on top of it.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{}

	var (
		configPath   string
		mode         string
		bars         int
		logLevel     string
		noReflection bool
		noGlow       bool
	)

	rootCmd := &cobra.Command{
		Use:           "starburst",
		Short:         "Audio-reactive circular spectrum visualizer",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("mode") {
				m, err := config.ParseVisualMode(mode)
				if err != nil {
					return fmt.Errorf("--mode: %w", err)
				}
				cfg.VisualMode = m
			}
			if flags.Changed("bars") {
				cfg.BarCount = bars
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if noReflection {
				cfg.EnableReflection = false
			}
			if noGlow {
				cfg.GlowEnabled = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if opts.Track != "" && opts.Capture {
				return fmt.Errorf("--track and --capture are mutually exclusive")
			}
			opts.Config = cfg
			opts.Run = true
			return nil
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "f", "",
		"Path to a YAML configuration file (default ./"+config.DefaultFile+" if present)")
	flags.StringVarP(&mode, "mode", "m", config.ModeCircular.String(),
		"Visual mode: circular, classic or mirrored")
	flags.IntVarP(&bars, "bars", "b", config.DefaultBarCount,
		"Number of spectrum bars")
	flags.StringVarP(&logLevel, "log-level", "l", "info",
		"Log level: trace, debug, info, warn, error")
	flags.StringVarP(&opts.Track, "track", "t", "",
		"Audio file to play on launch (wav, mp3, flac)")
	flags.BoolVarP(&opts.Capture, "capture", "c", false,
		"Start capturing the default input device on launch")
	flags.BoolVar(&noReflection, "no-reflection", false, "Disable the floor reflection")
	flags.BoolVar(&noGlow, "no-glow", false, "Disable the glow effect")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}
	return opts, nil
}
