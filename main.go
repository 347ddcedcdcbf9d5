package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/starburst/cmd"
	"github.com/iburimskiy/starburst/internal/audio"
	"github.com/iburimskiy/starburst/internal/game"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(log); err != nil {
		log.WithError(err).Error("starburst failed")
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	opts, err := cmd.ParseArgs(os.Args[1:])
	if err != nil {
		return err
	}
	if !opts.Run {
		return nil
	}
	cfg := opts.Config

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	defer func() {
		if err := audio.Terminate(); err != nil {
			log.WithError(err).Warn("audio shutdown")
		}
	}()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Starburst - O: open, C: capture, M: mode, Space: pause, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(*cfg, log.WithField("component", "game"))
	defer func() {
		if err := g.Close(); err != nil {
			log.WithError(err).Warn("closing session")
		}
	}()

	switch {
	case opts.Track != "":
		if err := g.PlayTrack(opts.Track); err != nil {
			log.WithError(err).Warn("could not play track")
		}
	case opts.Capture:
		if err := g.StartCapture(); err != nil {
			log.WithError(err).Warn("could not start capture")
		}
	}

	log.WithFields(logrus.Fields{
		"mode": cfg.VisualMode,
		"bars": cfg.BarCount,
	}).Info("starburst starting")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
