// Image Transform Editor - desktop application

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"image-transform-editor/internal/config"
	"image-transform-editor/internal/gui"
	imgio "image-transform-editor/internal/io"
)

const (
	AppID      = "com.example.image-transform-editor"
	AppVersion = "1.0.0"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to a TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(os.Stdout, cfg.Log, *debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"config":     *configPath,
	}).Info("Starting Image Transform Editor")

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	editor := gui.NewApplication(myApp, logger, cfg,
		imgio.NewLoader(logger),
		imgio.NewSaver(logger, cfg.Save.JPEGQuality))

	if flag.NArg() > 0 {
		if err := editor.LoadImageFromPath(flag.Arg(0)); err != nil {
			logger.WithError(err).Error("Failed to load image from command line")
		}
	}

	editor.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}
