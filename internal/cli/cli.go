// Package cli implements the imgedit command-line interface.
package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"image-transform-editor/internal/config"
	"image-transform-editor/internal/core"
	imgio "image-transform-editor/internal/io"
	"image-transform-editor/internal/session"
)

const appName = "imgedit"

// ImageLoader decodes an image file into a pixel buffer.
type ImageLoader interface {
	LoadImage(path string) (*core.PixelBuffer, error)
}

// ImageSaver writes the current image of a session to a file.
type ImageSaver interface {
	Save(sess *session.Session, path string) error
}

// CLI holds shared state for all commands. Loader, Saver and Preview are
// built from the configuration unless set beforehand.
type CLI struct {
	Logger  *logrus.Logger
	Config  *config.Config
	Loader  ImageLoader
	Saver   ImageSaver
	Preview imgio.Previewer

	logOutput io.Writer
}

// New creates a CLI whose logs go to w.
func New(w io.Writer) *CLI {
	return &CLI{
		Logger:    config.NewLogger(w, config.Default().Log, false),
		Config:    config.Default(),
		logOutput: w,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath string
		debug      bool
		preview    bool
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "imgedit applies geometric transforms to images with undo",
		Long:         `imgedit rotates, scales, flips and translates images. The interactive menu keeps a linear history so any step can be undone or the original restored.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("preview") {
				cfg.Preview.Enabled = preview
			}
			c.Config = cfg
			c.Logger = config.NewLogger(c.logOutput, cfg.Log, debug)
			c.wire()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	root.PersistentFlags().BoolVarP(&debug, "debug", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&preview, "preview", false, "show a before/after window after each edit")

	root.AddCommand(c.menuCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.transformsCommand())

	return root
}

func (c *CLI) wire() {
	if c.Loader == nil {
		c.Loader = imgio.NewLoader(c.Logger)
	}
	if c.Saver == nil {
		c.Saver = imgio.NewSaver(c.Logger, c.Config.Save.JPEGQuality)
	}
	if c.Preview == nil && c.Config.Preview.Enabled {
		c.Preview = imgio.NewWindow(c.Config.Preview.MaxWidth, c.Config.Preview.MaxHeight)
	}
}

func (c *CLI) openSession(path string) (*session.Session, error) {
	buf, err := c.Loader.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return session.Open(buf, session.WithLogger(c.Logger))
}
