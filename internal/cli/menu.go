package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"image-transform-editor/internal/algorithms"
	"image-transform-editor/internal/core"
	"image-transform-editor/internal/metrics"
	"image-transform-editor/internal/session"
)

type menuOption struct {
	key       string
	label     string
	transform string // registry name, empty for session actions
}

var menuOptions = []menuOption{
	{"1", "Rotate image", "rotate"},
	{"2", "Scale image", "scale"},
	{"3", "Flip image", "flip"},
	{"4", "Translate image", "translate"},
	{"5", "Undo last transform", ""},
	{"6", "Restore original image", ""},
	{"7", "Save image", ""},
	{"8", "Exit", ""},
	{"h", "Show history", ""},
}

var errExit = errors.New("exit")

func (c *CLI) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu [image]",
		Short: "Edit an image interactively",
		Long:  `Opens an image and presents a numbered menu of transforms. Every applied transform is kept in the history; undo steps back one transform and restore returns to the loaded image.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &menu{
				c:         c,
				in:        bufio.NewScanner(cmd.InOrStdin()),
				out:       printer{w: cmd.OutOrStdout()},
				evaluator: metrics.NewEvaluator(),
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if err := m.open(path); err != nil {
				return err
			}
			return m.run(cmd)
		},
	}
}

// menu is one interactive editing run.
type menu struct {
	c         *CLI
	sess      *session.Session
	in        *bufio.Scanner
	out       printer
	evaluator *metrics.Evaluator
}

func (m *menu) read(prompt string) (string, error) {
	m.out.prompt(prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// open loads path, or keeps asking for one when it is empty or fails.
func (m *menu) open(path string) error {
	for {
		if path == "" {
			line, err := m.read("Enter the image path (jpg or png):")
			if err != nil {
				return core.ErrNoImage
			}
			path = line
		}

		if _, err := os.Stat(path); err != nil {
			m.out.warning("The path does not exist. Try again.")
			path = ""
			continue
		}

		sess, err := m.c.openSession(path)
		if err != nil {
			m.out.error(fmt.Errorf("loading image: %w", err))
			path = ""
			continue
		}

		m.sess = sess
		m.out.success("Image loaded successfully.")
		m.out.detail("%s · session %s", sess.Current(), sess.ID())
		return nil
	}
}

func (m *menu) run(cmd *cobra.Command) error {
	for {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		m.showMenu()
		choice, err := m.read("Select an option (1-8):")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
				return nil
			}
			m.out.error(err)
		}
	}
}

func (m *menu) showMenu() {
	fmt.Fprintln(m.out.w)
	m.out.title("=== IMAGE EDITING MENU ===")
	for _, opt := range menuOptions {
		fmt.Fprintf(m.out.w, "%s. %s\n", styleNumber.Render(opt.key), opt.label)
	}
}

func (m *menu) dispatch(choice string) error {
	for _, opt := range menuOptions {
		if opt.key != strings.ToLower(choice) {
			continue
		}
		if opt.transform != "" {
			return m.transform(opt.transform)
		}
		switch opt.key {
		case "5":
			return m.undo()
		case "6":
			m.restore()
			return nil
		case "7":
			return m.save()
		case "8":
			m.out.info("Thanks for using %s!", appName)
			return errExit
		case "h":
			m.history()
			return nil
		}
	}

	m.out.warning("Invalid option. Please select an option from 1 to 8.")
	return nil
}

func (m *menu) transform(name string) error {
	algorithm, exists := algorithms.Get(name)
	if !exists {
		return fmt.Errorf("unknown transform: %s", name)
	}

	infos := algorithm.GetParameterInfo()
	raw := make([]string, len(infos))
	for i, info := range infos {
		line, err := m.read(info.Description + ":")
		if err != nil {
			return err
		}
		raw[i] = line
	}

	t, err := algorithms.ParseTransform(name, raw)
	if err != nil {
		return err
	}

	before := m.sess.Current()
	after, err := m.sess.Apply(t)
	if err != nil {
		return err
	}

	m.preview(t.String(), before, after)
	m.out.success("%s applied.", algorithm.GetLabel())
	m.out.detail("%s %s %s · %d step(s)", before, iconArrow, after, m.sess.Len()-1)
	return nil
}

func (m *menu) undo() error {
	before := m.sess.Current()
	restored, err := m.sess.Undo()
	if errors.Is(err, core.ErrNothingToUndo) {
		m.out.warning("No transforms to undo.")
		return nil
	}
	if err != nil {
		return err
	}

	m.preview("Undo", before, restored)
	m.out.success("Last transform undone.")
	m.out.detail("%s", m.evaluator.Compare(before, restored).Summary())
	return nil
}

func (m *menu) restore() {
	before := m.sess.Current()
	original := m.sess.RestoreOriginal()

	m.preview("Restore to original", before, original)
	m.out.success("Image restored to its original state.")
}

func (m *menu) save() error {
	path, err := m.read("Enter the path to save the image (with .jpg or .png extension):")
	if err != nil {
		return err
	}
	if err := m.c.Saver.Save(m.sess, path); err != nil {
		return err
	}
	m.out.success("Image saved to:")
	m.out.file(path)
	return nil
}

func (m *menu) history() {
	m.out.title("History")
	for i, entry := range m.sess.Entries() {
		m.out.detail("%d. %s (%s)", i, entry.Label(), entry.Buffer)
	}
}

func (m *menu) preview(title string, before, after *core.PixelBuffer) {
	if m.c.Preview == nil {
		return
	}
	if err := m.c.Preview.Show(title, before, after); err != nil {
		m.c.Logger.WithField("error", err).Warn("Preview failed")
	}
}
