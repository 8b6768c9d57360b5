package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"image-transform-editor/internal/algorithms"
	"image-transform-editor/internal/core"
)

func (c *CLI) applyCommand() *cobra.Command {
	var ops []string

	cmd := &cobra.Command{
		Use:   "apply <input> <output>",
		Short: "Apply a sequence of transforms and save the result",
		Example: `  imgedit apply in.png out.png --op rotate=90 --op scale=2,2
  imgedit apply in.jpg out.jpg --op flip=vertical --op translate=10,-5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ops) == 0 {
				return fmt.Errorf("at least one --op is required")
			}

			transforms := make([]core.Transform, len(ops))
			for i, op := range ops {
				t, err := algorithms.ParseOp(op)
				if err != nil {
					return fmt.Errorf("--op %q: %w", op, err)
				}
				transforms[i] = t
			}

			sess, err := c.openSession(args[0])
			if err != nil {
				return err
			}

			for i, t := range transforms {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if _, err := sess.Apply(t); err != nil {
					return fmt.Errorf("step %d (%s): %w", i+1, t, err)
				}
			}

			if err := c.Saver.Save(sess, args[1]); err != nil {
				return err
			}

			p := printer{w: cmd.OutOrStdout()}
			p.success("Applied %d transform(s)", len(transforms))
			for _, t := range sess.Steps() {
				p.detail("%s", t)
			}
			p.detail("%s %s %s", sess.Original(), iconArrow, sess.Current())
			p.file(args[1])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&ops, "op", nil, "transform as name=value[,value], repeatable")
	return cmd
}

func (c *CLI) transformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List available transforms and their parameters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			p := printer{w: cmd.OutOrStdout()}
			all := algorithms.GetAllAlgorithms()
			for _, name := range algorithms.Names() {
				algorithm := all[name]
				p.title(name)
				p.detail("%s", algorithm.GetDescription())
				for _, info := range algorithm.GetParameterInfo() {
					line := fmt.Sprintf("%s (%s, default %v): %s", info.Name, info.Type, info.Default, info.Description)
					if len(info.Options) > 0 {
						line += fmt.Sprintf(" %v", info.Options)
					}
					p.detail("%s", line)
				}
			}
		},
	}
}
