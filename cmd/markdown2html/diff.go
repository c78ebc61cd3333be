package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/markdown2html/internal/diff"
	"github.com/gerunddev/markdown2html/internal/document"
	"github.com/gerunddev/markdown2html/internal/styles"
)

func newDiffCmd() *cobra.Command {
	var (
		opts  document.Options
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "diff SRC HTML",
		Short: "Show how HTML would change if SRC were converted again",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			generate := diff.Generate
			if plain {
				generate = diff.Plain
			}

			out, err := generate(args[0], args[1], opts)
			if err != nil {
				if errors.Is(err, document.ErrNotFound) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Missing %s\n", args[0])
					return errReported
				}
				return err
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ "+args[1]+" is up to date"))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the raw unified diff")
	cmd.Flags().BoolVar(&opts.Standalone, "standalone", false, "Compare against standalone output")
	cmd.Flags().BoolVar(&opts.FrontMatter, "front-matter", false, "Read a leading YAML block as page metadata")
	return cmd
}
