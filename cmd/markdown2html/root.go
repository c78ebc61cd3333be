package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gerunddev/markdown2html/internal/config"
	"github.com/gerunddev/markdown2html/internal/document"
	"github.com/gerunddev/markdown2html/internal/logger"
	"github.com/gerunddev/markdown2html/internal/styles"
)

const usageLine = "Usage: markdown2html README.md README.html"

// errReported marks failures whose message was already written to stderr
var errReported = errors.New("reported")

// newRootCmd builds the command tree. Running the root command with two
// arguments converts a single file.
func newRootCmd() *cobra.Command {
	var opts document.Options

	rootCmd := &cobra.Command{
		Use:   "markdown2html SRC DST",
		Short: "Convert markdown files to HTML",
		Long: `markdown2html converts a small markdown dialect to HTML.

Besides headings, lists, paragraphs, **bold** and __emphasis__ it supports
[[text]] (replaced by the MD5 digest of text) and ((text)) (text with every
c and C removed).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				fmt.Fprintln(cmd.ErrOrStderr(), usageLine)
				return errReported
			}
			return convertFile(cmd, args[0], args[1], opts)
		},
	}

	rootCmd.Flags().BoolVar(&opts.Standalone, "standalone", false, "Wrap the output in a complete HTML page")
	rootCmd.Flags().BoolVar(&opts.FrontMatter, "front-matter", false, "Read a leading YAML block as page metadata")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Also log to stderr at debug level")

	rootCmd.AddCommand(
		newBuildCmd(),
		newWatchCmd(),
		newDiffCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func convertFile(cmd *cobra.Command, src, dst string, opts document.Options) error {
	if err := document.ConvertFile(src, dst, opts); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Missing %s\n", src)
			return errReported
		}
		return err
	}
	return nil
}

// openLogger returns the file logger configured in cfg, teed to stderr
// when --verbose is set. The cleanup func is never nil.
func openLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, func()) {
	level, err := cfg.Level()
	if err != nil {
		level = log.InfoLevel
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		level = log.DebugLevel
	}

	if cfg.LogFile == "" {
		if verbose {
			return logger.NewWithLevel(cmd.ErrOrStderr(), level), func() {}
		}
		return logger.Discard(), func() {}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render("! Cannot open log file: "+err.Error()))
		return logger.Discard(), func() {}
	}
	cleanup := func() { f.Close() }

	if verbose {
		return logger.NewMultiLogger(level, f, cmd.ErrOrStderr()), cleanup
	}
	return logger.NewWithLevel(f, level), cleanup
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
