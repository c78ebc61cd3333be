package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/markdown2html/internal/config"
	"github.com/gerunddev/markdown2html/internal/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var (
		sourceDir string
		outputDir string
		overwrite bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if _, err := os.Stat(path); err == nil && !overwrite {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if sourceDir != "" {
				cfg.SourceDir = sourceDir
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if err := cfg.ExpandPaths(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ Wrote ")+styles.PathStyle.Render(path))
			return nil
		},
	}
	initCmd.Flags().StringVar(&sourceDir, "source", "", "Directory holding markdown sources")
	initCmd.Flags().StringVar(&outputDir, "output", "", "Directory receiving HTML output")
	initCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), describeConfig(cfg))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func describeConfig(cfg *config.Config) string {
	exclude := "(none)"
	if len(cfg.ExcludePatterns) > 0 {
		exclude = strings.Join(cfg.ExcludePatterns, ", ")
	}

	rows := [][2]string{
		{"Config file", config.ConfigPath()},
		{"State file", config.StateFilePath()},
		{"Source dir", cfg.SourceDir},
		{"Output dir", cfg.OutputDir},
		{"Log file", cfg.LogFile},
		{"Log level", cfg.LogLevel},
		{"Interval", cfg.Interval.String()},
		{"Standalone", fmt.Sprint(cfg.Standalone)},
		{"Front matter", fmt.Sprint(cfg.FrontMatter)},
		{"Exclude", exclude},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%-13s", row[0])))
		b.WriteString(styles.TextStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}
