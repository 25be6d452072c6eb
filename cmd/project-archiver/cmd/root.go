package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/project-archiver/internal/config"
	"github.com/oshokin/project-archiver/internal/logger"
	"github.com/oshokin/project-archiver/internal/service/archiver"
	"github.com/oshokin/project-archiver/internal/version"
)

// flags holds the values bound to the command line.
type flags struct {
	// configPath to an optional archive plan YAML file.
	configPath string
	// outputPath overrides the archive location.
	outputPath string
	// logLevel is the minimum level of log messages.
	logLevel string
	// force skips the running-instance check.
	force bool
}

// Execute runs the project-archiver CLI and exits with non-zero status on error.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error(context.Background(), err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	opts := new(flags)

	rootCmd := &cobra.Command{
		Use:   archiver.ExecutableName + " [project-root]",
		Short: "Package an Android project's sources into a zip archive",
		Long: `Packages the project's sources, build scripts, wrapper, rules file and
documentation into a single deflate-compressed zip archive.

Build output, IDE metadata, VCS internals and secrets are left out. After the
archive is written it is reopened and checked for a list of important files;
a missing file is reported but does not fail the run.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return applyLogLevel(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &archiver.Options{
				ConfigPath:  opts.configPath,
				ArchivePath: opts.outputPath,
				Output:      cmd.OutOrStdout(),
				Force:       opts.force,
			}

			if len(args) > 0 {
				options.ProjectRoot = args[0]
			}

			_, err := archiver.Run(ctx, options)

			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to an archive plan YAML file (built-in plan if empty)")
	rootCmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "info", "log level: debug, info, warn or error")
	rootCmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "archive path (defaults to the plan's archive name)")
	rootCmd.Flags().BoolVarP(&opts.force, "force", "f", false, "run even if another archiver is active; otherwise that case exits 1 whatever archive exists")

	rootCmd.AddCommand(newVerifyCommand(opts), newConfigCommand())
	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// newVerifyCommand checks an existing archive against the plan's manifest.
func newVerifyCommand(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [archive]",
		Short: "Check an existing archive for the important files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := &archiver.VerifyOptions{
				ConfigPath: opts.configPath,
				Output:     cmd.OutOrStdout(),
			}

			if len(args) > 0 {
				options.ArchivePath = args[0]
			}

			_, err := archiver.VerifyArchive(cmd.Context(), options)

			return err
		},
	}
}

// newConfigCommand writes the built-in plan so it can be edited.
func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the built-in archive plan as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Archive plan written to", path)

			return nil
		},
	}
}

func applyLogLevel(s string) error {
	level, ok := logger.ParseLogLevel(s)
	if !ok {
		return fmt.Errorf("unknown log level %q", s)
	}

	logger.SetLevel(level)

	return nil
}
