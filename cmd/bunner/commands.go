package main

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/toyz/bunner/internal/cli"
	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/utils"
)

// globalFlags are shared by every command
type globalFlags struct {
	project string
	format  string
	verbose bool
	quiet   bool
}

// reportedError marks an error that has already been printed
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "bunner",
		Short: "Build-time dependency injection compiler for bunner applications",
		Long: `bunner statically analyzes a TypeScript project, validates its module graph
and generates the container wiring the runtime loads at startup.

Examples:
  bunner build                     # Build the project in the current directory
  bunner build --project ./app     # Build another project
  bunner build --format yaml       # Print diagnostics as YAML
  bunner dev --verbose             # Rebuild on every source change
  bunner clean                     # Delete the generated output directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&flags.project, "project", "p", ".", "Project root containing bunner.json or bunner.jsonc")
	root.PersistentFlags().StringVarP(&flags.format, "format", "f", string(diagnostics.FormatJSON), "Diagnostics output format (json, yaml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only show errors")

	root.AddCommand(
		newBuildCmd(flags, stdout, stderr),
		newDevCmd(flags, stdout, stderr),
		newCleanCmd(flags, stdout, stderr),
	)
	return root
}

// execute runs the CLI with args and returns the process exit code. Errors
// that a command did not report itself, such as flag errors, are printed here.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !stderrors.As(err, new(reportedError)) {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

type commandEnv struct {
	console  *utils.Console
	reporter *cli.ErrorReporter
	options  cli.Options
}

func newCommandEnv(flags *globalFlags, stdout, stderr io.Writer) (*commandEnv, error) {
	format, err := diagnostics.ParseFormat(flags.format)
	if err != nil {
		return nil, err
	}
	return &commandEnv{
		console:  utils.NewConsoleWithWriters(utils.LevelFromFlags(flags.verbose, flags.quiet), stdout, stderr),
		reporter: cli.NewErrorReporter(stderr, flags.verbose),
		options: cli.Options{
			ProjectRoot: flags.project,
			Format:      format,
		},
	}, nil
}

func newBuildCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Analyze the project and generate the container wiring once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newCommandEnv(flags, stdout, stderr)
			if err != nil {
				return err
			}

			env.console.Section("Bunner Build")
			builder, err := cli.NewBuilder(env.options, env.console, stderr)
			if err != nil {
				return err
			}

			result, err := builder.Build(cmd.Context())
			if err != nil {
				env.reporter.ReportError(err)
				return reportedError{err}
			}

			env.console.Summary("Build Complete!", map[string]interface{}{
				"Source files":    result.Files,
				"Modules":         result.Modules,
				"Diagnostics":     len(result.Diagnostics),
				"Files written":   len(result.Written),
				"Analysis cached": result.CacheHits,
			})
			env.console.Indent()
			for _, path := range result.Written {
				env.console.List("%s", path)
			}
			env.console.Unindent()
			return nil
		},
	}
}

func newDevCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "dev",
		Short: "Build, then rebuild whenever a source file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newCommandEnv(flags, stdout, stderr)
			if err != nil {
				return err
			}

			env.console.Section("Bunner Dev")
			env.options.Dev = true
			builder, err := cli.NewBuilder(env.options, env.console, stderr)
			if err != nil {
				return err
			}

			if err := builder.Dev(cmd.Context(), env.reporter); err != nil {
				env.reporter.ReportError(err)
				return reportedError{err}
			}
			return nil
		},
	}
}

func newCleanCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the generated output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newCommandEnv(flags, stdout, stderr)
			if err != nil {
				return err
			}

			dir, removed, err := cli.NewCleaner().Clean(flags.project)
			if err != nil {
				env.reporter.ReportError(err)
				return reportedError{err}
			}
			if removed {
				env.console.Success("Removed %s", dir)
			} else {
				env.console.Info("Nothing to clean, %s does not exist", dir)
			}
			return nil
		},
	}
}
