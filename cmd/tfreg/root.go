// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for tfreg.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/internal/config"
	"github.com/blackroad/tfregistry/internal/issue"
	"github.com/blackroad/tfregistry/internal/store"
	"github.com/blackroad/tfregistry/pkg/registry"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// dbPath overrides the database file from the command line
	dbPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "tfreg",
		Short: "A registry of parameterized Terraform module templates",
		Long: TitleStyle.Render("tfreg") + SubtitleStyle.Render(" - Terraform module registry") + `

tfreg manages a local catalog of parameterized Terraform modules: each
module pairs an HCL template (with ` + "`${var.<name>}`" + ` placeholders) with a
typed variable schema, output declarations, and metadata. Rendering a
module substitutes caller-supplied values into the template.

` + SubtitleStyle.Render("Quick Start:") + `
  1. List the builtin catalog:     tfreg list
  2. Render a module:              tfreg generate aws_vpc --var name=core
  3. Preview the resource changes: tfreg plan aws_vpc --var name=core

` + SubtitleStyle.Render("Examples:") + `
  tfreg list -p aws               List AWS modules
  tfreg search bucket             Find modules mentioning "bucket"
  tfreg docs aws_ec2_instance     Render module documentation
  tfreg validate main.tf          Structurally validate a template file`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/tfreg/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ~/.blackroad/terraform-modules.db)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(bumpCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig applies the --config override before any command runs.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
}

// openRegistry loads configuration, opens the backing store, and seeds the
// builtin catalog. The returned closer releases the database handle.
func openRegistry(cmd *cobra.Command) (*registry.Registry, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, issue.WrapWithOperation(err, "load configuration")
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	logger := newLogger()
	st, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, nil, nil, issue.WrapWithContext(err, "open module database", cfg.DatabasePath)
	}

	reg := registry.New(st)
	if cfg.SeedBuiltins {
		if err := registry.Seed(cmd.Context(), reg, logger); err != nil {
			st.Close()
			return nil, nil, nil, issue.WrapWithOperation(err, "seed builtin modules")
		}
	}
	return reg, cfg, func() { st.Close() }, nil
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail suppresses the usage dump and folds ActionableError suggestions into
// the message printed by the outer executor.
func fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	return errors.New(formatErrorForDisplay(err, verbose))
}
