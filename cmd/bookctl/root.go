package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/builder-service/internal/platform/logging"
)

// errRejected reports that the build failed validation. The violations
// have already been written to stderr.
var errRejected = errors.New("rejected")

// newRootCmd returns the bookctl command tree.
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "bookctl",
		Short: "Build books and phones without running the service.",
		Long: `bookctl runs the same builders as the builder service. ` +
			`Books are printed as JSON; rejected drafts print every violated rule and exit 1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newBuildCmd(func(cmd *cobra.Command) *slog.Logger { return newLogger(cmd.ErrOrStderr(), logLevel) }),
		newPhoneCmd(func(cmd *cobra.Command) *slog.Logger { return newLogger(cmd.ErrOrStderr(), logLevel) }),
	)

	return root
}

// newLogger writes pretty logs to w so stdout only carries results.
func newLogger(w io.Writer, level string) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "bookctl",
		Version: "dev",
	}, w)
}
