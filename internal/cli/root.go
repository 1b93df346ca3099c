package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/comfforts/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func RootCmd() *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:           "design-space",
		Short:         "Enumerate a design space of chemical formulas from a list of elements",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			l := buildLogger(verbosity)
			cmd.SetContext(logger.WithLogger(cmd.Context(), l))
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")

	root.AddCommand(
		EnumerateCmd(),
		WorkerCmd(),
		StartCmd(),
	)

	return root
}

// buildLogger returns the default logger, or a text logger at the requested
// level when verbosity is raised.
func buildLogger(verbosity int) *slog.Logger {
	switch {
	case verbosity >= 2:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case verbosity == 1:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return logger.GetSlogLogger()
}

// loggerFrom returns the command logger.
func loggerFrom(ctx context.Context) *slog.Logger {
	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		return logger.GetSlogLogger()
	}
	return l
}
