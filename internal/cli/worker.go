package cli

import (
	"github.com/comfforts/logger"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/worker"

	ds "github.com/hankgalt/design-space"
)

func WorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run a temporal worker for design space workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := loggerFrom(ctx)

			c, err := dialTemporal(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			w := worker.New(c, ds.ApplicationName, worker.Options{
				BackgroundActivityContext: logger.WithLogger(ctx, l),
				Identity:                  ds.HostID,
			})
			ds.RegisterEnumeration(w)

			l.Info("worker started", "task-queue", ds.ApplicationName, "host-id", ds.HostID)
			return w.Run(worker.InterruptCh())
		},
	}
}
