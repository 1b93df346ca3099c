package cli

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/hankgalt/design-space/pkg/utils"
)

// dialTemporal connects to the temporal server set by TEMPORAL_HOST & TEMPORAL_NAMESPACE.
func dialTemporal(ctx context.Context) (client.Client, error) {
	cfg := utils.BuildTemporalConfig()
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Host,
		Namespace: cfg.Namespace,
		Logger:    loggerFrom(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create temporal client: %w", err)
	}
	return c, nil
}
