package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hankgalt/design-space/pkg/domain"
	"github.com/hankgalt/design-space/pkg/formula"
)

func EnumerateCmd() *cobra.Command {
	opts := &designOptions{}

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Enumerate a design space in process",
		Example: `  design-space enumerate -e Ba,Ti,O -n 2
  design-space enumerate -d design.csv -n 3 --sink sqlite --db-file design_space.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formulas, err := runEnumerate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, f := range formulas {
				fmt.Fprintln(cmd.OutOrStdout(), f.Formula)
			}
			return nil
		},
	}
	opts.addFlags(cmd)

	return cmd
}

// runEnumerate fetches the elements, enumerates the unique formulas & writes
// them to the selected sink as a single batch.
func runEnumerate(ctx context.Context, opts *designOptions) ([]domain.Formula, error) {
	l := loggerFrom(ctx)
	l.Debug("starting design space enumeration")

	if err := opts.resolvePaths(); err != nil {
		return nil, err
	}

	srcCfg, err := opts.sourceConfig()
	if err != nil {
		return nil, err
	}
	sinkCfg, err := opts.localSinkConfig()
	if err != nil {
		return nil, err
	}
	order, err := formula.ParseOrder(opts.order)
	if err != nil {
		return nil, err
	}

	src, err := srcCfg.BuildSource(ctx)
	if err != nil {
		return nil, err
	}
	defer src.Close(ctx)

	elements, err := src.Elements(ctx)
	if err != nil {
		return nil, err
	}

	comps, err := formula.NewEnumerator(formula.WithOrder(order)).EnumerateCompositions(elements, opts.numElements)
	if err != nil {
		return nil, err
	}

	formulas := make([]domain.Formula, len(comps))
	batch := &domain.BatchProcess[domain.Formula]{
		BatchId:    fmt.Sprintf("batch-0-%d", len(comps)),
		NextOffset: uint64(len(comps)),
		Records:    make([]*domain.BatchRecord[domain.Formula], len(comps)),
	}
	for i, c := range comps {
		formulas[i] = domain.Formula{Position: uint64(i), Formula: c.Formula(), Elements: c.Elements()}
		batch.Records[i] = &domain.BatchRecord[domain.Formula]{
			Data:  formulas[i],
			Start: uint64(i),
			End:   uint64(i) + 1,
		}
	}

	sink, err := sinkCfg.BuildSink(ctx)
	if err != nil {
		return nil, err
	}
	defer sink.Close(ctx)

	if _, err := sink.Write(ctx, batch); err != nil {
		return nil, err
	}
	l.Info("design space saved", "sink", sink.Name())

	l.Info("enumeration ended")
	if len(formulas) > 0 {
		l.Info(fmt.Sprintf("Example of %d formulas generated: %s", len(formulas), formulas[0].Formula))
	}
	return formulas, nil
}
