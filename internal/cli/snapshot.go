package cli

import (
	"context"
	"io"
	"time"

	"github.com/christiantyemele/rtop/internal/errors"
	"github.com/christiantyemele/rtop/internal/logger"
	"github.com/christiantyemele/rtop/internal/metrics"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// snapshotGap separates the two refreshes so CPU usage covers a real delta.
const snapshotGap = 200 * time.Millisecond

// snapshotCmd prints one reading as YAML and exits.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one CPU and memory reading as YAML",
	Long: `Take a single reading of per-core CPU usage and frequency plus memory
usage and print it as YAML. Works without a terminal.

Examples:
  rtop snapshot
  rtop snapshot > reading.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		src := metrics.NewHostSource(logger.NewEnvLogger("[metrics]"))
		return writeSnapshot(ctx, cmd.OutOrStdout(), src, snapshotGap)
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

// writeSnapshot primes src, waits gap, then encodes the second reading to w.
func writeSnapshot(ctx context.Context, w io.Writer, src metrics.Source, gap time.Duration) error {
	if _, err := src.Refresh(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(gap):
	}

	snap, err := src.Refresh(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Can't write snapshot",
			"Check that stdout is writable")
	}
	return enc.Close()
}
