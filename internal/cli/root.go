package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/christiantyemele/rtop/internal/errors"
	"github.com/spf13/cobra"
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "rtop",
	Short: "Live CPU and memory dashboard for this machine",
	Long: `rtop samples per-core CPU usage and frequency plus memory usage in the
background and renders them as a live terminal dashboard.

Keys:
  q / Ctrl+C  Quit
  any key     Shown in the header as a liveness check

Environment:
  RTOP_SAMPLE_INTERVAL  pause between samples (default 50ms)
  RTOP_TICK_INTERVAL    render cadence (default 16ms)
  RTOP_LOG_FILE         write logs here while the dashboard runs
  RTOP_DEBUG            include debug logs`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context())
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders err for the terminal. Structured errors carry their
// own layout; cobra's usage errors get a hint.
func formatError(err error) string {
	var rtErr *errors.Error
	if errors.As(err, &rtErr) {
		return rtErr.Error()
	}
	if isUnknownCommandError(err) {
		return errors.New(errors.ErrConfig, err.Error(), "Run 'rtop --help' to see available commands").Error()
	}
	return "✗ " + err.Error() + "\n"
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
