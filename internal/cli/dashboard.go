package cli

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christiantyemele/rtop/internal/config"
	"github.com/christiantyemele/rtop/internal/errors"
	"github.com/christiantyemele/rtop/internal/logger"
	"github.com/christiantyemele/rtop/internal/metrics"
	"github.com/christiantyemele/rtop/internal/monitor"
	"github.com/christiantyemele/rtop/internal/sampler"
	"golang.org/x/term"
)

// stdoutIsTerminal is swapped in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// dashboardCommand starts the sampler and runs the TUI until the user quits.
func dashboardCommand(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !stdoutIsTerminal() {
		return errors.New(errors.ErrTerminal,
			"rtop needs an interactive terminal",
			"Run it directly in a terminal, or use 'rtop snapshot' for a one-off reading")
	}

	restoreLog, err := redirectLogs(cfg.LogFile)
	if err != nil {
		return err
	}

	cell := sampler.NewLatest()
	s := sampler.New(
		metrics.NewHostSource(logger.NewEnvLogger("[metrics]")),
		cell,
		sampler.WithInterval(cfg.SampleInterval),
		sampler.WithLogger(logger.NewEnvLogger("[sampler]")),
	)
	if err := s.Start(ctx); err != nil {
		restoreLog()
		return err
	}

	model := monitor.NewModel(cell, monitor.WithTickInterval(cfg.TickInterval))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	// Join the sampler before the terminal is handed back.
	s.Stop()
	finishLogs(restoreLog, cfg.LogFile, s.Err())

	if runErr != nil {
		return errors.WrapWithCode(runErr, errors.ErrRender,
			"Dashboard stopped unexpectedly",
			"The terminal has been restored. Set RTOP_LOG_FILE to capture logs and try again")
	}
	return nil
}

// finishLogs restores the log writer and reports a sampler failure. With a
// log file the failure is written there; otherwise it goes to the restored
// writer so it is still visible once the dashboard has exited.
func finishLogs(restore func(), logFile string, samplerErr error) {
	if samplerErr != nil && logFile != "" {
		log.Printf("[rtop] sampler ended with error: %v", samplerErr)
	}
	restore()
	if samplerErr != nil && logFile == "" {
		log.Printf("[rtop] sampler ended with error: %v", samplerErr)
	}
}

// redirectLogs points the std logger away from the terminal while the TUI
// owns it. With no path, output is discarded. The returned func restores
// the previous writer and prefix.
func redirectLogs(path string) (func(), error) {
	prev, prevPrefix := log.Writer(), log.Prefix()

	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}

	f, err := tea.LogToFile(path, "rtop")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file "+path,
			"Check RTOP_LOG_FILE points to a writable location")
	}
	return func() {
		log.SetOutput(prev)
		log.SetPrefix(prevPrefix)
		_ = f.Close()
	}, nil
}
