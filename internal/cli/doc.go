// Package cli implements the rtop command-line interface.
//
// The root command runs the live dashboard: it loads the RTOP_* environment
// configuration, refuses to start without a terminal, starts a sampler
// against the host's metrics source and hands the shared snapshot cell to
// the Bubble Tea model. When the program exits the sampler is stopped and
// joined before control returns.
//
//	rtop                 - Live CPU and memory dashboard
//	rtop snapshot        - Print one reading as YAML
//	rtop version         - Print build information
//	rtop completion bash - Shell completion scripts
//
// Errors returned from commands are structured *errors.Error values;
// Execute prints them and exits with status 1.
package cli
