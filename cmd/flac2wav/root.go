// ABOUTME: Root cobra command for flac2wav
// ABOUTME: Chooses single-file or batch mode and wires config, logging and progress
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Resonate-Protocol/flac2wav/internal/config"
	"github.com/Resonate-Protocol/flac2wav/internal/logging"
	"github.com/Resonate-Protocol/flac2wav/internal/transcode"
	"github.com/Resonate-Protocol/flac2wav/internal/version"
)

type mode int

const (
	modeSingle mode = iota
	modeBatch
)

type invocation struct {
	mode   mode
	inputs []string
	output string
}

// parseInvocation splits positionals into inputs and a destination. Two
// arguments name a file pair unless forceDir is set; more always mean batch.
func parseInvocation(args []string, forceDir bool) (invocation, error) {
	if len(args) < 2 {
		return invocation{}, errors.New("expected an input and an output")
	}
	last := len(args) - 1
	inv := invocation{inputs: args[:last], output: args[last]}
	if len(args) == 2 && !forceDir {
		inv.mode = modeSingle
	} else {
		inv.mode = modeBatch
	}
	return inv, nil
}

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	noClobber  bool
	progress   bool
	dir        bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "flac2wav <input> <output> | flac2wav <input>... <dir>",
		Short: "Decode FLAC files to WAV",
		Long: "Decode a FLAC file into a WAV file, or decode several FLAC files into a\n" +
			"directory. The destination directory is created when missing.",
		Args:          cobra.MinimumNArgs(2),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := parseInvocation(args, flags.dir)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, cfg, inv)
		},
	}

	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format (auto, console, json)")
	rootCmd.Flags().BoolVar(&flags.noClobber, "no-clobber", false, "Fail instead of replacing existing WAV files")
	rootCmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar on terminals")
	rootCmd.Flags().BoolVarP(&flags.dir, "dir", "d", false, "Treat the last argument as a directory")

	return rootCmd
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if cmd.Flags().Changed("no-clobber") {
		cfg.Output.Overwrite = !flags.noClobber
	}
	if cmd.Flags().Changed("progress") {
		cfg.Output.Progress = flags.progress
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatReport renders the success line for one file, with its output size
func formatReport(r transcode.Report) string {
	return fmt.Sprintf("decoded: %s (%s)", r, humanize.Bytes(uint64(max(r.Bytes, 0))))
}

func run(stdout, stderr io.Writer, logger *slog.Logger, cfg *config.Config, inv invocation) error {
	opts := []transcode.Option{
		transcode.WithLogger(logger),
		transcode.WithOverwrite(cfg.Output.Overwrite),
	}
	if cfg.Output.Progress && logging.IsTerminal(stderr) {
		opts = append(opts, transcode.WithObserver(newProgressObserver(stderr)))
	}
	tr := transcode.New(opts...)

	printReport := func(r transcode.Report) {
		fmt.Fprintln(stdout, formatReport(r))
	}

	switch inv.mode {
	case modeSingle:
		report, err := tr.File(inv.inputs[0], inv.output)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	default:
		logger.Info("batch started", "inputs", len(inv.inputs), "dir", inv.output)
		if err := tr.All(inv.inputs, inv.output, printReport); err != nil {
			return err
		}
		logger.Info("batch finished", "inputs", len(inv.inputs), "dir", inv.output)
		return nil
	}
}
