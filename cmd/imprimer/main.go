// Command imprimer is the interactive print-spooler supervisor: it
// reads operator command lines (from stdin or a script file), maintains
// the conversion registry and printer/job state machine, and dispatches
// conversion pipelines to printers (spec.md).
//
// Invoked as `imprimer __leader`, it instead runs as a re-exec'd
// pipeline leader (dispatch.RunLeader) rather than the interactive
// loop; the spawner is the only caller that does this.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"imprimer/internal/command"
	"imprimer/internal/config"
	"imprimer/internal/dispatch"
	"imprimer/internal/events"
	"imprimer/internal/lineio"
	"imprimer/internal/printerdev"
	"imprimer/internal/typegraph"
	"imprimer/pkg/fmtt"
)

func main() {
	// Checked ahead of cobra parsing: the spawner re-execs this same
	// binary as the pipeline leader with a single positional argument,
	// not a normal flag/subcommand invocation (spec.md §4.3.3).
	if len(os.Args) >= 2 && os.Args[1] == dispatch.LeaderArg {
		dispatch.RunLeader()
		return // unreachable; RunLeader calls os.Exit
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		scriptPath string
		spoolDir   string
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "imprimer",
		Short: "Interactive print-spooler supervisor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSupervisor(scriptPath, spoolDir, configPath, logLevel)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "read commands from this file instead of stdin")
	cmd.Flags().StringVar(&spoolDir, "spool-dir", "", "directory for printer output files (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to an imprimer.yaml config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	return cmd
}

func runSupervisor(scriptPath, spoolDirFlag, configPath, logLevelFlag string) error {
	cfg, err := config.NewLoader().Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if spoolDirFlag != "" {
		cfg.SpoolDir = spoolDirFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	log := buildLogger(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	printers, err := printerdev.New(cfg.SpoolDir)
	if err != nil {
		return fmt.Errorf("init printer transport: %w", err)
	}

	registry := typegraph.New()
	sink := events.NewZapSink(log)
	sup := dispatch.NewSupervisor(log, registry, printers, sink, dispatch.Config{
		RetentionWindow: cfg.RetentionWindow,
		MaxPreflight:    cfg.MaxPreflight,
	})

	var input io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		input = f
	}

	src := lineio.New(input)
	src.PreBlock = sup.PreBlock

	disp := command.New(sup, sink, os.Stdout)

	for {
		line, ok := src.Next()
		if !ok {
			if err := src.Err(); err != nil {
				fmtt.PrintErrChain(err)
				os.Exit(-1)
			}
			if scriptPath != "" {
				os.Exit(0) // clean EOF of a scripted input file (spec.md §6)
			}
			os.Exit(-1) // stdin EOF is not a clean shutdown (original_source/src/cli.c read_commands_from_stdin)
		}

		if err := disp.Dispatch(line); err != nil {
			if errors.Is(err, command.Quit) {
				os.Exit(-1)
			}
			fmtt.PrintErrChain(err)
		}

		sup.AfterDispatch()
	}
}

// buildLogger mirrors the teacher's development encoder config
// (cmd/zmux-server/main.go's buildLogger / cmd/bulk-delete's inline
// equivalent): colored level, no timestamp key, no stacktrace/caller.
func buildLogger(level string) *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true

	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(level)); err == nil {
		logConfig.Level.SetLevel(zl)
	}

	return zap.Must(logConfig.Build()).Named("main")
}
