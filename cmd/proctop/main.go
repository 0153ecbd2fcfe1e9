package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/config"
	"github.com/prabalesh/proctop/internal/logging"
	"github.com/prabalesh/proctop/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// run returns the exit code. Deferred calls, the logger flush included,
// complete before main exits.
func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, getenv)
	if err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			fmt.Fprint(stderr, "Usage of proctop:\n"+config.Usage())
			return 0
		}
		fmt.Fprintf(stderr, "proctop: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "proctop: %v\n", err)
		return 1
	}
	defer logger.Sync()

	stats := collector.NewStatsCollector(collector.Options{
		Fs:            afero.NewOsFs(),
		ProcRoot:      cfg.ProcRoot,
		OSReleasePath: cfg.OSReleasePath,
		PasswdPath:    cfg.PasswdPath,
		Logger:        logger,
	})

	if cfg.JSON {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats.Snapshot()); err != nil {
			logger.Error("encode snapshot", zap.Error(err))
			return 1
		}
		return 0
	}

	logger.Info("starting display",
		zap.String("proc_root", cfg.ProcRoot),
		zap.Duration("interval", cfg.Interval),
		zap.Int("limit", cfg.ProcessLimit),
	)
	p := tea.NewProgram(ui.NewApp(stats, cfg.Interval, cfg.ProcessLimit), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("display exited", zap.Error(err))
		return 1
	}
	return 0
}
