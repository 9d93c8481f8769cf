package main

import (
	"fmt"
	"os"

	"github.com/SanjoDeundiak/process-probe/pkg/lib/config"
	"github.com/SanjoDeundiak/process-probe/pkg/lib/logflags"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("PROBE_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logflags.Setup(cfg.Verbose, os.Stderr)
	logger = logflags.ServerLogger()

	shell, err := cfg.ShellArgs()
	if err != nil {
		return err
	}
	launcher, err := newLauncher(shell)
	if err != nil {
		return fmt.Errorf("failed to create launcher: %w", err)
	}

	srv, err := NewGRPCServer(cfg, launcher)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	logger.Infof("probe server listening at %v (tls: %t)", srv.Addr(), cfg.TLSEnabled())
	if addr := srv.MetricsAddr(); addr != nil {
		logger.Infof("metrics available at http://%v/metrics", addr)
	}
	if err := srv.Serve(); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
