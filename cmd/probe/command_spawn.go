package main

import (
	"errors"

	"al.essio.dev/pkg/shellescape"
	"github.com/SanjoDeundiak/process-probe/pkg/lib/logflags"
	"github.com/spf13/cobra"
)

func newSpawnCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spawn -- <command line> | <command> [args...]",
		Short: "Spawn a command line through the command processor and report its return code",
		Long: `Spawn a command through the command processor and report its return code.

A single argument is handed to the command processor verbatim, so it may use
pipes and other shell syntax. Several arguments are taken as a command and its
arguments and quoted so each reaches the command unchanged.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("command line to spawn is required; use -- to separate CLI flags from the command")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := opts.newProbe(cmd)
			if err != nil {
				return err
			}

			// The child's status is reported, not propagated as our exit code.
			result, err := p.Spawn(spawnCommandLine(args))
			if err != nil {
				logflags.ProbeLogger().WithError(err).Warn("Process creation failed")
			}
			return p.ReportSpawn(result)
		},
	}
	return cmd
}

// spawnCommandLine keeps a lone argument as a shell command line and quotes
// an argument vector so the shell does not re-split it.
func spawnCommandLine(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellescape.QuoteCommand(args)
}
