package main

import (
	"github.com/SanjoDeundiak/process-probe/pkg/lib/config"
	"github.com/SanjoDeundiak/process-probe/pkg/lib/logflags"
	"github.com/SanjoDeundiak/process-probe/pkg/lib/probe"
	"github.com/spf13/cobra"
)

type launcherFactory func(cfg *config.Config) (probe.Launcher, error)

type rootOptions struct {
	configPath string
	shell      string
	command    string
	verbose    bool

	newLauncher launcherFactory
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(newShellLauncher)
}

func newRootCmd(newLauncher launcherFactory) *cobra.Command {
	opts := &rootOptions{newLauncher: newLauncher}

	root := &cobra.Command{
		Use:           "probe",
		Short:         "Check for a command processor, spawn a command through it and report the parent PID",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := opts.newProbe(cmd)
			if err != nil {
				return err
			}
			return p.Run(cfg.Command)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.shell, "shell", config.DefaultShell, "command processor invocation the command line is appended to")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")
	root.Flags().StringVar(&opts.command, "command", config.DefaultCommand, "command line to spawn")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newSpawnCmd(opts))
	root.AddCommand(newPidCmd(opts))

	return root
}

// newProbe resolves configuration (flags over env over file) and builds a probe
// writing to the command's output streams.
func (opts *rootOptions) newProbe(cmd *cobra.Command) (*probe.Probe, *config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("shell") {
		cfg.Shell = opts.shell
	}
	if flags.Lookup("command") != nil && flags.Changed("command") {
		cfg.Command = opts.command
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	logflags.Setup(cfg.Verbose, cmd.ErrOrStderr())

	launcher, err := opts.newLauncher(cfg)
	if err != nil {
		return nil, nil, err
	}

	p := probe.New(launcher, probe.Options{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	return p, cfg, nil
}

func newShellLauncher(cfg *config.Config) (probe.Launcher, error) {
	shell, err := cfg.ShellArgs()
	if err != nil {
		return nil, err
	}
	return probe.NewShellLauncher(shell...)
}
