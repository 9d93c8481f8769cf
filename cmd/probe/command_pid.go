package main

import "github.com/spf13/cobra"

func newPidCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pid",
		Short: "Report the identifier of the probing process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := opts.newProbe(cmd)
			if err != nil {
				return err
			}
			return p.ReportPID(p.CurrentProcessID())
		},
	}
	return cmd
}
