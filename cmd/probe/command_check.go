package main

import "github.com/spf13/cobra"

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether a command processor is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := opts.newProbe(cmd)
			if err != nil {
				return err
			}
			return p.ReportAvailability(p.CheckAvailability())
		},
	}
	return cmd
}
