package cli

import (
	"github.com/spf13/cobra"
)

// planCommand creates the plan command, a dry run of run.
func (c *CLI) planCommand() *cobra.Command {
	opts := defaultRunOpts()

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what run would do without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dryRun = true
			return c.runUpgrade(cmd.Context(), opts)
		},
	}

	addRunFlags(cmd, &opts)
	return cmd
}
