package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelup/pkg/transform"
)

// configCommand creates the config command, which prints the effective
// parameter table as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var config string
	alpha := uint8(transform.DefaultAlphaThreshold)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective per-kind parameters as TOML",
		Long: `Print the per-kind transform parameters after applying --config.
The output is a valid tuning file and can be used as a starting point:

  pixelup config > pixelup.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTuning(config, alpha)
			if err != nil {
				return err
			}
			c.Logger.Debug("effective tuning", "config", config, "alpha_threshold", alpha)
			return t.WriteTOML(os.Stdout)
		},
	}

	addTuningFlags(cmd, &config, &alpha)
	return cmd
}
