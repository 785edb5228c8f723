package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/southpole/internal/config"
	"github.com/rshade/southpole/internal/emissions"
)

// NewConstantsCmd creates the "constants" command, which prints the
// effective constants table as YAML.
func NewConstantsCmd() *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "constants",
		Short: "Print the emissions constants table",
		Long: `Print every physical and emissions constant used by the model as YAML. With
--scenario, the file's constants overrides are applied first. The output is a
valid constants section for a scenario or sweep file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := emissions.DefaultConstants()
			if scenarioPath != "" {
				file, err := config.LoadScenarioFile(scenarioPath)
				if err != nil {
					return err
				}
				c = file.Constants
			}
			return config.WriteConstants(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Apply the constants overrides of this scenario file")

	return cmd
}
