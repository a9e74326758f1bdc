package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/pkg/config"
)

// RootCmd creates and returns the root command for the wren CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "wren",
		Short: "Keep code-d's dfmt settings in sync with the dfmt README",
		Long: `Wren reads the "dfmt-specific properties" table from the dfmt README and
patches matching configuration entries into an extension's package.json.

Existing entries keep any fields wren does not manage (titles, markdown
descriptions, ordering), so rerunning it only ever touches what changed upstream.`,
		Version:       wren.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetOutput(cmd.OutOrStdout())
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringP("config", "c", config.FileName, "Path to configuration file")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Wren v%s\n", wren.Version)
		},
	})

	return cmd
}
