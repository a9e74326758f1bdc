package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/pkg/readme"
)

// InspectCmd creates the inspect command
func InspectCmd() *cobra.Command {
	var (
		src     sourceFlags
		outline bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the options wren would write, without touching package.json",
		Long: `Fetches the README and prints every option with its settings identifier
and synthesized descriptor. With --outline, prints the README's headings
instead, which helps when the options section has moved.

Example:
  wren inspect
  wren inspect --outline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &src)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			p := newPatcher(cfg, log)

			if outline {
				doc, err := p.Source.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				for _, h := range readme.Outline(doc) {
					output.Step(strings.Repeat("  ", h.Level-1) + h.Markdown())
				}
				return nil
			}

			rows, err := p.Rows(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := p.Synthesize(rows)
			if err != nil {
				return err
			}

			output.Info(fmt.Sprintf("%d options in %s", len(entries), p.Source))
			for _, e := range entries {
				output.Plain("")
				output.Step(e.ID)
				output.KeyValue("switch", e.Row.SwitchName)
				output.KeyValue("type", string(e.Descriptor.Type))
				output.KeyValue("default", fmt.Sprint(e.Descriptor.Default))
				if len(e.Descriptor.Enum) > 0 {
					output.KeyValue("enum", strings.Join(e.Descriptor.Enum, ", "))
				}
				output.KeyValue("description", e.Descriptor.Description)
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&outline, "outline", false, "List the README headings instead of the options")

	return cmd
}
