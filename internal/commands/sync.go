package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/preview"
	"github.com/simonhull/firebird-suite/wren/internal/writer"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/patch"
)

type syncFlags struct {
	sourceFlags
	manifest string
	dryRun   bool
	review   bool
}

// SyncCmd creates the sync command
func SyncCmd() *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Patch dfmt options from the README into package.json",
		Long: `Fetches the dfmt README, parses the dfmt-specific properties table and
merges one configuration entry per option into package.json.

The manifest is written only after every row has been parsed and merged, so
any failure leaves the file untouched.

Example:
  wren sync
  wren sync --dry-run
  wren sync --diff --manifest editors/code/package.json
  wren sync --source-file ../dfmt/README.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "Path to package.json (overrides manifest.path)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show the diff without writing")
	cmd.Flags().BoolVar(&flags.review, "diff", false, "Show the diff and confirm before writing")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "diff")

	return cmd
}

func runSync(cmd *cobra.Command, flags *syncFlags) error {
	cfg, err := loadConfig(cmd, &flags.sourceFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest.Path = flags.manifest
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	path := cfg.Manifest.Path

	current, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	p := newPatcher(cfg, log)
	output.Info(fmt.Sprintf("Syncing dfmt options from %s", p.Source))

	res, err := p.Plan(cmd.Context(), current)
	if err != nil {
		return err
	}
	reportEntries(res)

	if !res.Changed() {
		output.Success(fmt.Sprintf("%s is already up to date (%d options)", path, len(res.Entries)))
		return nil
	}

	diff, err := preview.Unified(path, res.Before, res.After, 3)
	if err != nil {
		return err
	}

	op := &writer.UpdateFileOp{Path: path, Content: res.After, Summary: res.Summary()}
	opts := writer.ExecuteOptions{DryRun: flags.dryRun, Writer: cmd.OutOrStdout()}

	if flags.dryRun {
		output.Plain(preview.Render(diff, nil))
		return writer.Execute(cmd.Context(), []writer.Operation{op}, opts)
	}

	decision, err := preview.NewConfirmer(flags.review, cmd.OutOrStdout()).Confirm(path, diff)
	if err != nil {
		return err
	}
	if decision != preview.Write {
		output.Warn(fmt.Sprintf("Cancelled, %s left untouched", path))
		return nil
	}

	if err := writer.Execute(cmd.Context(), []writer.Operation{op}, opts); err != nil {
		return err
	}
	log.Info("manifest written", logger.F("path", path), logger.F("bytes", len(res.After)))
	output.Success(fmt.Sprintf("Patched %s (%s)", path, res.Summary()))
	return nil
}

func reportEntries(res *patch.Result) {
	for _, e := range res.Entries {
		state := "unchanged"
		switch {
		case e.Created:
			state = "added"
		case e.Changed:
			state = "updated"
		}
		output.Verbose(fmt.Sprintf("%-40s %-8s %s", e.ID, e.Descriptor.Type, state))
	}
}
