package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/config"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/options"
	"github.com/simonhull/firebird-suite/wren/pkg/patch"
	"github.com/simonhull/firebird-suite/wren/pkg/readme"
)

// sourceFlags are shared by every command that reads the README
type sourceFlags struct {
	url        string
	sourceFile string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "", "README URL (overrides source.url)")
	cmd.Flags().StringVar(&f.sourceFile, "source-file", "", "Read the README from a local file instead of fetching it")
}

// loadConfig reads the --config file and applies source flag overrides.
func loadConfig(cmd *cobra.Command, src *sourceFlags) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if src != nil {
		if cmd.Flags().Changed("url") {
			cfg.Source.URL = src.url
			cfg.Source.File = ""
		}
		if cmd.Flags().Changed("source-file") {
			cfg.Source.File = src.sourceFile
		}
	}
	return cfg, nil
}

// newLogger honours log.level, raised to debug by --verbose.
func newLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)
	return log, nil
}

func newSource(cfg *config.Config) readme.Source {
	if cfg.Source.File != "" {
		return &readme.FileSource{Path: cfg.Source.File}
	}
	return &readme.HTTPSource{URL: cfg.Source.URL, Timeout: cfg.Source.Timeout}
}

func newPatcher(cfg *config.Config, log logger.Logger) *patch.Patcher {
	return &patch.Patcher{
		Source:  newSource(cfg),
		Heading: cfg.Source.Heading,
		Normalizer: options.Normalizer{
			SwitchPrefix: cfg.Options.SwitchPrefix,
			Namespace:    cfg.Options.Namespace,
		},
		Scope:  cfg.Options.Scope,
		Logger: log,
	}
}
