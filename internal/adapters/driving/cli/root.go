// Package cli implements the flowatlas command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/config/file"
	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/index/memory"
	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/ingest/xml"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/services"
	"github.com/flowatlas-labs/flowatlas-cli/internal/logger"
)

var (
	verbose     bool
	configPath  string
	datasetPath string

	cfg    *file.Config
	holder *memory.Holder

	queryService   driving.QueryService
	catalogService driving.CatalogService
)

var rootCmd = &cobra.Command{
	Use:   "flowatlas",
	Short: "Query engine for enterprise data-flow metadata",
	Long: `FlowAtlas indexes data-flow metadata (systems, interfaces, formats,
transmission methods) and resolves natural-language queries against it.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.flowatlas/config.toml)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the XML dataset (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	path := configPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
	}

	var err error
	cfg, err = file.Load(path)
	if err != nil {
		return err
	}

	if datasetPath != "" {
		cfg.Dataset = datasetPath
	}

	return nil
}

// ensureIndex loads the dataset and wires the services. Commands that
// operate on the index call it lazily so that version and config
// commands work without a dataset.
func ensureIndex(cmd *cobra.Command) error {
	if holder != nil {
		return nil
	}
	if cfg == nil {
		return errors.New("configuration not loaded")
	}

	loader := xml.NewLoader()
	dataset, err := loader.Load(cmd.Context(), cfg.Dataset)
	if err != nil {
		return fmt.Errorf("loading dataset %s: %w", cfg.Dataset, err)
	}

	snap, err := memory.Build(dataset, cfg.Aliases)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	holder = memory.NewHolder(snap)
	queryService = services.NewQueryService(holder, cfg.Scoring)
	catalogService = services.NewCatalogService(holder)

	logger.Debug("index ready: %d flows, %d systems",
		len(snap.Flows()), len(snap.Systems()))
	return nil
}
