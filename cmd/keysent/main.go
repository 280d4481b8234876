// Command keysent ranks the key sentences of a set of articles.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/keysent/internal/adapters/driven/config/file"
	"github.com/custodia-labs/keysent/internal/adapters/driven/loader"
	"github.com/custodia-labs/keysent/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/keysent/internal/adapters/driving/cli"
	"github.com/custodia-labs/keysent/internal/connectors/filesystem"
	"github.com/custodia-labs/keysent/internal/core/services"
	"github.com/custodia-labs/keysent/internal/logger"
	"github.com/custodia-labs/keysent/internal/normalisers"
	"github.com/custodia-labs/keysent/internal/postprocessors"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	logger.SetVerbose(logger.VerboseFromEnv())

	configDir := os.Getenv("KEYSENT_CONFIG_DIR")
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.BuildPipeline(registry, settingsService.PipelineConfig())
	if err != nil {
		return fmt.Errorf("building sentence pipeline: %w", err)
	}
	logger.Debug("pipeline: %s", pipeline)

	corpusService := services.NewCorpusService(
		loader.New(normalisers.DefaultRegistry(), pipeline),
		memory.NewCorpusStore(),
	)
	watcher := filesystem.New()
	defer func() { _ = watcher.Close() }()

	cli.SetServices(cli.Services{
		Rank:      services.NewRankService(corpusService),
		Corpus:    corpusService,
		Settings:  settingsService,
		Segmenter: pipeline,
		Watcher:   watcher,
	})
	cli.SetVersion(version)

	return cli.Execute()
}
