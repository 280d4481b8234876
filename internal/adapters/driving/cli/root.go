// Package cli provides the command-line interface for keysent.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
	"github.com/custodia-labs/keysent/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by main.
var (
	rankService     driving.RankService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
	segmenter       driven.PostProcessorPipeline
	sourceWatcher   driven.SourceWatcher
)

var verbose bool

// Services aggregates the ports the commands drive.
type Services struct {
	Rank      driving.RankService
	Corpus    driving.CorpusService
	Settings  driving.SettingsService
	Segmenter driven.PostProcessorPipeline
	Watcher   driven.SourceWatcher
}

var rootCmd = &cobra.Command{
	Use:   "keysent",
	Short: "Rank the key sentences of articles",
	Long: `keysent scores every sentence of a set of articles by the sum of its
TF-IDF term weights, discounts sentences longer than average, and lists
the highest scoring ones.

Articles come from JSON, JSON Lines or YAML files holding
{"title": ..., "content": ...} records, or from plain text, Markdown and
HTML files and directories of them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details to stderr")
}

// SetServices wires the core services into the commands.
func SetServices(s Services) {
	rankService = s.Rank
	corpusService = s.Corpus
	settingsService = s.Settings
	segmenter = s.Segmenter
	sourceWatcher = s.Watcher
}

// currentServices returns the wired services.
func currentServices() Services {
	return Services{
		Rank:      rankService,
		Corpus:    corpusService,
		Settings:  settingsService,
		Segmenter: segmenter,
		Watcher:   sourceWatcher,
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
