package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/keysent/internal/connectors/filesystem"
	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/services"
	"github.com/custodia-labs/keysent/internal/logger"
)

var (
	rankTopK      int
	rankAlpha     float64
	rankScope     string
	rankStopWords string
	rankIDF       string
	rankNorm      string
	rankMinDF     int
	rankStem      bool
	rankJSONOut   bool
	rankWatch     bool
)

var rankCmd = &cobra.Command{
	Use:   "rank PATH [PATH...]",
	Short: "Rank the key sentences of articles",
	Long: `Loads the articles at the given paths and lists their highest scoring
sentences.

A sentence scores the sum of the TF-IDF weights of its terms, divided by
1 + alpha * (tokens above the average sentence length). With --scope pooled
every sentence competes with every other; with --scope per_document each
article is ranked on its own and --top-k applies per article.

Flags override the configured defaults (see 'keysent settings').`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

func init() {
	addRankFlags(rankCmd)
	rankCmd.Flags().BoolVar(&rankJSONOut, "json", false, "output results as JSON")
	rankCmd.Flags().BoolVarP(&rankWatch, "watch", "w", false, "rank again whenever the inputs change")
	rootCmd.AddCommand(rankCmd)
}

// addRankFlags registers the ranking option flags read by rankOptions.
func addRankFlags(cmd *cobra.Command) {
	defaults := domain.DefaultRankOptions()
	f := cmd.Flags()
	f.IntVarP(&rankTopK, "top-k", "n", defaults.TopK, "number of sentences (per article with --scope per_document)")
	f.Float64Var(&rankAlpha, "alpha", defaults.LengthPenalty, "length penalty coefficient, 0 disables the penalty")
	f.StringVar(&rankScope, "scope", defaults.Scope.String(), "ranking scope: pooled or per_document")
	f.StringVar(&rankStopWords, "stop-words", domain.StopWordsEnglish, "stop words: english, none, or a word list file")
	f.StringVar(&rankIDF, "idf", defaults.IDF.String(), "idf formula: smooth or plain")
	f.StringVar(&rankNorm, "norm", defaults.Norm.String(), "weight normalisation: none or l2")
	f.IntVar(&rankMinDF, "min-df", defaults.MinDocumentFrequency, "drop terms found in fewer sentences")
	f.BoolVar(&rankStem, "stem", false, "stem English vocabulary terms")
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankService == nil {
		return errors.New("rank service not configured")
	}

	opts, err := rankOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	result, err := rankService.RankPaths(ctx, args, opts)
	if err != nil {
		return fmt.Errorf("rank failed: %w", err)
	}
	if err := outputRank(cmd, result); err != nil {
		return err
	}

	if !rankWatch {
		releaseCorpus(ctx, result.CorpusID)
		return nil
	}
	return watchAndRank(cmd, result.CorpusID, opts)
}

// rankOptions starts from the configured defaults and applies the flags
// the user set explicitly.
func rankOptions(cmd *cobra.Command) (domain.RankOptions, error) {
	flags := cmd.Flags()
	opts := domain.DefaultRankOptions()
	if settingsService != nil {
		configured, err := settingsService.RankOptions()
		if err != nil {
			return domain.RankOptions{}, fmt.Errorf("failed to load settings: %w", err)
		}
		opts = configured
	} else {
		words, err := services.LoadStopWords(domain.StopWordsEnglish)
		if err != nil {
			return domain.RankOptions{}, err
		}
		opts.StopWords = words
	}

	if flags.Changed("top-k") {
		opts.TopK = rankTopK
	}
	if flags.Changed("alpha") {
		opts.LengthPenalty = rankAlpha
	}
	if flags.Changed("scope") {
		opts.Scope = domain.Scope(rankScope)
	}
	if flags.Changed("idf") {
		opts.IDF = domain.IDFMode(rankIDF)
	}
	if flags.Changed("norm") {
		opts.Norm = domain.NormMode(rankNorm)
	}
	if flags.Changed("min-df") {
		opts.MinDocumentFrequency = rankMinDF
	}
	if flags.Changed("stem") {
		opts.Stem = rankStem
	}
	if flags.Changed("stop-words") {
		words, err := services.LoadStopWords(rankStopWords)
		if err != nil {
			return domain.RankOptions{}, err
		}
		opts.StopWords = words
	}

	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return domain.RankOptions{}, err
	}
	return opts, nil
}

func outputRank(cmd *cobra.Command, result *domain.RankResult) error {
	out := cmd.OutOrStdout()
	if rankJSONOut {
		return writeJSON(out, newRankJSON(result))
	}
	printSentences(out, result, termWidth(out))
	return nil
}

// watchAndRank reloads and re-ranks the corpus on every batch of source
// changes until interrupted.
func watchAndRank(cmd *cobra.Command, corpusID string, opts domain.RankOptions) error {
	if sourceWatcher == nil || corpusService == nil {
		return errors.New("file watching not available")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer releaseCorpus(context.WithoutCancel(ctx), corpusID)

	corpus, err := corpusService.Get(ctx, corpusID)
	if err != nil {
		return err
	}
	changes, err := sourceWatcher.Watch(ctx, corpus.Sources)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.PrintErrf("Watching %s (ctrl+c to stop)\n", strings.Join(corpus.Sources, ", "))

	for batch := range filesystem.Coalesce(ctx, changes, filesystem.DefaultCoalesceInterval) {
		logger.Info("%d source change(s), reloading", len(batch))
		if _, err := corpusService.Reload(ctx, corpusID); err != nil {
			cmd.PrintErrf("reload failed: %v\n", err)
			continue
		}
		result, err := rankService.RankCorpus(ctx, corpusID, opts)
		if err != nil {
			cmd.PrintErrf("rank failed: %v\n", err)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if err := outputRank(cmd, result); err != nil {
			return err
		}
	}
	return nil
}

// releaseCorpus drops a corpus nothing refers to any more.
func releaseCorpus(ctx context.Context, corpusID string) {
	if corpusService == nil || corpusID == "" {
		return
	}
	if err := corpusService.Release(ctx, corpusID); err != nil {
		logger.Debug("release corpus %s: %v", corpusID, err)
	}
}
