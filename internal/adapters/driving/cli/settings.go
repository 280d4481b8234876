package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the ranking defaults and the sentence segmenter.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Change one setting.

Keys:
  top_k                Number of sentences returned (positive)
  length_penalty       Alpha coefficient (>= 0, 0 disables the penalty)
  scope                pooled or per_document
  stop_words           english, none, or the path of a word list file
  min_df               Minimum sentences a term must appear in (>= 1)
  idf                  smooth or plain
  norm                 none or l2
  stem                 true or false
  segmenter            punkt or regex
  min_sentence_length  Drop shorter sentences (characters, >= 1)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the ranking defaults step by step.`,
	RunE:  runSettingsWizard,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Ranking]")
	cmd.Printf("  Top K: %d\n", settings.Ranking.TopK)
	cmd.Printf("  Length penalty (alpha): %g\n", settings.Ranking.LengthPenalty)
	cmd.Printf("  Scope: %s\n", settings.Ranking.Scope.Description())
	cmd.Printf("  Stop words: %s\n", settings.Ranking.StopWords)
	cmd.Printf("  Min document frequency: %d\n", settings.Ranking.MinDocumentFrequency)
	cmd.Printf("  IDF: %s\n", settings.Ranking.IDF)
	cmd.Printf("  Normalisation: %s\n", settings.Ranking.Norm)
	cmd.Printf("  Stemming: %s\n", onOff(settings.Ranking.Stem))
	cmd.Println()

	cmd.Println("[Loader]")
	cmd.Printf("  Segmenter: %s\n", settings.Loader.Segmenter.Description())
	cmd.Printf("  Min sentence length: %d\n", settings.Loader.MinSentenceLength)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'keysent settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], strings.TrimSpace(args[1])
	if err := setSetting(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	if key == "segmenter" || key == "min_sentence_length" {
		cmd.Println("Loader changes apply the next time articles are loaded.")
	}
	return nil
}

//nolint:gocyclo // one case per settings key
func setSetting(key, value string) error {
	switch key {
	case "top_k":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidArgument, value)
		}
		return settingsService.SetTopK(n)
	case "length_penalty", "alpha":
		alpha, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidArgument, value)
		}
		return settingsService.SetLengthPenalty(alpha)
	case "scope":
		return settingsService.SetScope(domain.Scope(value))
	case "stop_words":
		return settingsService.SetStopWords(value)
	case "segmenter":
		return settingsService.SetSegmenter(domain.SegmenterMode(value))
	case "min_df":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: min_df must be a number >= 1, got %q", domain.ErrInvalidArgument, value)
		}
		return updateSettings(func(s *domain.AppSettings) { s.Ranking.MinDocumentFrequency = n })
	case "idf":
		mode := domain.IDFMode(value)
		if !mode.IsValid() {
			return fmt.Errorf("%w: unknown idf mode %q", domain.ErrInvalidArgument, value)
		}
		return updateSettings(func(s *domain.AppSettings) { s.Ranking.IDF = mode })
	case "norm":
		mode := domain.NormMode(value)
		if !mode.IsValid() {
			return fmt.Errorf("%w: unknown normalisation %q", domain.ErrInvalidArgument, value)
		}
		return updateSettings(func(s *domain.AppSettings) { s.Ranking.Norm = mode })
	case "stem":
		stem, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not true or false", domain.ErrInvalidArgument, value)
		}
		return updateSettings(func(s *domain.AppSettings) { s.Ranking.Stem = stem })
	case "min_sentence_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: min_sentence_length must be a number >= 1, got %q", domain.ErrInvalidArgument, value)
		}
		return updateSettings(func(s *domain.AppSettings) { s.Loader.MinSentenceLength = n })
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidArgument, key)
	}
}

func updateSettings(apply func(*domain.AppSettings)) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	apply(settings)
	return settingsService.Save(settings)
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("keysent Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Scope
	cmd.Println("Step 1: Select Ranking Scope")
	cmd.Println("----------------------------")
	scopes := domain.AllScopes()
	scopeIdx := choose(cmd, reader, len(scopes), indexOf(scopes, current.Ranking.Scope), func(i int) string {
		return scopes[i].Description()
	})
	if err := settingsService.SetScope(scopes[scopeIdx]); err != nil {
		return fmt.Errorf("failed to set scope: %w", err)
	}
	cmd.Printf("Set scope to: %s\n\n", scopes[scopeIdx].Description())

	// Step 2: Top K
	cmd.Println("Step 2: Number of Sentences")
	cmd.Println("---------------------------")
	cmd.Printf("Enter top K [%d]: ", current.Ranking.TopK)
	if input := readLine(reader); input != "" {
		if err := setSetting("top_k", input); err != nil {
			return fmt.Errorf("failed to set top K: %w", err)
		}
	}
	cmd.Println()

	// Step 3: Length penalty
	cmd.Println("Step 3: Length Penalty")
	cmd.Println("----------------------")
	cmd.Println("Sentences longer than average are divided by 1 + alpha * (extra tokens).")
	cmd.Printf("Enter alpha [%g]: ", current.Ranking.LengthPenalty)
	if input := readLine(reader); input != "" {
		if err := setSetting("length_penalty", input); err != nil {
			return fmt.Errorf("failed to set length penalty: %w", err)
		}
	}
	cmd.Println()

	// Step 4: Stop words
	cmd.Println("Step 4: Stop Words")
	cmd.Println("------------------")
	cmd.Printf("Enter english, none, or a word list file [%s]: ", current.Ranking.StopWords)
	if input := readLine(reader); input != "" {
		if err := settingsService.SetStopWords(input); err != nil {
			return fmt.Errorf("failed to set stop words: %w", err)
		}
	}
	cmd.Println()

	// Step 5: Segmenter
	cmd.Println("Step 5: Sentence Segmenter")
	cmd.Println("--------------------------")
	segmenters := domain.AllSegmenters()
	segIdx := choose(cmd, reader, len(segmenters), indexOf(segmenters, current.Loader.Segmenter), func(i int) string {
		return segmenters[i].Description()
	})
	if err := settingsService.SetSegmenter(segmenters[segIdx]); err != nil {
		return fmt.Errorf("failed to set segmenter: %w", err)
	}
	cmd.Printf("Set segmenter to: %s\n\n", segmenters[segIdx].Description())

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

// choose lists count options and returns the zero-based index picked,
// falling back to current.
func choose(cmd *cobra.Command, reader *bufio.Reader, count, current int, label func(int) string) int {
	for i := 0; i < count; i++ {
		cmd.Printf("  %d. %s\n", i+1, label(i))
	}
	cmd.Printf("\nEnter choice [%d]: ", current+1)
	return parseChoice(readLine(reader), count, current+1) - 1
}

func indexOf[T comparable](values []T, v T) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
