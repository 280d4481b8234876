package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

var compareJSONOut bool

var compareCmd = &cobra.Command{
	Use:   "compare LEFT RIGHT",
	Short: "Rank two sets of articles side by side",
	Long: `Ranks two independent sets of articles with the same options and prints
both rankings followed by the sentences they share.

Each side is a path or a comma separated list of paths:

  keysent compare monday.json tuesday.json
  keysent compare "a.json,b.json" notes/`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	addRankFlags(compareCmd)
	compareCmd.Flags().BoolVar(&compareJSONOut, "json", false, "output results as JSON")
	rootCmd.AddCommand(compareCmd)
}

// comparison is the outcome of ranking both sides.
type comparison struct {
	Left   *domain.RankResult
	Right  *domain.RankResult
	Shared []string
}

func runCompare(cmd *cobra.Command, args []string) error {
	if rankService == nil {
		return errors.New("rank service not configured")
	}

	opts, err := rankOptions(cmd)
	if err != nil {
		return err
	}

	sides := [2][]string{splitPaths(args[0]), splitPaths(args[1])}
	for i, paths := range sides {
		if len(paths) == 0 {
			return fmt.Errorf("%w: %s side has no paths", domain.ErrInvalidInput, []string{"left", "right"}[i])
		}
	}

	var results [2]*domain.RankResult
	g, ctx := errgroup.WithContext(cmd.Context())
	for i := range sides {
		g.Go(func() error {
			result, err := rankService.RankPaths(ctx, sides[i], opts)
			if err != nil {
				return fmt.Errorf("ranking %v: %w", sides[i], err)
			}
			results[i] = result
			return nil
		})
	}
	err = g.Wait()
	for _, r := range results {
		if r != nil {
			releaseCorpus(cmd.Context(), r.CorpusID)
		}
	}
	if err != nil {
		return err
	}

	c := comparison{Left: results[0], Right: results[1]}
	c.Shared = sharedSentences(c.Left.Sentences, c.Right.Sentences)

	out := cmd.OutOrStdout()
	if compareJSONOut {
		return writeJSON(out, struct {
			Left   rankJSON `json:"left"`
			Right  rankJSON `json:"right"`
			Shared []string `json:"shared"`
		}{newRankJSON(c.Left), newRankJSON(c.Right), c.Shared})
	}
	printComparison(out, sides, c, termWidth(out))
	return nil
}

// sharedSentences returns the texts ranked on both sides, in left order.
func sharedSentences(left, right []domain.ScoredSentence) []string {
	inRight := make(map[string]struct{}, len(right))
	for _, s := range right {
		inRight[s.Text] = struct{}{}
	}

	shared := []string{}
	seen := make(map[string]struct{})
	for _, s := range left {
		if _, ok := inRight[s.Text]; !ok {
			continue
		}
		if _, dup := seen[s.Text]; dup {
			continue
		}
		seen[s.Text] = struct{}{}
		shared = append(shared, s.Text)
	}
	return shared
}

func printComparison(w io.Writer, sides [2][]string, c comparison, width int) {
	fmt.Fprintf(w, "Left: %v\n", sides[0])
	printSentences(w, c.Left, width)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Right: %v\n", sides[1])
	printSentences(w, c.Right, width)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Shared sentences: %d\n", len(c.Shared))
	for _, text := range c.Shared {
		for i, line := range wrapText(text, max(20, width-4)) {
			prefix := "    "
			if i == 0 {
				prefix = "  - "
			}
			fmt.Fprintf(w, "%s%s\n", prefix, line)
		}
	}
}
