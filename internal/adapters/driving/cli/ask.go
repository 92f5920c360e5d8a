package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

var (
	askTopK        int
	askMaxTokens   int
	askShowSources bool
)

var (
	sourceHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	sourceMetaStyle   = lipgloss.NewStyle().Faint(true)
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Retrieves the chunks closest to the question and asks the
configured language model to answer from them.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured default)")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "generation token budget (0 = configured default)")
	askCmd.Flags().BoolVar(&askShowSources, "show-sources", false, "print the retrieved chunks and scores")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initAnswerer(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	result, err := answerService.Query(context.Background(), args[0], askTopK, askMaxTokens)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	cmd.Println(result.Answer)

	if askShowSources {
		printSources(cmd, result.Retrieved)
	}
	return nil
}

func printSources(cmd *cobra.Command, retrieved []domain.RetrievedChunk) {
	if len(retrieved) == 0 {
		cmd.Println()
		cmd.Println("No sources retrieved.")
		return
	}

	cmd.Println()
	cmd.Println(sourceHeaderStyle.Render(fmt.Sprintf("Sources (%d)", len(retrieved))))
	for i, chunk := range retrieved {
		title, _ := chunk.Metadata["title"].(string)
		if title == "" {
			title = "untitled"
		}

		cmd.Printf("  [%d] %s (relevance %.2f)\n", i+1, title, chunk.Relevance())

		snippet := chunk.Content
		if len(snippet) > 160 {
			snippet = snippet[:160] + "..."
		}
		cmd.Println(sourceMetaStyle.Render("      " + snippet))
	}
}
