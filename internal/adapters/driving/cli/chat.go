package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui"
)

var (
	chatTopK        int
	chatMaxTokens   int
	chatShowSources bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Opens an interactive chat over the ingested documents. Each
question runs the same retrieve-and-generate pipeline as 'ask'.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().IntVarP(&chatTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured default)")
	chatCmd.Flags().IntVar(&chatMaxTokens, "max-tokens", 0, "generation token budget (0 = configured default)")
	chatCmd.Flags().BoolVar(&chatShowSources, "show-sources", false, "show retrieved chunks under each answer")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	if err := initAnswerer(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	return tui.Run(answerService, chatTopK, chatMaxTokens, chatShowSources)
}
