package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query pipeline over HTTP",
	Long: `Starts an HTTP server exposing POST /query and GET /health.
Questions go through the same retrieve-and-generate pipeline as 'ask'.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initAnswerer(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	cmd.Printf("Listening on %s\n", serveAddr)
	return api.NewServer(answerService).ListenAndServe(serveAddr)
}
