package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/askdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// configKeys lists the settable keys and whether they hold integers.
var configKeys = map[string]bool{
	"chunking.chunk_size": true,
	"chunking.overlap":    true,
	"top_k":               true,
	"embedding.provider":  false,
	"embedding.model":     false,
	"embedding.base_url":  false,
	"llm.provider":        false,
	"llm.model":           false,
	"llm.base_url":        false,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value in the config file.

Settable keys:
  chunking.chunk_size   tokens per chunk
  chunking.overlap      overlapping tokens between chunks
  top_k                 chunks retrieved per query
  embedding.provider    ollama or openai
  embedding.model       embedding model name
  embedding.base_url    embedding API endpoint
  llm.provider          ollama, openai or gemini
  llm.model             LLM model name
  llm.base_url          LLM API endpoint

API keys are read from the OPENAI_API_KEY and GEMINI_API_KEY
environment variables and are never written to the config file.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Println("[Chunking]")
	cmd.Printf("  Chunk size: %d tokens\n", settings.Chunking.ChunkSize)
	cmd.Printf("  Overlap: %d tokens\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.TopK)
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	if model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if provider.IsLocal() && baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if strings.Contains(key, "api_key") {
		return fmt.Errorf("API keys are read from the environment, not the config file")
	}
	isInt, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	if strings.HasSuffix(key, ".provider") {
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("unknown provider %q (want ollama, openai or gemini)", value)
		}
	}

	store, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	if isInt {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants an integer, got %q", key, value)
		}
		if err := store.Set(key, n); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	} else {
		if err := store.Set(key, value); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
