// Package cli implements the askdocs command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/askdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdocs/internal/adapters/driven/storage/sqlite"
	boltindex "github.com/custodia-labs/askdocs/internal/adapters/driven/vector/bolt"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/core/services"
	"github.com/custodia-labs/askdocs/internal/logger"
	"github.com/custodia-labs/askdocs/internal/postprocessors"
	"github.com/custodia-labs/askdocs/internal/tokenizer/tiktoken"
	"github.com/custodia-labs/askdocs/internal/tokenizer/words"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagDataDir   string
	flagConfigDir string
)

// Services used by the commands. Tests swap these for mocks.
var (
	ingestService driving.Ingestor
	answerService driving.Answerer
)

// cleanupFuncs run after command execution to release resources.
var cleanupFuncs []func()

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about your documents",
	Long: `askdocs ingests JSON or PDF documents, indexes them as embedded
token chunks, and answers questions by retrieving the most relevant
chunks and asking a language model.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.askdocs/data)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.askdocs)")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	for _, cleanup := range cleanupFuncs {
		cleanup()
	}
	if err != nil {
		os.Exit(1)
	}
}

// loadSettings assembles application settings from the config file and
// environment. API keys come from the environment only.
func loadSettings() (domain.AppSettings, error) {
	cfg, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("opening config: %w", err)
	}

	settings := domain.DefaultAppSettings()

	if size := cfg.GetInt("chunking.chunk_size"); size > 0 {
		settings.Chunking.ChunkSize = size
	}
	if _, ok := cfg.Get("chunking.overlap"); ok {
		settings.Chunking.Overlap = cfg.GetInt("chunking.overlap")
	}
	if topK := cfg.GetInt("top_k"); topK > 0 {
		settings.TopK = topK
	}

	if provider := cfg.GetString("embedding.provider"); provider != "" {
		settings.Embedding.Provider = domain.AIProvider(provider)
	}
	settings.Embedding.Model = cfg.GetString("embedding.model")
	settings.Embedding.BaseURL = cfg.GetString("embedding.base_url")

	if provider := cfg.GetString("llm.provider"); provider != "" {
		settings.LLM.Provider = domain.AIProvider(provider)
	}
	settings.LLM.Model = cfg.GetString("llm.model")
	settings.LLM.BaseURL = cfg.GetString("llm.base_url")

	switch settings.Embedding.Provider {
	case domain.AIProviderOpenAI:
		settings.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderGemini:
		settings.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	switch settings.LLM.Provider {
	case domain.AIProviderOpenAI:
		settings.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderGemini:
		settings.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return settings, nil
}

// newTokenizer returns the cl100k_base tokenizer, falling back to the
// word tokenizer when the encoding data is unavailable (offline runs).
func newTokenizer() driven.Tokenizer {
	tok, err := tiktoken.New(tiktoken.DefaultEncoding)
	if err != nil {
		logger.Warn("cl100k_base unavailable (%v), using word tokenizer", err)
		return words.New()
	}
	return tok
}

// openStores opens the document store and vector index under the data
// directory and registers their cleanup.
func openStores() (driven.DocumentStore, driven.VectorIndex, error) {
	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document store: %w", err)
	}
	cleanupFuncs = append(cleanupFuncs, func() { store.Close() })

	index, err := boltindex.NewIndex(flagDataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector index: %w", err)
	}
	cleanupFuncs = append(cleanupFuncs, func() { index.Close() })

	return store.DocumentStore(), index, nil
}

// initIngestor wires the ingest pipeline. The chunk parameters
// override the configured defaults when positive.
func initIngestor(loader driven.DatasetLoader, chunkSize, overlap int) error {
	if ingestService != nil {
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if chunkSize > 0 {
		settings.Chunking.ChunkSize = chunkSize
	}
	if overlap >= 0 {
		settings.Chunking.Overlap = overlap
	}
	if err := settings.Chunking.Validate(); err != nil {
		return fmt.Errorf("chunk size %d with overlap %d: %w",
			settings.Chunking.ChunkSize, settings.Chunking.Overlap, err)
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return err
	}
	cleanupFuncs = append(cleanupFuncs, func() { embedder.Close() })

	docs, index, err := openStores()
	if err != nil {
		return err
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry, newTokenizer())

	proc, err := registry.Build("chunker", map[string]any{
		"chunk_size": settings.Chunking.ChunkSize,
		"overlap":    settings.Chunking.Overlap,
	})
	if err != nil {
		return fmt.Errorf("building chunker: %w", err)
	}

	ingestService = services.NewIngestService(loader, postprocessors.NewPipeline(proc),
		embedder, docs, index)
	return nil
}

// initAnswerer wires the query pipeline.
func initAnswerer() error {
	if answerService != nil {
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return err
	}
	cleanupFuncs = append(cleanupFuncs, func() { embedder.Close() })

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		return err
	}
	cleanupFuncs = append(cleanupFuncs, func() { llm.Close() })

	docs, index, err := openStores()
	if err != nil {
		return err
	}

	answerService = services.NewAnswerService(embedder, index, docs, llm)
	return nil
}

// initStats wires just enough to report collection statistics.
// No AI service is contacted.
func initStats() error {
	if ingestService != nil {
		return nil
	}

	docs, index, err := openStores()
	if err != nil {
		return err
	}

	ingestService = services.NewIngestService(nil, postprocessors.NewPipeline(), nil, docs, index)
	return nil
}
