package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// Default chunking parameters, matching the dataset demo defaults.
const (
	// DefaultChunkSize is the default number of tokens per chunk.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the default number of overlapping tokens
	// between consecutive chunks.
	DefaultChunkOverlap = 100

	// DefaultTopK is the default number of chunks retrieved per query.
	DefaultTopK = 3

	// DefaultMaxTokens is the default generation token budget.
	DefaultMaxTokens = 1000
)

// ChunkingSettings holds token chunking configuration.
type ChunkingSettings struct {
	// ChunkSize is the maximum number of tokens per chunk.
	ChunkSize int

	// Overlap is the number of tokens shared by consecutive chunks.
	// Must be smaller than ChunkSize; a non-positive stride would
	// never terminate.
	Overlap int
}

// Validate reports misconfigured chunking parameters.
func (c ChunkingSettings) Validate() error {
	if c.ChunkSize <= 0 {
		return ErrInvalidInput
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return ErrInvalidInput
	}
	return nil
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI). Sourced from the
	// environment, never from config files.
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds generative model provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Gemini). Sourced from the
	// environment, never from config files.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Chunking holds token chunking parameters.
	Chunking ChunkingSettings

	// TopK is the default number of chunks retrieved per query.
	TopK int

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds generative model provider settings.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Providers default to Gemini generation with Ollama embeddings, the
// combination that works with a single GEMINI_API_KEY and a local
// Ollama install.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			ChunkSize: DefaultChunkSize,
			Overlap:   DefaultChunkOverlap,
		},
		TopK: DefaultTopK,
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
		},
		LLM: LLMSettings{
			Provider: AIProviderGemini,
		},
	}
}
