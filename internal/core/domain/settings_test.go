package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAIProvider_IsValid tests provider validation
func TestAIProvider_IsValid(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.True(t, AIProviderGemini.IsValid())
	assert.False(t, AIProvider("cohere").IsValid())
	assert.False(t, AIProvider("").IsValid())
}

// TestAIProvider_RequiresAPIKey tests credential requirements
func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
}

// TestAIProvider_Description tests human-readable descriptions
func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Gemini (cloud)", AIProviderGemini.Description())
	assert.Equal(t, unknownDescription, AIProvider("bogus").Description())
}

// TestChunkingSettings_Validate tests chunk parameter validation
func TestChunkingSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ChunkingSettings
		wantErr bool
	}{
		{"defaults", ChunkingSettings{ChunkSize: DefaultChunkSize, Overlap: DefaultChunkOverlap}, false},
		{"zero overlap", ChunkingSettings{ChunkSize: 100, Overlap: 0}, false},
		{"zero chunk size", ChunkingSettings{ChunkSize: 0, Overlap: 0}, true},
		{"negative overlap", ChunkingSettings{ChunkSize: 100, Overlap: -1}, true},
		{"overlap equals chunk size", ChunkingSettings{ChunkSize: 100, Overlap: 100}, true},
		{"overlap exceeds chunk size", ChunkingSettings{ChunkSize: 100, Overlap: 150}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestEmbeddingSettings_IsConfigured tests embedding configuration checks
func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}.IsConfigured())
	assert.False(t, EmbeddingSettings{}.IsConfigured())
}

// TestLLMSettings_IsConfigured tests LLM configuration checks
func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{Provider: AIProviderGemini}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderGemini, APIKey: "key"}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
}

// TestDefaultAppSettings tests the default configuration
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, DefaultChunkSize, s.Chunking.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.Chunking.Overlap)
	assert.Equal(t, DefaultTopK, s.TopK)
	assert.NoError(t, s.Chunking.Validate())
	assert.Equal(t, AIProviderGemini, s.LLM.Provider)
	assert.Equal(t, AIProviderOllama, s.Embedding.Provider)
}
