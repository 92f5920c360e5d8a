package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

func setupAnswerer(t *testing.T, mock *mockAnswerer) {
	t.Helper()

	old := answerService
	answerService = mock
	t.Cleanup(func() {
		answerService = old
		rootCmd.SetArgs(nil)
		askTopK = 0
		askMaxTokens = 0
		askShowSources = false
	})
}

func TestAskCmd(t *testing.T) {
	mock := &mockAnswerer{result: domain.QueryResult{
		Answer:       "Goroutines are lightweight threads.",
		NumRetrieved: 1,
		Retrieved: []domain.RetrievedChunk{
			{Content: "goroutine chunk", Metadata: map[string]any{"title": "Concurrency"}, Distance: 0.1},
		},
	}}
	setupAnswerer(t, mock)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what are goroutines?"})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Goroutines are lightweight threads.")
	assert.Equal(t, "what are goroutines?", mock.lastQuestion)
	// Sources are hidden by default.
	assert.NotContains(t, buf.String(), "Sources")
}

func TestAskCmd_ShowSources(t *testing.T) {
	mock := &mockAnswerer{result: domain.QueryResult{
		Answer:       "answer",
		NumRetrieved: 1,
		Retrieved: []domain.RetrievedChunk{
			{Content: "chunk text", Metadata: map[string]any{"title": "Concurrency"}, Distance: 0.25},
		},
	}}
	setupAnswerer(t, mock)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--show-sources", "question"})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Sources (1)")
	assert.Contains(t, buf.String(), "Concurrency")
	assert.Contains(t, buf.String(), "0.75") // relevance = 1 - distance
}

func TestAskCmd_TopKFlag(t *testing.T) {
	mock := &mockAnswerer{result: domain.QueryResult{Answer: "ok"}}
	setupAnswerer(t, mock)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--top-k", "7", "question"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 7, mock.lastTopK)
}

func TestAskCmd_QueryError(t *testing.T) {
	setupAnswerer(t, &mockAnswerer{err: errMock})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "question"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, errMock)
}
