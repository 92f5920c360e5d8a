package words

import (
	"strings"
	"testing"
)

func TestEncode_Deterministic(t *testing.T) {
	tok := New()
	text := "the quick brown fox jumps over the lazy dog"

	first := tok.Encode(text)
	second := tok.Encode(text)

	if len(first) != len(second) {
		t.Fatalf("expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tok := New()

	tests := []string{
		"plain words separated by spaces",
		"  leading and trailing  ",
		"tabs\tand\nnewlines mixed\n\n",
		"punctuation, stays. attached!",
		"",
	}

	for _, text := range tests {
		if got := tok.Decode(tok.Encode(text)); got != text {
			t.Errorf("round trip failed: %q became %q", text, got)
		}
	}
}

func TestEncode_RepeatedRunsShareIDs(t *testing.T) {
	tok := New()
	tokens := tok.Encode("go go go")

	// "go", " ", "go", " ", "go"
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(tokens))
	}
	if tokens[0] != tokens[2] || tokens[2] != tokens[4] {
		t.Error("expected identical runs to share a token ID")
	}
	if tokens[1] != tokens[3] {
		t.Error("expected identical whitespace runs to share a token ID")
	}
}

func TestDecode_UnknownIDsSkipped(t *testing.T) {
	tok := New()
	tok.Encode("known")

	if got := tok.Decode([]int{0, 99, -1}); got != "known" {
		t.Errorf("expected unknown IDs to be skipped, got %q", got)
	}
}

func TestEncode_TokenCount(t *testing.T) {
	tok := New()
	text := strings.Repeat("word ", 100) // 100 words + 100 space runs, trailing space merges nothing

	tokens := tok.Encode(text)
	if len(tokens) != 200 {
		t.Errorf("expected 200 tokens, got %d", len(tokens))
	}
}
