package versions

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(hash, content, author string) *PromptVersion {
	return &PromptVersion{
		Hash:      hash,
		Content:   content,
		Author:    author,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestComputeDiff_Labels(t *testing.T) {
	a := node("aaaaaaaa1111111111111111111111111111111111111111111111111111aaaa", "You are a helpful assistant.", "alice")
	b := node("bbbbbbbb2222222222222222222222222222222222222222222222222222bbbb", "You are a terse assistant.", "bob")

	result, err := ComputeDiff(a, b)
	require.NoError(t, err)

	assert.Equal(t, a.Hash, result.HashA)
	assert.Equal(t, b.Hash, result.HashB)
	assert.Equal(t, "alice", result.AuthorA)
	assert.Equal(t, "bob", result.AuthorB)
	assert.Contains(t, result.Unified, "--- version aaaaaaaa")
	assert.Contains(t, result.Unified, "+++ version bbbbbbbb")
	assert.Contains(t, result.Unified, "-You are a helpful assistant.")
	assert.Contains(t, result.Unified, "+You are a terse assistant.")
}

func TestComputeDiff_IdenticalContent(t *testing.T) {
	a := node("aaaa", "same text", "alice")
	b := node("bbbb", "same text", "bob")

	result, err := ComputeDiff(a, b)
	require.NoError(t, err)

	assert.Empty(t, result.Unified)
	assert.Nil(t, result.Lines())
}

func TestApplyDiff_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "single line change",
			a:    "Summarize the following text:\n{text}",
			b:    "Summarize the following text concisely:\n{text}",
		},
		{
			name: "appended lines",
			a:    "line one\nline two",
			b:    "line one\nline two\nline three\nline four",
		},
		{
			name: "deleted lines",
			a:    "keep\ndrop me\nalso drop\nkeep too",
			b:    "keep\nkeep too",
		},
		{
			name: "change in the middle of long content",
			a:    strings.Join([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, "\n"),
			b:    strings.Join([]string{"a", "b", "c", "D", "e", "f", "g", "h", "i", "j"}, "\n"),
		},
		{
			name: "complete rewrite",
			a:    "old prompt",
			b:    "entirely new prompt\nwith a second line",
		},
		{
			name: "identical",
			a:    "no change",
			b:    "no change",
		},
		{
			name: "multiple hunks",
			a:    strings.Join([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15"}, "\n"),
			b:    strings.Join([]string{"ONE", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "FIFTEEN"}, "\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeDiff(node("aaaa", tt.a, "alice"), node("bbbb", tt.b, "bob"))
			require.NoError(t, err)

			reconstructed, err := ApplyDiff(tt.a, result.Unified)
			require.NoError(t, err)

			assert.Equal(t, tt.b, reconstructed)
		})
	}
}

func TestApplyDiff_EmptyDiffIsIdentity(t *testing.T) {
	out, err := ApplyDiff("anything", "")
	require.NoError(t, err)
	assert.Equal(t, "anything", out)
}

func TestApplyDiff_MalformedDiff(t *testing.T) {
	_, err := ApplyDiff("content", "not a unified diff at all")
	assert.Error(t, err)
}

func TestDiffResult_Lines(t *testing.T) {
	d := &DiffResult{Unified: "--- version a\n+++ version b\n@@ -1 +1 @@\n-x\n+y\n"}
	lines := d.Lines()

	assert.Len(t, lines, 5)
	assert.Equal(t, "--- version a", lines[0])
	assert.Equal(t, "+y", lines[4])
}
