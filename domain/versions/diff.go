package versions

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// DiffResult is a line-oriented unified diff between two version nodes,
// tagged with both identities for display.
type DiffResult struct {
	HashA      string    `json:"hash_a"`
	HashB      string    `json:"hash_b"`
	AuthorA    string    `json:"author_a"`
	AuthorB    string    `json:"author_b"`
	TimestampA time.Time `json:"timestamp_a"`
	TimestampB time.Time `json:"timestamp_b"`
	Unified    string    `json:"diff"`
}

// Lines returns the diff split into individual lines for display
func (d *DiffResult) Lines() []string {
	if d.Unified == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(d.Unified, "\n"), "\n")
}

// ComputeDiff builds the unified diff over the content of two nodes.
// Pure function; identical contents produce an empty diff.
func ComputeDiff(a, b *PromptVersion) (*DiffResult, error) {
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a.Content),
		B:        difflib.SplitLines(b.Content),
		FromFile: "version " + a.ShortHash(),
		ToFile:   "version " + b.ShortHash(),
		Context:  3,
	})
	if err != nil {
		return nil, fmt.Errorf("compute diff: %w", err)
	}

	return &DiffResult{
		HashA:      a.Hash,
		HashB:      b.Hash,
		AuthorA:    a.Author,
		AuthorB:    b.Author,
		TimestampA: a.CreatedAt,
		TimestampB: b.CreatedAt,
		Unified:    unified,
	}, nil
}

// ApplyDiff applies a unified diff produced by ComputeDiff to the source
// content and returns the reconstructed target content.
func ApplyDiff(source, unified string) (string, error) {
	if unified == "" {
		return source, nil
	}

	fd, err := godiff.ParseFileDiff([]byte(unified))
	if err != nil {
		return "", fmt.Errorf("parse diff: %w", err)
	}

	srcLines := strings.Split(source, "\n")
	var out []string
	cursor := 0

	for _, hunk := range fd.Hunks {
		// For a pure insertion hunk the original start line is the line
		// the insertion follows, not the first replaced line.
		start := int(hunk.OrigStartLine) - 1
		if hunk.OrigLines == 0 {
			start = int(hunk.OrigStartLine)
		}
		if start < 0 || start > len(srcLines) {
			return "", fmt.Errorf("hunk start %d out of range", hunk.OrigStartLine)
		}

		for cursor < start {
			out = append(out, srcLines[cursor])
			cursor++
		}

		for _, line := range strings.Split(strings.TrimSuffix(string(hunk.Body), "\n"), "\n") {
			if line == "" {
				continue
			}
			switch line[0] {
			case ' ':
				if cursor >= len(srcLines) {
					return "", fmt.Errorf("context line beyond end of source")
				}
				out = append(out, srcLines[cursor])
				cursor++
			case '-':
				if cursor >= len(srcLines) {
					return "", fmt.Errorf("deletion beyond end of source")
				}
				cursor++
			case '+':
				out = append(out, line[1:])
			case '\\':
				// "\ No newline at end of file" marker
			default:
				return "", fmt.Errorf("malformed hunk line %q", line)
			}
		}
	}

	for cursor < len(srcLines) {
		out = append(out, srcLines[cursor])
		cursor++
	}

	return strings.Join(out, "\n"), nil
}
