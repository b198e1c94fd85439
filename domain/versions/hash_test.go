package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHash_Deterministic(t *testing.T) {
	meta := map[string]any{
		MetaModel:       "gpt-4",
		MetaTemperature: 0.7,
		MetaVersion:     "1.0.0",
	}

	h1 := ComputeHash("Summarize: {text}", meta)
	h2 := ComputeHash("Summarize: {text}", meta)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestComputeHash_IgnoresNonIdentityFields(t *testing.T) {
	base := map[string]any{
		MetaModel:       "gpt-4",
		MetaTemperature: 0.7,
		MetaVersion:     "1.0.0",
	}
	noisy := map[string]any{
		MetaModel:         "gpt-4",
		MetaTemperature:   0.7,
		MetaVersion:       "1.0.0",
		MetaCommitMessage: "tweaked wording",
		"max_tokens":      512,
		"top_p":           0.9,
		"author":          "alice",
	}

	assert.Equal(t,
		ComputeHash("Summarize: {text}", base),
		ComputeHash("Summarize: {text}", noisy),
		"hash must depend only on content, model, temperature and version")
}

func TestComputeHash_SensitiveToIdentityFields(t *testing.T) {
	base := map[string]any{
		MetaModel:       "gpt-4",
		MetaTemperature: 0.7,
		MetaVersion:     "1.0.0",
	}
	baseHash := ComputeHash("Summarize: {text}", base)

	tests := []struct {
		name    string
		content string
		mutate  func(map[string]any)
	}{
		{"different content", "Translate: {text}", func(m map[string]any) {}},
		{"different model", "Summarize: {text}", func(m map[string]any) { m[MetaModel] = "gpt-4o" }},
		{"different temperature", "Summarize: {text}", func(m map[string]any) { m[MetaTemperature] = 0.2 }},
		{"different version", "Summarize: {text}", func(m map[string]any) { m[MetaVersion] = "1.1.0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := map[string]any{
				MetaModel:       "gpt-4",
				MetaTemperature: 0.7,
				MetaVersion:     "1.0.0",
			}
			tt.mutate(meta)
			assert.NotEqual(t, baseHash, ComputeHash(tt.content, meta))
		})
	}
}

func TestComputeHash_AppliesDefaults(t *testing.T) {
	explicit := map[string]any{
		MetaModel:       DefaultModel,
		MetaTemperature: DefaultTemperature,
		MetaVersion:     DefaultSemVer,
	}

	assert.Equal(t,
		ComputeHash("hello", explicit),
		ComputeHash("hello", nil),
		"absent metadata keys must hash like their defaults")
	assert.Equal(t,
		ComputeHash("hello", explicit),
		ComputeHash("hello", map[string]any{}),
	)
}

func TestComputeHash_IntegerTemperature(t *testing.T) {
	// JSON decoding can deliver temperature as float64 or a caller may pass
	// an int; both must hash identically.
	asFloat := map[string]any{MetaTemperature: 1.0}
	asInt := map[string]any{MetaTemperature: 1}

	assert.Equal(t, ComputeHash("x", asFloat), ComputeHash("x", asInt))
}
