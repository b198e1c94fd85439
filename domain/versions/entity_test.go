package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortHash(t *testing.T) {
	v := &PromptVersion{Hash: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"}
	assert.Equal(t, "01234567", v.ShortHash())

	short := &PromptVersion{Hash: "abc"}
	assert.Equal(t, "abc", short.ShortHash())
}

func TestMetadataAccessors(t *testing.T) {
	v := &PromptVersion{Metadata: map[string]any{
		MetaModel:       "gpt-4o-mini",
		MetaTemperature: 0.3,
		MetaVersion:     "2.1.0",
	}}

	assert.Equal(t, "gpt-4o-mini", v.Model())
	assert.Equal(t, 0.3, v.Temperature())
	assert.Equal(t, "2.1.0", v.SemVer())
}

func TestMetadataAccessors_Defaults(t *testing.T) {
	tests := []struct {
		name string
		v    *PromptVersion
	}{
		{"nil metadata", &PromptVersion{}},
		{"empty metadata", &PromptVersion{Metadata: map[string]any{}}},
		{"empty string model", &PromptVersion{Metadata: map[string]any{MetaModel: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DefaultModel, tt.v.Model())
			assert.Equal(t, DefaultTemperature, tt.v.Temperature())
			assert.Equal(t, DefaultSemVer, tt.v.SemVer())
		})
	}
}

func TestMetaFloat_NumericTypes(t *testing.T) {
	assert.Equal(t, 0.5, metaFloat(map[string]any{"t": 0.5}, "t", 0))
	assert.Equal(t, 2.0, metaFloat(map[string]any{"t": 2}, "t", 0))
	assert.Equal(t, 3.0, metaFloat(map[string]any{"t": int64(3)}, "t", 0))
	assert.Equal(t, 0.7, metaFloat(map[string]any{"t": "hot"}, "t", 0.7))
}
