package prompts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptops-dev/promptops/domain/deployments"
	"github.com/promptops-dev/promptops/domain/versions"
)

func TestNewSnapshot(t *testing.T) {
	deployedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	dep := &deployments.Deployment{
		Environment: deployments.EnvProd,
		DeployedAt:  deployedAt,
		Version: &versions.PromptVersion{
			Hash:    "abc123",
			Content: "You are a helpful assistant.",
			Metadata: map[string]any{
				versions.MetaModel:       "gpt-4o",
				versions.MetaTemperature: 0.2,
				versions.MetaVersion:     "2.1.0",
			},
			Tags: []string{"support", "stable"},
		},
	}

	snap := NewSnapshot(dep)

	assert.Equal(t, "You are a helpful assistant.", snap.Content)
	assert.Equal(t, "abc123", snap.Hash)
	assert.Equal(t, "2.1.0", snap.Version)
	assert.Equal(t, "gpt-4o", snap.Model)
	assert.Equal(t, 0.2, snap.Temperature)
	assert.Equal(t, []string{"support", "stable"}, snap.Tags)
	assert.Equal(t, deployedAt, snap.DeployedAt)
	assert.Equal(t, deployments.EnvProd, snap.Environment)
}

func TestNewSnapshotDefaults(t *testing.T) {
	dep := &deployments.Deployment{
		Environment: deployments.EnvDev,
		Version: &versions.PromptVersion{
			Hash:    "def456",
			Content: "hello",
		},
	}

	snap := NewSnapshot(dep)

	assert.Equal(t, versions.DefaultModel, snap.Model)
	assert.Equal(t, versions.DefaultTemperature, snap.Temperature)
	assert.Equal(t, versions.DefaultSemVer, snap.Version)
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	snap := &Snapshot{
		Content:     "line one\nline two",
		Hash:        "abc123",
		Version:     "1.0.0",
		Model:       "gpt-4",
		Temperature: 0.7,
		Metadata:    map[string]any{"owner": "platform"},
		Tags:        []string{"stable"},
		DeployedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Environment: deployments.EnvStaging,
	}

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, snap.Content, back.Content)
	assert.Equal(t, snap.Hash, back.Hash)
	assert.Equal(t, snap.DeployedAt, back.DeployedAt)
	assert.Equal(t, snap.Environment, back.Environment)
}
