package prompts

import (
	"time"

	"github.com/promptops-dev/promptops/domain/deployments"
)

// Snapshot is the serialized form of an active prompt served to readers.
// This is exactly what gets cached, so it carries everything a consumer
// needs without a second lookup.
type Snapshot struct {
	Content     string         `json:"content"`
	Hash        string         `json:"hash"`
	Version     string         `json:"version"`
	Model       string         `json:"model"`
	Temperature float64        `json:"temperature"`
	Metadata    map[string]any `json:"metadata"`
	Tags        []string       `json:"tags"`
	DeployedAt  time.Time      `json:"deployed_at"`
	Environment string         `json:"environment"`
}

// NewSnapshot builds a snapshot from an active deployment with its
// version loaded
func NewSnapshot(d *deployments.Deployment) *Snapshot {
	v := d.Version
	return &Snapshot{
		Content:     v.Content,
		Hash:        v.Hash,
		Version:     v.SemVer(),
		Model:       v.Model(),
		Temperature: v.Temperature(),
		Metadata:    v.Metadata,
		Tags:        v.Tags,
		DeployedAt:  d.DeployedAt,
		Environment: d.Environment,
	}
}
