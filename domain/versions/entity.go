package versions

import (
	"time"

	"github.com/uptrace/bun"
)

// Metadata keys with first-class meaning. Everything else in the metadata
// map is carried but ignored by hashing.
const (
	MetaModel         = "model"
	MetaTemperature   = "temperature"
	MetaVersion       = "version"
	MetaCommitMessage = "commit_message"
)

// Defaults applied when a metadata key is absent
const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	DefaultSemVer      = "1.0.0"
)

// PromptVersion is an immutable content-addressed version node in the
// versions table. Rows are append-only: never mutated, never deleted.
type PromptVersion struct {
	bun.BaseModel `bun:"table:versions,alias:v"`

	ID        string         `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Hash      string         `bun:"hash,notnull" json:"hash"`
	Content   string         `bun:"content,notnull" json:"content"`
	Metadata  map[string]any `bun:"metadata,type:jsonb,default:'{}'" json:"metadata"`
	Tags      []string       `bun:"tags,type:jsonb,default:'[]'" json:"tags"`
	Author    string         `bun:"author,notnull" json:"author"`
	ParentID  *string        `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	CreatedAt time.Time      `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// ShortHash returns the abbreviated display form of the hash
func (v *PromptVersion) ShortHash() string {
	if len(v.Hash) < 8 {
		return v.Hash
	}
	return v.Hash[:8]
}

// Model returns the model name from metadata, or the default
func (v *PromptVersion) Model() string {
	return metaString(v.Metadata, MetaModel, DefaultModel)
}

// Temperature returns the sampling temperature from metadata, or the default
func (v *PromptVersion) Temperature() float64 {
	return metaFloat(v.Metadata, MetaTemperature, DefaultTemperature)
}

// SemVer returns the semantic version label from metadata, or the default
func (v *PromptVersion) SemVer() string {
	return metaString(v.Metadata, MetaVersion, DefaultSemVer)
}

// CommitEvent records the intent of a single commit call: which node it
// produced and which parent the caller named. Unlike the version node, an
// event is appended on every commit, including deduplicated ones, so
// lineage survives content reuse.
type CommitEvent struct {
	bun.BaseModel `bun:"table:commit_events,alias:ce"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	VersionHash string    `bun:"version_hash,notnull" json:"version_hash"`
	ParentHash  *string   `bun:"parent_hash" json:"parent_hash,omitempty"`
	Author      string    `bun:"author,notnull" json:"author"`
	Message     string    `bun:"message,notnull,default:''" json:"message"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

func metaString(meta map[string]any, key, fallback string) string {
	if meta == nil {
		return fallback
	}
	if s, ok := meta[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func metaFloat(meta map[string]any, key string, fallback float64) float64 {
	if meta == nil {
		return fallback
	}
	switch n := meta[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return fallback
}
