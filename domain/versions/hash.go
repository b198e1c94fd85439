package versions

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashEnvelope is the canonical representation fed to the digest. Field
// order is fixed and matches alphabetical key order, so the serialized
// form is stable across process restarts and platforms. Tags, author,
// timestamps and the commit message are deliberately excluded: identity
// is a function of content and generation parameters only.
type hashEnvelope struct {
	Content     string  `json:"content"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Version     string  `json:"version"`
}

// ComputeHash derives the content address for a prompt: the SHA-256 hex
// digest of the canonical UTF-8 serialization of (content, model,
// temperature, version). Pure function; never fails for well-formed input.
func ComputeHash(content string, metadata map[string]any) string {
	envelope := hashEnvelope{
		Content:     content,
		Model:       metaString(metadata, MetaModel, DefaultModel),
		Temperature: metaFloat(metadata, MetaTemperature, DefaultTemperature),
		Version:     metaString(metadata, MetaVersion, DefaultSemVer),
	}

	// Marshal of a flat struct with fixed field order cannot fail
	canonical, _ := json.Marshal(envelope)

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
