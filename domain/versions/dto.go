package versions

// CommitRequest is the request body for committing a new version
type CommitRequest struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Author   string         `json:"author"`
	Message  string         `json:"message,omitempty"`
	ParentID *string        `json:"parent_id,omitempty"`
}

// LineageResponse wraps the commit events for a version
type LineageResponse struct {
	Count  int           `json:"count"`
	Events []CommitEvent `json:"events"`
}

// HistoryResponse wraps a history walk result
type HistoryResponse struct {
	Count    int             `json:"count"`
	Versions []PromptVersion `json:"versions"`
}
