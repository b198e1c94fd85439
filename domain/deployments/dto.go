package deployments

import "time"

// DeployRequest is the request body for deploying a version
type DeployRequest struct {
	VersionHash string `json:"version_hash"`
	Environment string `json:"environment"`
	DeployedBy  string `json:"deployed_by"`
}

// DeployResponse confirms a deployment
type DeployResponse struct {
	Success     bool      `json:"success"`
	VersionHash string    `json:"version_hash"`
	Environment string    `json:"environment"`
	DeployedAt  time.Time `json:"deployed_at"`
	Message     string    `json:"message"`
}

// RollbackResponse confirms a rollback
type RollbackResponse struct {
	Success      bool   `json:"success"`
	Environment  string `json:"environment"`
	RolledBackTo string `json:"rolled_back_to"`
	Message      string `json:"message"`
}

// HistoryEntry is one row of the deployment history response
type HistoryEntry struct {
	VersionHash string    `json:"version_hash"`
	DeployedAt  time.Time `json:"deployed_at"`
	DeployedBy  string    `json:"deployed_by"`
	IsActive    bool      `json:"is_active"`
	Action      string    `json:"action"`
}

// HistoryResponse wraps the deployment history for an environment
type HistoryResponse struct {
	Environment string         `json:"environment"`
	Count       int            `json:"count"`
	Deployments []HistoryEntry `json:"deployments"`
}
