package deployments

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/promptops-dev/promptops/domain/versions"
)

// Deployment environments. The set is fixed; anything else is rejected
// before touching the store.
const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Actions recorded in the audit trail
const (
	ActionDeploy   = "deploy"
	ActionRollback = "rollback"
)

// ValidEnvironments lists the accepted deployment targets
var ValidEnvironments = []string{EnvDev, EnvStaging, EnvProd}

// IsValidEnvironment reports whether env names a known environment
func IsValidEnvironment(env string) bool {
	for _, e := range ValidEnvironments {
		if e == env {
			return true
		}
	}
	return false
}

// Deployment is one activation event in the deployments table. The table
// is uniformly append-only: deploys and rollbacks both insert a new row
// and deactivate the prior active one, so the full audit trail is always
// the row sequence and the active pointer is the most recent active row.
type Deployment struct {
	bun.BaseModel `bun:"table:deployments,alias:d"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	VersionID   string    `bun:"version_id,notnull,type:uuid" json:"version_id"`
	Environment string    `bun:"environment,notnull" json:"environment"`
	DeployedBy  string    `bun:"deployed_by,notnull" json:"deployed_by"`
	DeployedAt  time.Time `bun:"deployed_at,notnull,default:now()" json:"deployed_at"`
	IsActive    bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	Action      string    `bun:"action,notnull,default:'deploy'" json:"action"`

	// Populated when loaded with the Version relation
	Version *versions.PromptVersion `bun:"rel:belongs-to,join:version_id=id" json:"version,omitempty"`
}
