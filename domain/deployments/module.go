package deployments

import (
	"go.uber.org/fx"
)

// Module provides the deployments domain
var Module = fx.Module("deployments",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
