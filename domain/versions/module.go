package versions

import (
	"go.uber.org/fx"
)

// Module provides the versions domain
var Module = fx.Module("versions",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
