package prompts

import (
	"go.uber.org/fx"
)

// Module provides the prompt serving domain
var Module = fx.Module("prompts",
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
