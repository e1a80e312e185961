package bootstrap

import (
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
