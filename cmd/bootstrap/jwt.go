package bootstrap

import (
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessDuration, cfg.JWT.RefreshDuration)
}
