package components

import (
	"github.com/maysqunaibi/strollers-mvp/internal/infra/intentstore"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/provider"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/vendor"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewProviderClient,
		NewVendorClient,
		NewIntentStore,
		fx.Annotate(
			func(c *provider.Client) *provider.Client { return c },
			fx.As(new(commands.ProviderGateway)),
		),
		fx.Annotate(
			func(c *vendor.Client) *vendor.Client { return c },
			fx.As(new(commands.VendorGateway)),
		),
		fx.Annotate(
			func(s *intentstore.Store) *intentstore.Store { return s },
			fx.As(new(commands.IntentStore)),
		),
	),
)

func NewProviderClient(cfg config.Config) *provider.Client {
	return provider.NewClient(cfg.Provider)
}

func NewVendorClient(cfg config.Config) *vendor.Client {
	return vendor.NewClient(cfg.Vendor)
}

func NewIntentStore(client *redis.Client, cfg config.Config) *intentstore.Store {
	return intentstore.NewStore(client, cfg.Redis.IntentTTL)
}
