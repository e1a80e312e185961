package components

import (
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/readstore"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/repository"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		NewTxBeginner,
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		fx.Annotate(
			repository.NewPaymentRepository,
			fx.As(new(commands.PaymentRepository)),
		),
		fx.Annotate(
			repository.NewOperatorRepository,
			fx.As(new(commands.OperatorRepository)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
		fx.Annotate(
			readstore.NewPackageReadStore,
			fx.As(new(queries.PackageReadStore)),
		),
		fx.Annotate(
			readstore.NewOperatorReadStore,
			fx.As(new(queries.OperatorReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) commands.TxBeginner {
	return pool
}
