package components

import (
	"github.com/maysqunaibi/strollers-mvp/internal/handler"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/api"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRentalHandler,
		api.NewPaymentHandler,
		api.NewReturnHandler,
		api.NewOrderHandler,
		api.NewCatalogHandler,
		api.NewDeviceHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	rental *api.RentalHandler,
	payment *api.PaymentHandler,
	ret *api.ReturnHandler,
	order *api.OrderHandler,
	catalog *api.CatalogHandler,
	device *api.DeviceHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Rental:  rental,
		Payment: payment,
		Return:  ret,
		Order:   order,
		Catalog: catalog,
		Device:  device,
	}
}
