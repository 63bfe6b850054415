package components

import (
	"hotel-booking-core/internal/handler"
	"hotel-booking-core/internal/handler/api"
	"hotel-booking-core/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewRefundHandler,
		api.NewCheckoutHandler,
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, r *api.RefundHandler, c *api.CheckoutHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Refund: r, Checkout: c}
		},
	),
	fx.Invoke(handler.NewRouter),
)
