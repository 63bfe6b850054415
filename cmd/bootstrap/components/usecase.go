package components

import (
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/infra/payment"
	"hotel-booking-core/internal/pkg/clock"
	"hotel-booking-core/internal/usecase"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewClockReferenceGenerator,
		fx.As(new(booking.ReferenceGenerator)),
	),
	fx.Annotate(
		payment.NewStubGateway,
		fx.As(new(commands.PaymentGateway)),
	),
	commands.NewSideEffects,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewRefundUseCase,
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewRefundQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
