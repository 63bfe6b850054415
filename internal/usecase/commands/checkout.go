package commands

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/pkg/clock"
	"hotel-booking-core/internal/pkg/config"
	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound        = errs.Mark(errs.New("room not found"), errs.ErrNotFound)
	ErrPaymentDeclined     = errs.Mark(errs.New("payment declined"), errs.ErrValidation)
	ErrReferenceExhausted  = errs.Mark(errs.New("could not allocate a unique booking reference"), errs.ErrStoreUnavailable)
	ErrPaymentNotPersisted = errs.New("payment captured but booking could not be stored")
)

type CheckoutInput struct {
	HotelID      uuid.UUID
	RoomID       uuid.UUID
	CheckIn      string
	CheckOut     string
	Guests       int
	GuestInfo    []booking.GuestInfo
	SpecialNotes string
	Card         CardInput
}

type CheckoutCommands interface {
	// Checkout prices the stay, captures payment and stores a confirmed
	// booking. Anonymous actors produce a booking without a userId.
	Checkout(ctx context.Context, in CheckoutInput, a actor.Actor) (*booking.Booking, error)
}

type checkoutUseCaseImpl struct {
	uow        shared.UnitOfWork
	gateway    PaymentGateway
	references booking.ReferenceGenerator
	clock      clock.Clock
	effects    *SideEffects
	cfg        config.CheckoutConfig
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	references booking.ReferenceGenerator,
	clk clock.Clock,
	effects *SideEffects,
	cfg config.Config,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:        uow,
		gateway:    gateway,
		references: references,
		clock:      clk,
		effects:    effects,
		cfg:        cfg.Checkout,
	}
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, in CheckoutInput, a actor.Actor) (*booking.Booking, error) {
	b, err := uc.checkout(ctx, in, a)
	if err != nil {
		return nil, uc.effects.failed("checkout", err)
	}
	return b, nil
}

func (uc *checkoutUseCaseImpl) checkout(ctx context.Context, in CheckoutInput, a actor.Actor) (*booking.Booking, error) {
	now := uc.clock.Now()

	checkIn, err := booking.ParseDate(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := booking.ParseDate(in.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := booking.ValidateStay(checkIn, checkOut, booking.DateOf(now)); err != nil {
		return nil, err
	}

	listing, err := uc.lookupRoom(ctx, in.HotelID, in.RoomID)
	if err != nil {
		return nil, err
	}
	if err := booking.ValidateGuests(in.Guests, listing.Room, in.GuestInfo); err != nil {
		return nil, err
	}
	pricing, err := booking.Quote(listing.Room, checkIn, checkOut, uc.cfg.TaxRateBps)
	if err != nil {
		return nil, err
	}

	payment, err := uc.gateway.Capture(ctx, CaptureRequest{
		Card:        in.Card,
		Amount:      pricing.TotalAmount,
		Description: listing.Hotel.Name + " / " + listing.Room.Name,
	})
	if err != nil {
		if errs.Is(err, errs.ErrValidation) {
			return nil, err
		}
		return nil, errs.Mark(errs.Wrap(err, "payment capture failed"), ErrPaymentDeclined)
	}

	var userID *uuid.UUID
	if !a.IsAnonymous() {
		id := a.ID
		userID = &id
	}
	params := booking.NewParams{
		UserID:       userID,
		HotelAdmin:   listing.HotelAdmin,
		Hotel:        listing.Hotel,
		Room:         listing.Room,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Guests:       in.Guests,
		GuestInfo:    in.GuestInfo,
		Pricing:      pricing,
		Payment:      payment,
		SpecialNotes: in.SpecialNotes,
	}

	b, err := uc.store(ctx, params, now)
	if err != nil {
		uc.voidPayment(ctx, payment.PaymentID, err)
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", b.ID(),
		"reference", b.Reference(),
		"hotel_admin", b.HotelAdmin(),
		"total_amount", b.TotalAmount().Minor(),
		"payment_id", payment.PaymentID)
	uc.effects.metrics.BookingCreated()
	uc.effects.afterCommit(ctx, uuid.Nil, shared.Event{
		Topic:       shared.TopicBookingCreated,
		AggregateID: b.ID(),
		ActorID:     a.ID,
		OccurredAt:  now,
		Data: map[string]any{
			"reference":   b.Reference(),
			"hotelId":     b.Hotel().ID.String(),
			"checkIn":     b.CheckIn().String(),
			"checkOut":    b.CheckOut().String(),
			"totalAmount": b.TotalAmount().Minor(),
		},
	})
	return b, nil
}

func (uc *checkoutUseCaseImpl) lookupRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*shared.RoomListing, error) {
	var listing *shared.RoomListing
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Hotels().RoomByID(ctx, hotelID, roomID)
		if err != nil {
			return infra.ToDomainError(err, ErrRoomNotFound)
		}
		listing = l
		return nil
	})
	if err != nil {
		return nil, infra.ToDomainError(err, err)
	}
	return listing, nil
}

// store inserts the booking, moving to the next reference candidate on a
// collision. Each attempt is its own transaction because a failed insert
// aborts the enclosing one.
func (uc *checkoutUseCaseImpl) store(ctx context.Context, params booking.NewParams, now time.Time) (*booking.Booking, error) {
	attempts := uc.cfg.ReferenceAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		params.Reference = uc.references.Generate(attempt)
		b, err := booking.New(params, now)
		if err != nil {
			return nil, err
		}

		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Create(ctx, b)
		})
		if err == nil {
			return b, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, infra.ToDomainError(err, err)
		}
		slog.Warn("booking reference collision", "reference", params.Reference, "attempt", attempt+1)
	}
	return nil, ErrReferenceExhausted
}

func (uc *checkoutUseCaseImpl) voidPayment(ctx context.Context, paymentID string, cause error) {
	if err := uc.gateway.Void(ctx, paymentID); err != nil {
		slog.Error(ErrPaymentNotPersisted.Error(),
			"payment_id", paymentID,
			"cause", cause.Error(),
			"void_error", err.Error())
		return
	}
	slog.Warn("payment voided after failed booking insert", "payment_id", paymentID, "cause", cause.Error())
}
