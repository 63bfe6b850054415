package commands

import (
	"context"

	"hotel-booking-core/internal/domain/booking"
)

// CardInput is raw card data as submitted at checkout. It is handed to the
// gateway and never persisted or logged.
type CardInput struct {
	Number         string
	ExpiryMonth    int
	ExpiryYear     int
	CVV            string
	CardholderName string
}

type CaptureRequest struct {
	Card        CardInput
	Amount      booking.Money
	Description string
}

type PaymentGateway interface {
	// Capture charges the card and returns the masked payment record.
	Capture(ctx context.Context, req CaptureRequest) (booking.PaymentInfo, error)
	// Void releases a captured payment whose booking could not be stored.
	Void(ctx context.Context, paymentID string) error
}
