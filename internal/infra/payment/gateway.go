package payment

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/pkg/clock"
	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/usecase/commands"

	"github.com/lithammer/shortuuid/v3"
)

const (
	StatusCompleted = "completed"
	StatusVoided    = "voided"

	// DeclinedCardNumber passes validation but is always declined.
	DeclinedCardNumber = "4000000000000002"
)

var (
	ErrInvalidCardNumber = errs.Mark(errs.New("invalid card number"), errs.ErrValidation)
	ErrCardExpired       = errs.Mark(errs.New("card expired"), errs.ErrValidation)
	ErrInvalidCVV        = errs.Mark(errs.New("invalid card security code"), errs.ErrValidation)
	ErrMissingCardholder = errs.Mark(errs.New("cardholder name is required"), errs.ErrValidation)
	ErrInvalidAmount     = errs.Mark(errs.New("payment amount must be positive"), errs.ErrValidation)
	ErrCardDeclined      = errs.New("card declined")
	ErrUnknownPayment    = errs.New("unknown payment")
)

// StubGateway validates card data locally and records captures in memory.
// It stands in for a real processor; no money moves.
type StubGateway struct {
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.Mutex
	payments map[string]booking.PaymentInfo
}

func NewStubGateway(clk clock.Clock, logger *slog.Logger) *StubGateway {
	return &StubGateway{
		clock:    clk,
		logger:   logger,
		payments: make(map[string]booking.PaymentInfo),
	}
}

func (g *StubGateway) Capture(ctx context.Context, req commands.CaptureRequest) (booking.PaymentInfo, error) {
	if err := ctx.Err(); err != nil {
		return booking.PaymentInfo{}, err
	}
	number := digitsOnly(req.Card.Number)
	if err := g.validate(req, number); err != nil {
		return booking.PaymentInfo{}, err
	}
	if number == DeclinedCardNumber {
		return booking.PaymentInfo{}, ErrCardDeclined
	}

	info := booking.PaymentInfo{
		PaymentID:      "pay_" + shortuuid.New(),
		OrderID:        "ord_" + shortuuid.New(),
		Method:         "card",
		CardBrand:      brandOf(number),
		LastFourDigits: number[len(number)-4:],
		CardholderName: strings.TrimSpace(req.Card.CardholderName),
		Amount:         req.Amount.Minor(),
		Status:         StatusCompleted,
		PaidAt:         g.clock.Now(),
	}

	g.mu.Lock()
	g.payments[info.PaymentID] = info
	g.mu.Unlock()

	g.logger.Info("payment captured", "payment_id", info.PaymentID, "amount", info.Amount, "brand", info.CardBrand)
	return info, nil
}

func (g *StubGateway) Void(_ context.Context, paymentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	info, ok := g.payments[paymentID]
	if !ok {
		return errs.Wrapf(ErrUnknownPayment, "void %s", paymentID)
	}
	info.Status = StatusVoided
	g.payments[paymentID] = info
	return nil
}

// Lookup returns a captured or voided payment.
func (g *StubGateway) Lookup(paymentID string) (booking.PaymentInfo, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	info, ok := g.payments[paymentID]
	return info, ok
}

func (g *StubGateway) validate(req commands.CaptureRequest, number string) error {
	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if len(number) < 12 || len(number) > 19 || !luhnValid(number) {
		return ErrInvalidCardNumber
	}
	cvv := strings.TrimSpace(req.Card.CVV)
	if len(cvv) < 3 || len(cvv) > 4 || strings.IndexFunc(cvv, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return ErrInvalidCVV
	}
	if strings.TrimSpace(req.Card.CardholderName) == "" {
		return ErrMissingCardholder
	}

	month, year := req.Card.ExpiryMonth, req.Card.ExpiryYear
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 {
		return ErrCardExpired
	}
	now := g.clock.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}
	return nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func brandOf(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case len(number) >= 2 && number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return "mastercard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "amex"
	default:
		return "card"
	}
}
