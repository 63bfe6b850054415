package booking

import (
	"fmt"

	"hotel-booking-core/internal/pkg/clock"
)

const referencePrefix = "BK"

type ReferenceGenerator interface {
	// Generate returns the candidate reference for the given attempt,
	// starting at zero. Successive attempts must yield different values.
	Generate(attempt int) string
}

// ClockReferenceGenerator derives references from the last six digits
// of the current epoch milliseconds.
type ClockReferenceGenerator struct {
	clock clock.Clock
}

func NewClockReferenceGenerator(c clock.Clock) *ClockReferenceGenerator {
	return &ClockReferenceGenerator{clock: c}
}

func (g *ClockReferenceGenerator) Generate(attempt int) string {
	ms := g.clock.Now().UnixMilli() + int64(attempt)
	return fmt.Sprintf("%s%06d", referencePrefix, ms%1_000_000)
}
