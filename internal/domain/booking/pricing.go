package booking

// Quote prices a stay: unit price times nights, plus taxes and fees
// at taxRateBps basis points of the room total.
func Quote(room RoomDetails, checkIn, checkOut Date, taxRateBps int64) (Pricing, error) {
	if !checkOut.After(checkIn) {
		return Pricing{}, ErrInvalidStayDates
	}
	if room.Price <= 0 {
		return Pricing{}, ErrInvalidRoomPrice
	}
	unit, err := NewMoney(room.Price)
	if err != nil {
		return Pricing{}, err
	}
	nights := NightsBetween(checkIn, checkOut)
	total := unit.Times(nights)
	taxes := total.ApplyBps(taxRateBps)

	return Pricing{
		UnitPrice:    unit,
		Nights:       nights,
		TotalPrice:   total,
		TaxesAndFees: taxes,
		TotalAmount:  total.Add(taxes),
	}, nil
}
