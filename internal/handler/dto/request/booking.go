package request

import (
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type UpdateStatusRequest struct {
	ExpectedStatus string `json:"expectedStatus" binding:"required"`
	Status         string `json:"status" binding:"required"`
}

func (r *UpdateStatusRequest) ToInput(bookingID uuid.UUID) commands.UpdateStatusInput {
	return commands.UpdateStatusInput{
		BookingID: bookingID,
		Expected:  r.ExpectedStatus,
		Next:      r.Status,
	}
}

type AssignRoomNumberRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required"`
}

type ListBookingsQuery struct {
	HotelAdmin string `form:"hotel_admin"`
	UserID     string `form:"user_id"`
	Status     string `form:"status"`
	Order      string `form:"order"`
	Limit      int    `form:"limit"`
	After      string `form:"after"`
}

func (q *ListBookingsQuery) ToFilter() (queries.BookingFilter, *queries.Cursor, error) {
	var f queries.BookingFilter

	order, err := queries.ParseSortOrder(q.Order)
	if err != nil {
		return f, nil, err
	}
	f.Order = order

	if f.HotelAdmin, err = parseOptionalUUID(q.HotelAdmin); err != nil {
		return f, nil, err
	}
	if f.UserID, err = parseOptionalUUID(q.UserID); err != nil {
		return f, nil, err
	}
	if q.Status != "" {
		status := q.Status
		f.Status = &status
	}

	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}
	return f, cursor, nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, ErrInvalidID
	}
	return &id, nil
}
