package repository

import (
	"context"
	"log/slog"

	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/infra/db"
	"hotel-booking-core/internal/pkg/pgconv"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type HotelDirectory struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewHotelDirectory(dbtx db.DBTX, logger *slog.Logger) *HotelDirectory {
	return &HotelDirectory{
		db:     dbtx,
		logger: logger,
	}
}

const selectRoomListing = `
SELECT h.id, h.admin_id, h.name, h.address, h.city, h.phone,
       r.id, r.name, r.room_type, r.price, r.capacity
FROM rooms r
JOIN hotels h ON h.id = r.hotel_id
WHERE h.id = $1 AND r.id = $2`

func (d *HotelDirectory) RoomByID(ctx context.Context, hotelID, roomID uuid.UUID) (*shared.RoomListing, error) {
	var (
		l        shared.RoomListing
		capacity int32
	)
	err := d.db.QueryRow(ctx, selectRoomListing, hotelID, roomID).Scan(
		&l.Hotel.ID, &l.HotelAdmin, &l.Hotel.Name, &l.Hotel.Address, &l.Hotel.City, &l.Hotel.Phone,
		&l.Room.ID, &l.Room.Name, &l.Room.RoomType, &l.Room.Price, &capacity,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(d.logger, infra.KindNotFound, "room not found", err)
		}
		return nil, infra.WrapRepoErr(d.logger, infra.ClassifyPgError(err), "failed to load room", err)
	}
	l.Room.Capacity = int(capacity)
	return &l, nil
}
