//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra/db"
	"hotel-booking-core/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestHotel(t *testing.T, conn DBLike, adminID uuid.UUID, name string) booking.HotelDetails {
	t.Helper()

	hotel := booking.HotelDetails{ID: uuid.New(), Name: name, Address: "1 Quay Street", City: "Lisbon"}
	_, err := conn.Exec(context.Background(),
		"INSERT INTO hotels (id, admin_id, name, address, city) VALUES ($1, $2, $3, $4, $5)",
		hotel.ID, adminID, hotel.Name, hotel.Address, hotel.City)
	require.NoError(t, err)
	return hotel
}

func CreateTestRoom(t *testing.T, conn DBLike, hotelID uuid.UUID, price int64, capacity int) booking.RoomDetails {
	t.Helper()

	room := booking.RoomDetails{ID: uuid.New(), Name: "Deluxe Double", RoomType: "double", Price: price, Capacity: capacity}
	_, err := conn.Exec(context.Background(),
		"INSERT INTO rooms (id, hotel_id, name, room_type, price, capacity) VALUES ($1, $2, $3, $4, $5, $6)",
		room.ID, hotelID, room.Name, room.RoomType, room.Price, room.Capacity)
	require.NoError(t, err)
	return room
}

// CreateTestBooking stores s as-is, bypassing checkout.
func CreateTestBooking(t *testing.T, dbtx db.DBTX, s booking.Snapshot) {
	t.Helper()

	repo := repository.NewBookingRepository(dbtx, discardLogger())
	require.NoError(t, repo.Create(context.Background(), booking.Reconstruct(s)))
}

func CreateTestRefund(t *testing.T, dbtx db.DBTX, s refund.Snapshot) {
	t.Helper()

	repo := repository.NewRefundRepository(dbtx, discardLogger())
	require.NoError(t, repo.Create(context.Background(), refund.Reconstruct(s)))
}

func BookingStatus(t *testing.T, conn DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := conn.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func RefundStatus(t *testing.T, conn DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := conn.QueryRow(context.Background(), "SELECT status FROM refund_requests WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
