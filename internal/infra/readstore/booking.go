package readstore

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/infra/db"
	"hotel-booking-core/internal/infra/repository"
	"hotel-booking-core/internal/pkg/pgconv"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db      db.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, timeout time.Duration, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{
		db:      dbtx,
		timeout: timeout,
		logger:  logger,
	}
}

const selectBookingByID = `SELECT ` + repository.BookingColumns + ` FROM bookings WHERE id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	s, err := repository.ScanBooking(r.db.QueryRow(ctx, selectBookingByID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find booking by ID", err)
	}
	return queries.NewBookingView(booking.Reconstruct(s)), nil
}

func (r *BookingReadStore) List(ctx context.Context, q queries.BookingListQuery) ([]*queries.BookingView, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	sql, args := buildBookingList(q)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0, q.Limit)
	for rows.Next() {
		s, err := repository.ScanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to scan booking", err)
		}
		views = append(views, queries.NewBookingView(booking.Reconstruct(s)))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate bookings", err)
	}
	return views, nil
}

// buildBookingList renders the keyset query for q. Pages are ordered by
// (created_at, id) so equal timestamps still page deterministically.
func buildBookingList(q queries.BookingListQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.HotelAdmin != nil {
		where = append(where, "hotel_admin = "+arg(*q.HotelAdmin))
	}
	if q.UserID != nil {
		where = append(where, "user_id = "+arg(*q.UserID))
	}
	if q.Status != nil {
		where = append(where, "lower(status) = lower("+arg(*q.Status)+")")
	}

	cmp, dir := "<", "DESC"
	if q.Order == queries.OrderOldestFirst {
		cmp, dir = ">", "ASC"
	}
	if q.After != nil {
		where = append(where, "(created_at, id) "+cmp+" ("+arg(q.After.CreatedAt)+", "+arg(q.After.ID)+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + repository.BookingColumns + " FROM bookings")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at " + dir + ", id " + dir)
	if q.Limit > 0 {
		b.WriteString(" LIMIT " + arg(q.Limit))
	}
	return b.String(), args
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
