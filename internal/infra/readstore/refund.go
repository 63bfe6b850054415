package readstore

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/infra/db"
	"hotel-booking-core/internal/infra/repository"
	"hotel-booking-core/internal/pkg/pgconv"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RefundReadStore struct {
	db      db.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

func NewRefundReadStore(dbtx db.DBTX, timeout time.Duration, logger *slog.Logger) *RefundReadStore {
	return &RefundReadStore{
		db:      dbtx,
		timeout: timeout,
		logger:  logger,
	}
}

// An approved request is unconfirmed when its booking already carries the
// refund it produced: the booking write committed, the request write did not.
const unconfirmedColumn = `EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.id = refund_requests.booking_id
	  AND refund_requests.status = 'approved'
	  AND b.refund_info ->> 'refundRequestId' = refund_requests.id::text
) AS unconfirmed`

const selectRefundByID = `SELECT ` + repository.RefundColumns + `, ` + unconfirmedColumn + `
FROM refund_requests WHERE id = $1`

func (r *RefundReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RefundView, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	v, err := scanRefundView(r.db.QueryRow(ctx, selectRefundByID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "refund request not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find refund request by ID", err)
	}
	return v, nil
}

func (r *RefundReadStore) List(ctx context.Context, f queries.RefundFilter) ([]*queries.RefundView, error) {
	var (
		where []string
		args  []any
	)
	if f.BookingID != nil {
		args = append(args, *f.BookingID)
		where = append(where, "booking_id = $"+strconv.Itoa(len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}

	dir := "DESC"
	if f.Order == queries.OrderOldestFirst {
		dir = "ASC"
	}

	sql := "SELECT " + repository.RefundColumns + ", " + unconfirmedColumn + " FROM refund_requests"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY requested_at " + dir + ", id " + dir
	return r.list(ctx, sql, args...)
}

const selectUnconfirmed = `
SELECT ` + repository.RefundColumns + `, TRUE AS unconfirmed
FROM refund_requests
WHERE status = 'approved'
  AND EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.id = refund_requests.booking_id
	  AND b.refund_info ->> 'refundRequestId' = refund_requests.id::text
  )
ORDER BY requested_at ASC, id ASC`

func (r *RefundReadStore) ListUnconfirmed(ctx context.Context) ([]*queries.RefundView, error) {
	return r.list(ctx, selectUnconfirmed)
}

func (r *RefundReadStore) list(ctx context.Context, sql string, args ...any) ([]*queries.RefundView, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list refund requests", err)
	}
	defer rows.Close()

	var views []*queries.RefundView
	for rows.Next() {
		v, err := scanRefundView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to scan refund request", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate refund requests", err)
	}
	return views, nil
}

func scanRefundView(row pgx.Row) (*queries.RefundView, error) {
	var unconfirmed bool
	s, err := repository.ScanRefund(row, &unconfirmed)
	if err != nil {
		return nil, err
	}
	v := queries.NewRefundView(refund.Reconstruct(s))
	v.Unconfirmed = unconfirmed
	return v, nil
}
