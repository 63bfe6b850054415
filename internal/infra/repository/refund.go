package repository

import (
	"context"
	"log/slog"

	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/infra/db"
	"hotel-booking-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RefundRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewRefundRepository(dbtx db.DBTX, logger *slog.Logger) *RefundRepository {
	return &RefundRepository{
		db:     dbtx,
		logger: logger,
	}
}

const insertRefund = `
INSERT INTO refund_requests (` + RefundColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

// Create relies on the partial unique index over live requests; a second
// pending or approved request for the same booking is a duplicate key.
func (r *RefundRepository) Create(ctx context.Context, req *refund.Request) error {
	s := req.Snapshot()
	_, err := r.db.Exec(ctx, insertRefund,
		s.ID, s.BookingID, s.BookingReference, s.TotalAmount, s.Reason, s.Description,
		s.ContactPhone, string(s.PreferredRefundMethod), string(s.Status), s.RequestedAt, s.RequestedBy,
		s.AdminNotes, pgconv.TimePtrToPgtype(s.ProcessedAt), pgconv.UUIDPtrToPgtype(s.ProcessedBy), s.RefundID, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create refund request", err)
	}
	return nil
}

const selectRefundForUpdate = `SELECT ` + RefundColumns + ` FROM refund_requests WHERE id = $1 FOR UPDATE`

func (r *RefundRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*refund.Request, error) {
	s, err := ScanRefund(r.db.QueryRow(ctx, selectRefundForUpdate, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "refund request not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to load refund request", err)
	}
	return refund.Reconstruct(s), nil
}

const liveRefundExists = `
SELECT EXISTS (
	SELECT 1 FROM refund_requests
	WHERE booking_id = $1 AND status IN ('pending', 'approved')
)`

func (r *RefundRepository) HasLiveRequest(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var live bool
	if err := r.db.QueryRow(ctx, liveRefundExists, bookingID).Scan(&live); err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to check live refund requests", err)
	}
	return live, nil
}

const updateRefund = `
UPDATE refund_requests
SET status = $3, admin_notes = $4, processed_at = $5, processed_by = $6, refund_id = $7, updated_at = $8
WHERE id = $1 AND status = $2`

func (r *RefundRepository) Update(ctx context.Context, req *refund.Request, expected refund.Status) error {
	s := req.Snapshot()
	tag, err := r.db.Exec(ctx, updateRefund,
		s.ID, string(expected), string(s.Status), s.AdminNotes,
		pgconv.TimePtrToPgtype(s.ProcessedAt), pgconv.UUIDPtrToPgtype(s.ProcessedBy), s.RefundID, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update refund request", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM refund_requests WHERE id = $1)`, s.ID).Scan(&exists); err != nil {
			return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to check refund request", err)
		}
		if !exists {
			return infra.WrapRepoErr(r.logger, infra.KindNotFound, "refund request not found", nil)
		}
		return infra.WrapRepoErr(r.logger, infra.KindStaleWrite, "refund request status changed concurrently", nil)
	}
	return nil
}
