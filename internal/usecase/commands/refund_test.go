//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra/memstore"
	"hotel-booking-core/internal/pkg/clock"
	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/shared"
	"hotel-booking-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RefundCommandsTestSuite struct {
	suite.Suite
	store    *memstore.Store
	clock    *clock.MockClock
	rec      recorders
	bookings commands.BookingCommands
	uc       commands.RefundCommands

	snapshot   booking.Snapshot
	guest      actor.Actor
	hotelAdmin actor.Actor
	superAdmin actor.Actor
}

func (s *RefundCommandsTestSuite) SetupTest() {
	s.store = memstore.New(time.Second)
	s.clock = clock.NewMockClock(builder.FixedNow.Add(time.Hour))
	s.rec = newRecorders()
	s.bookings = commands.NewBookingUseCase(s.store, s.clock, s.rec.effects())
	s.uc = commands.NewRefundUseCase(s.store, s.clock, s.rec.effects())

	s.snapshot = builder.NewBookingBuilder().
		With(func(b *builder.BookingBuilder) { b.Payment.PaymentID = "pay_1" }).
		WithStatus(booking.StatusCancelled).
		BuildSnapshot()
	s.store.PutBooking(s.snapshot)
	s.guest = actor.New(*s.snapshot.UserID, actor.RoleUser)
	s.hotelAdmin = actor.New(s.snapshot.HotelAdmin, actor.RoleHotel)
	s.superAdmin = actor.New(uuid.New(), actor.RoleSuperAdmin)
}

func TestRefundCommandsSuite(t *testing.T) {
	suite.Run(t, new(RefundCommandsTestSuite))
}

func storedRefund(t *testing.T, s *memstore.Store, id uuid.UUID) refund.Snapshot {
	t.Helper()
	var snap refund.Snapshot
	err := s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Refunds().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		snap = r.Snapshot()
		return nil
	})
	require.NoError(t, err)
	return snap
}

func (s *RefundCommandsTestSuite) create(a actor.Actor) (*refund.Request, error) {
	return s.uc.Create(context.Background(), s.snapshot.ID, builder.NewRefundBuilder().BuildInput(), a)
}

func (s *RefundCommandsTestSuite) TestLifecycle() {
	ctx := context.Background()
	confirmed := builder.NewBookingBuilder().
		With(func(b *builder.BookingBuilder) { b.Payment.PaymentID = "pay_1" }).
		BuildSnapshot()
	s.store.PutBooking(confirmed)
	guest := actor.New(*confirmed.UserID, actor.RoleUser)

	// guest cancels the confirmed booking
	b, err := s.bookings.UpdateStatus(ctx, commands.UpdateStatusInput{
		BookingID: confirmed.ID,
		Expected:  "confirmed",
		Next:      "cancelled",
	}, guest)
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, b.Status())

	// guest asks for the money back
	r1, err := s.uc.Create(ctx, confirmed.ID, refund.NewInput{
		Reason:                "plans changed",
		ContactPhone:          "555-0100",
		PreferredRefundMethod: "original_payment_method",
		TotalAmount:           1000,
	}, guest)
	s.Require().NoError(err)
	s.Equal(refund.StatusPending, r1.Status())
	s.Equal(confirmed.Reference, r1.BookingReference())

	// super admin approves
	r1, err = s.uc.Resolve(ctx, r1.ID(), commands.ResolveInput{Decision: "approved", AdminNotes: "verified"}, s.superAdmin)
	s.Require().NoError(err)
	s.Equal(refund.StatusApproved, r1.Status())
	s.Equal("verified", r1.AdminNotes())

	// super admin processes
	res, err := s.uc.Process(ctx, r1.ID(), refund.ProcessInput{RefundAmount: 1000, RefundReason: "customer request"}, s.superAdmin)
	s.Require().NoError(err)
	s.Equal(refund.StatusProcessed, res.Request.Status())
	s.Require().NotNil(res.Booking.Refund())
	s.Equal(int64(1000), res.Booking.Refund().RefundAmount)

	stored := storedBooking(s.T(), s.store, confirmed.ID)
	s.Require().NotNil(stored.Refund)
	s.Equal(booking.RefundStatusProcessed, stored.Refund.RefundStatus)
	s.Equal(r1.ID(), stored.Refund.RefundRequestID)
	s.Equal(s.superAdmin.ID, stored.Refund.RefundedBy)

	storedReq := storedRefund(s.T(), s.store, r1.ID())
	s.Equal(refund.StatusProcessed, storedReq.Status)
	s.Equal(stored.Refund.RefundID, storedReq.RefundID)
	s.Require().NotNil(storedReq.ProcessedBy)
	s.Equal(s.superAdmin.ID, *storedReq.ProcessedBy)

	s.Equal([]string{
		shared.TopicBookingStatusChanged,
		shared.TopicRefundRequested,
		shared.TopicRefundResolved,
		shared.TopicRefundProcessed,
	}, s.rec.publisher.Topics())
	s.Equal([]string{"pending", "approved", "processed"}, s.rec.metrics.refund)
	s.Contains(s.rec.cache.ids, confirmed.ID)
}

func (s *RefundCommandsTestSuite) TestCreate() {
	s.Run("non cancelled booking", func() {
		confirmed := builder.NewBookingBuilder().BuildSnapshot()
		s.store.PutBooking(confirmed)

		_, err := s.uc.Create(context.Background(), confirmed.ID, builder.NewRefundBuilder().BuildInput(), actor.New(*confirmed.UserID, actor.RoleUser))

		s.True(errs.Is(err, refund.ErrBookingNotCancelled))
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("booking without payment", func() {
		unpaid := builder.NewBookingBuilder().WithoutPayment().WithStatus(booking.StatusCancelled).BuildSnapshot()
		s.store.PutBooking(unpaid)

		_, err := s.uc.Create(context.Background(), unpaid.ID, builder.NewRefundBuilder().BuildInput(), actor.New(*unpaid.UserID, actor.RoleUser))

		s.True(errs.Is(err, refund.ErrBookingNotPaid))
	})

	s.Run("guest checkout booking", func() {
		anon := builder.NewBookingBuilder().WithoutUser().WithStatus(booking.StatusCancelled).BuildSnapshot()
		s.store.PutBooking(anon)

		_, err := s.uc.Create(context.Background(), anon.ID, builder.NewRefundBuilder().BuildInput(), actor.New(uuid.New(), actor.RoleUser))

		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("anonymous actor", func() {
		_, err := s.create(actor.Actor{})

		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("hotel admin is not the guest", func() {
		_, err := s.create(s.hotelAdmin)

		s.True(errs.Is(err, refund.ErrNotBookingGuest))
	})

	s.Run("missing fields", func() {
		for name, mutate := range map[string]func(*builder.RefundBuilder){
			"reason": func(r *builder.RefundBuilder) { r.Reason = " " },
			"phone":  func(r *builder.RefundBuilder) { r.Phone = "" },
			"method": func(r *builder.RefundBuilder) { r.Method = "cash" },
			"amount": func(r *builder.RefundBuilder) { r.Amount = 0 },
			"excess": func(r *builder.RefundBuilder) { r.Amount = s.snapshot.TotalAmount + 1 },
		} {
			_, err := s.uc.Create(context.Background(), s.snapshot.ID, builder.NewRefundBuilder().With(mutate).BuildInput(), s.guest)
			s.True(errs.Is(err, errs.ErrValidation), name)
		}
	})

	s.Run("second live request is rejected", func() {
		_, err := s.create(s.guest)
		s.Require().NoError(err)

		_, err = s.create(s.guest)

		s.True(errs.Is(err, refund.ErrAlreadyRequested))
	})

	s.Run("missing booking", func() {
		_, err := s.uc.Create(context.Background(), uuid.New(), builder.NewRefundBuilder().BuildInput(), s.guest)

		s.True(errs.Is(err, booking.ErrNotFound))
	})
}

func (s *RefundCommandsTestSuite) TestCreateAfterRejection() {
	r, err := s.create(s.guest)
	s.Require().NoError(err)
	_, err = s.uc.Resolve(context.Background(), r.ID(), commands.ResolveInput{Decision: "rejected", AdminNotes: "outside policy"}, s.superAdmin)
	s.Require().NoError(err)

	again, err := s.create(s.guest)

	s.Require().NoError(err)
	s.NotEqual(r.ID(), again.ID())
	s.Equal(refund.StatusRejected, storedRefund(s.T(), s.store, r.ID()).Status)
}

func (s *RefundCommandsTestSuite) TestResolve() {
	r, err := s.create(s.guest)
	s.Require().NoError(err)

	s.Run("hotel admin is forbidden", func() {
		_, err := s.uc.Resolve(context.Background(), r.ID(), commands.ResolveInput{Decision: "approved"}, s.hotelAdmin)

		s.True(errs.Is(err, errs.ErrForbidden))
		s.Equal(refund.StatusPending, storedRefund(s.T(), s.store, r.ID()).Status)
	})

	s.Run("decision outside the set", func() {
		_, err := s.uc.Resolve(context.Background(), r.ID(), commands.ResolveInput{Decision: "processed"}, s.superAdmin)

		s.True(errs.Is(err, refund.ErrInvalidDecision))
	})

	s.Run("reject", func() {
		got, err := s.uc.Resolve(context.Background(), r.ID(), commands.ResolveInput{Decision: "Rejected", AdminNotes: " duplicate "}, s.superAdmin)

		s.Require().NoError(err)
		s.Equal(refund.StatusRejected, got.Status())
		s.Equal("duplicate", got.AdminNotes())
		s.Require().NotNil(got.ProcessedAt())
		s.Equal(s.clock.Now(), *got.ProcessedAt())
	})

	s.Run("already resolved", func() {
		_, err := s.uc.Resolve(context.Background(), r.ID(), commands.ResolveInput{Decision: "approved"}, s.superAdmin)

		s.True(errs.Is(err, refund.ErrNotPending))
		s.True(errs.Is(err, errs.ErrInvalidStateTransition))
	})

	s.Run("missing request", func() {
		_, err := s.uc.Resolve(context.Background(), uuid.New(), commands.ResolveInput{Decision: "approved"}, s.superAdmin)

		s.True(errs.Is(err, refund.ErrNotFound))
	})
}

func (s *RefundCommandsTestSuite) TestProcessRejections() {
	pending, err := s.create(s.guest)
	s.Require().NoError(err)
	in := refund.ProcessInput{RefundAmount: 1000, RefundReason: "customer request"}

	s.Run("pending request", func() {
		_, err := s.uc.Process(context.Background(), pending.ID(), in, s.superAdmin)

		s.True(errs.Is(err, refund.ErrNotApproved))
		s.True(errs.Is(err, errs.ErrInvalidStateTransition))
		s.Nil(storedBooking(s.T(), s.store, s.snapshot.ID).Refund)
	})

	s.Run("not super admin", func() {
		_, err := s.uc.Process(context.Background(), pending.ID(), in, s.hotelAdmin)

		s.True(errs.Is(err, errs.ErrForbidden))
	})

	_, err = s.uc.Resolve(context.Background(), pending.ID(), commands.ResolveInput{Decision: "approved"}, s.superAdmin)
	s.Require().NoError(err)

	s.Run("amount above the booking total", func() {
		_, err := s.uc.Process(context.Background(), pending.ID(), refund.ProcessInput{RefundAmount: 5000, RefundReason: "x"}, s.superAdmin)

		s.True(errs.Is(err, refund.ErrAmountExceedsTotal))
		s.Nil(storedBooking(s.T(), s.store, s.snapshot.ID).Refund)
		s.Equal(refund.StatusApproved, storedRefund(s.T(), s.store, pending.ID()).Status)
	})

	s.Run("missing reason", func() {
		_, err := s.uc.Process(context.Background(), pending.ID(), refund.ProcessInput{RefundAmount: 1000}, s.superAdmin)

		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("processing twice", func() {
		_, err := s.uc.Process(context.Background(), pending.ID(), in, s.superAdmin)
		s.Require().NoError(err)

		_, err = s.uc.Process(context.Background(), pending.ID(), in, s.superAdmin)

		s.True(errs.Is(err, refund.ErrNotApproved))
	})
}

// A booking that already carries the request's refund while the request is
// still approved is the state left by an interrupted process call.
func (s *RefundCommandsTestSuite) putUnconfirmed() (refund.Snapshot, booking.RefundInfo) {
	req := builder.NewRefundBuilder().ForBooking(s.snapshot).WithStatus(refund.StatusApproved).BuildSnapshot()
	info := booking.RefundInfo{
		RefundID:        "rf_existing",
		RefundRequestID: req.ID,
		RefundAmount:    800,
		RefundStatus:    booking.RefundStatusProcessed,
		RefundReason:    "customer request",
		RefundedAt:      builder.FixedNow,
		RefundedBy:      s.superAdmin.ID,
	}
	snap := s.snapshot
	snap.Refund = &info
	s.store.PutBooking(snap)
	s.store.PutRefund(req)
	return req, info
}

func (s *RefundCommandsTestSuite) TestProcessCompletesUnconfirmedRequest() {
	req, info := s.putUnconfirmed()

	res, err := s.uc.Process(context.Background(), req.ID, refund.ProcessInput{RefundAmount: 1000, RefundReason: "retry"}, s.superAdmin)

	s.Require().NoError(err)
	s.Equal(refund.StatusProcessed, res.Request.Status())
	s.Equal(info.RefundID, res.Request.RefundID())
	stored := storedBooking(s.T(), s.store, s.snapshot.ID)
	s.Equal(info, *stored.Refund, "the recorded refund is not rewritten")
	s.Equal(refund.StatusProcessed, storedRefund(s.T(), s.store, req.ID).Status)
}

func (s *RefundCommandsTestSuite) TestReconcile() {
	req, info := s.putUnconfirmed()

	s.Run("hotel admin is forbidden", func() {
		_, err := s.uc.Reconcile(context.Background(), req.ID, s.hotelAdmin)

		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("advances the request", func() {
		got, err := s.uc.Reconcile(context.Background(), req.ID, s.superAdmin)

		s.Require().NoError(err)
		s.Equal(refund.StatusProcessed, got.Status())
		s.Equal(info.RefundID, got.RefundID())
		s.Equal([]string{shared.TopicRefundProcessed}, s.rec.publisher.Topics())
		s.Equal(true, s.rec.publisher.Last().Data["reconciled"])
	})

	s.Run("already processed is a no-op", func() {
		got, err := s.uc.Reconcile(context.Background(), req.ID, s.superAdmin)

		s.Require().NoError(err)
		s.Equal(refund.StatusProcessed, got.Status())
		s.Len(s.rec.publisher.Topics(), 1)
	})

	s.Run("request whose booking refund belongs to another request", func() {
		other := builder.NewRefundBuilder().ForBooking(s.snapshot).WithStatus(refund.StatusApproved).BuildSnapshot()
		s.store.PutRefund(other)

		_, err := s.uc.Reconcile(context.Background(), other.ID, s.superAdmin)

		s.True(errs.Is(err, refund.ErrRefundOwnedByOther))
		s.Equal(refund.StatusApproved, storedRefund(s.T(), s.store, other.ID).Status)
	})
}

func (s *RefundCommandsTestSuite) TestProcessRefusesWhenBookingRefundBelongsToAnotherRequest() {
	_, _ = s.putUnconfirmed()
	other := builder.NewRefundBuilder().ForBooking(s.snapshot).WithStatus(refund.StatusApproved).BuildSnapshot()
	s.store.PutRefund(other)

	_, err := s.uc.Process(context.Background(), other.ID, refund.ProcessInput{RefundAmount: 100, RefundReason: "x"}, s.superAdmin)

	s.True(errs.Is(err, refund.ErrRefundOwnedByOther))
	s.Equal(refund.StatusApproved, storedRefund(s.T(), s.store, other.ID).Status)
}

func (s *RefundCommandsTestSuite) TestProcessIsAtomic() {
	req, err := s.create(s.guest)
	s.Require().NoError(err)
	_, err = s.uc.Resolve(context.Background(), req.ID(), commands.ResolveInput{Decision: "approved"}, s.superAdmin)
	s.Require().NoError(err)
	topics := len(s.rec.publisher.Topics())
	in := refund.ProcessInput{RefundAmount: 1000, RefundReason: "customer request"}

	s.Run("request write fails after the booking refund is staged", func() {
		s.store.FailWrite(memstore.OpUpdateRefund, errors.New("connection reset"))

		_, err := s.uc.Process(context.Background(), req.ID(), in, s.superAdmin)

		s.True(errs.Is(err, errs.ErrStoreUnavailable))
		s.True(errs.IsRetryable(err))
		s.Nil(storedBooking(s.T(), s.store, s.snapshot.ID).Refund)
		s.Equal(refund.StatusApproved, storedRefund(s.T(), s.store, req.ID()).Status)
		s.Len(s.rec.publisher.Topics(), topics)
	})

	s.Run("booking write fails", func() {
		s.store.FailWrite(memstore.OpSaveRefund, errors.New("connection reset"))

		_, err := s.uc.Process(context.Background(), req.ID(), in, s.superAdmin)

		s.True(errs.Is(err, errs.ErrStoreUnavailable))
		s.Nil(storedBooking(s.T(), s.store, s.snapshot.ID).Refund)
		s.Equal(refund.StatusApproved, storedRefund(s.T(), s.store, req.ID()).Status)
	})

	s.Run("retry after the failures writes both", func() {
		res, err := s.uc.Process(context.Background(), req.ID(), in, s.superAdmin)

		s.Require().NoError(err)
		stored := storedBooking(s.T(), s.store, s.snapshot.ID)
		s.Require().NotNil(stored.Refund)
		s.Equal(req.ID(), stored.Refund.RefundRequestID)
		storedReq := storedRefund(s.T(), s.store, req.ID())
		s.Equal(refund.StatusProcessed, storedReq.Status)
		s.Equal(res.Request.RefundID(), stored.Refund.RefundID)
	})
}
