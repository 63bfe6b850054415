package api

import (
	"net/http"

	reqdto "hotel-booking-core/internal/handler/dto/request"
	resdto "hotel-booking-core/internal/handler/dto/response"
	"hotel-booking-core/internal/handler/httperr"
	"hotel-booking-core/internal/handler/middleware"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RefundHandler struct {
	cmds commands.RefundCommands
	q    queries.RefundQueries
}

func NewRefundHandler(cmds commands.RefundCommands, q queries.RefundQueries) *RefundHandler {
	return &RefundHandler{cmds: cmds, q: q}
}

// @Summary Request a refund
// @Description Open a refund request for a cancelled, paid booking
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CreateRefundRequest true "Refund request"
// @Success 201 {object} resdto.RefundResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/refund-requests [post]
func (h *RefundHandler) Create(c *gin.Context) {
	bookingID, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.Create(c.Request.Context(), bookingID, req.ToInput(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRefund(r))
}

// @Summary List refund requests
// @Description Super-admins see every request; other callers must pass a booking_id they can view
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param booking_id query string false "Booking ID"
// @Param status query string false "Refund status"
// @Param order query string false "asc or desc"
// @Success 200 {array} resdto.RefundResponse
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /refund-requests [get]
func (h *RefundHandler) List(c *gin.Context) {
	var query reqdto.ListRefundsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.List(c.Request.Context(), filter, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundList(views))
}

// @Summary Get refund request
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund request ID"
// @Success 200 {object} resdto.RefundResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /refund-requests/{id} [get]
func (h *RefundHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundView(view))
}

// @Summary Resolve refund request
// @Description Approve or reject a pending request (super-admin)
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund request ID"
// @Param request body reqdto.ResolveRefundRequest true "Decision"
// @Success 200 {object} resdto.RefundResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /refund-requests/{id}/resolution [post]
func (h *RefundHandler) Resolve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.ResolveRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.Resolve(c.Request.Context(), id, req.ToInput(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefund(r))
}

// @Summary Process refund
// @Description Record the refund on the booking and mark an approved request processed (super-admin)
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund request ID"
// @Param request body reqdto.ProcessRefundRequest true "Refund details"
// @Success 200 {object} resdto.ProcessRefundResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /refund-requests/{id}/process [post]
func (h *RefundHandler) Process(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.ProcessRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Process(c.Request.Context(), id, req.ToInput(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProcessResult(result))
}

// @Summary List unconfirmed refunds
// @Description Approved requests whose refund is already recorded on the booking (super-admin)
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RefundResponse
// @Failure 403 {object} httperr.Response
// @Router /refund-requests/unconfirmed [get]
func (h *RefundHandler) ListUnconfirmed(c *gin.Context) {
	views, err := h.q.ListUnconfirmed(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundList(views))
}

// @Summary Reconcile refund request
// @Description Mark an unconfirmed request processed (super-admin)
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund request ID"
// @Success 200 {object} resdto.RefundResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /refund-requests/{id}/reconcile [post]
func (h *RefundHandler) Reconcile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := h.cmds.Reconcile(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefund(r))
}
