//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/handler/api"
	resdto "hotel-booking-core/internal/handler/dto/response"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/tests/common/builder"
	"hotel-booking-core/tests/common/httptest"
	"hotel-booking-core/tests/common/testutil"
	commandsmock "hotel-booking-core/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	actor        actor.Actor
	hotelID      uuid.UUID
	roomID       uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	handler := api.NewCheckoutHandler(s.mockCommands)
	s.actor = actor.New(uuid.New(), actor.RoleUser)
	s.hotelID = uuid.New()
	s.roomID = uuid.New()

	// optional auth: a token authenticates, no token stays anonymous
	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("actor", s.actor)
		}
		c.Next()
	}
	s.router.POST("/checkout", optionalAuth, handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) requestBody() map[string]any {
	return map[string]any{
		"hotelId":  s.hotelID.String(),
		"roomId":   s.roomID.String(),
		"checkIn":  "2025-03-10",
		"checkOut": "2025-03-12",
		"guests":   2,
		"guestInfo": []map[string]any{
			{"firstName": "Ana", "lastName": "Silva", "email": "ana@example.com"},
		},
		"card": map[string]any{
			"number":         "4242 4242 4242 4242",
			"expiryMonth":    12,
			"expiryYear":     30,
			"cvv":            "123",
			"cardholderName": "Ana Silva",
		},
	}
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	created := builder.NewBookingBuilder().BuildReconstructed()

	s.Run("success: authenticated checkout passes the mapped input", func() {
		expected := commands.CheckoutInput{
			HotelID:   s.hotelID,
			RoomID:    s.roomID,
			CheckIn:   "2025-03-10",
			CheckOut:  "2025-03-12",
			Guests:    2,
			GuestInfo: []booking.GuestInfo{{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}},
			Card: commands.CardInput{
				Number:         "4242 4242 4242 4242",
				ExpiryMonth:    12,
				ExpiryYear:     30,
				CVV:            "123",
				CardholderName: "Ana Silva",
			},
		}
		s.mockCommands.EXPECT().Checkout(gomock.Any(), expected, s.actor).Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", s.requestBody(), "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.Reference(), body.Reference)
		s.Require().NotNil(body.Payment)
		s.Equal("4242", body.Payment.LastFourDigits)
	})

	s.Run("success: anonymous checkout", func() {
		guestBooking := builder.NewBookingBuilder().WithoutUser().BuildReconstructed()
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), actor.Actor{}).Return(guestBooking, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", s.requestBody(), "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.NotContains(body, "userId")
	})

	s.Run("error: 400 on missing required fields", func() {
		for _, field := range []string{"hotelId", "roomId", "checkIn", "checkOut", "card"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), s.requestBody(), testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps command errors to statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"room not found", commands.ErrRoomNotFound, http.StatusNotFound, "room not found"},
			{"payment declined", commands.ErrPaymentDeclined, http.StatusUnprocessableEntity, "payment declined"},
			{"check-in in the past", booking.ErrCheckInInPast, http.StatusUnprocessableEntity, "in the past"},
			{"too many guests", booking.ErrInvalidGuestCount, http.StatusUnprocessableEntity, "capacity"},
			{"references exhausted", commands.ErrReferenceExhausted, http.StatusServiceUnavailable, "temporarily unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", s.requestBody(), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
