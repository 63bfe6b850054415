//go:build unit

package readstore

import (
	"strings"
	"testing"
	"time"

	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildBookingList(t *testing.T) {
	hotelAdmin := uuid.New()
	status := "Confirmed"
	after := &queries.Keyset{CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), ID: uuid.New()}

	tests := []struct {
		name      string
		query     queries.BookingListQuery
		wantWhere string
		wantOrder string
		wantArgs  int
	}{
		{
			name:      "unscoped first page",
			query:     queries.BookingListQuery{BookingFilter: queries.BookingFilter{Order: queries.OrderNewestFirst}, Limit: 21},
			wantWhere: "",
			wantOrder: "ORDER BY created_at DESC, id DESC LIMIT $1",
			wantArgs:  1,
		},
		{
			name: "hotel scope with status and cursor",
			query: queries.BookingListQuery{
				BookingFilter: queries.BookingFilter{HotelAdmin: &hotelAdmin, Status: &status, Order: queries.OrderNewestFirst},
				After:         after,
				Limit:         11,
			},
			wantWhere: "WHERE hotel_admin = $1 AND lower(status) = lower($2) AND (created_at, id) < ($3, $4)",
			wantOrder: "ORDER BY created_at DESC, id DESC LIMIT $5",
			wantArgs:  5,
		},
		{
			name: "oldest first pages forward",
			query: queries.BookingListQuery{
				BookingFilter: queries.BookingFilter{Order: queries.OrderOldestFirst},
				After:         after,
			},
			wantWhere: "WHERE (created_at, id) > ($1, $2)",
			wantOrder: "ORDER BY created_at ASC, id ASC",
			wantArgs:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildBookingList(tt.query)

			if tt.wantWhere == "" {
				assert.NotContains(t, sql, "WHERE")
			} else {
				assert.Contains(t, sql, tt.wantWhere)
			}
			assert.True(t, strings.HasSuffix(sql, tt.wantOrder), sql)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}
