package client

import (
	"context"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/utils"
)

// Bookings talks to the bookings service.
type Bookings struct{ p *peer }

func NewBookings(baseURL string, opts Options) *Bookings {
	return &Bookings{p: newPeer("bookings", baseURL, opts)}
}

// UserBookings calls GET /:caller/bookings.
func (c *Bookings) UserBookings(ctx context.Context, caller string) ([]model.Booking, error) {
	var out []model.Booking
	err := c.p.get(ctx, "user_bookings", "/"+seg(caller)+"/bookings", caller, utils.RoleCaller,
		repository.NotFoundError{Level: repository.LevelBooking, Key: caller}, &out)
	return out, err
}
