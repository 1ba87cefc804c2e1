package live

import (
	"context"
	"fmt"
	"os"

	"github.com/wanderpack/packages-cli/internal/core"
)

// BookingHotels will connect to the Booking.com affiliate partner API.
// Partner approval is required; apply via the affiliate programme. Set
// BOOKING_AFFILIATE_ID to enable.
type BookingHotels struct{}

func NewBookingHotels() *BookingHotels {
	return &BookingHotels{}
}

func (b *BookingHotels) Name() string { return "booking" }

func (b *BookingHotels) Available() (bool, string) {
	if os.Getenv("BOOKING_AFFILIATE_ID") == "" {
		return false, "set BOOKING_AFFILIATE_ID (requires affiliate partner approval)"
	}
	return true, ""
}

func (b *BookingHotels) Search(ctx context.Context, q core.HotelQuery) ([]core.HotelOffer, error) {
	// TODO: implement once partner API access is granted
	// GET https://distribution-xml.booking.com/2.x/json/hotels
	// ordered by price, rows=10
	return nil, fmt.Errorf("booking adapter not yet implemented")
}
