package destinations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderpack/packages-cli/internal/core"
)

func TestDestinationsByMood(t *testing.T) {
	c := NewCatalog()

	random := c.Destinations(core.MoodRandom)
	assert.Len(t, random, 34)

	sun := c.Destinations(core.MoodSun)
	require.NotEmpty(t, sun)
	assert.Less(t, len(sun), len(random))

	cities := map[string]bool{}
	for _, d := range sun {
		cities[d.City] = true
	}
	assert.True(t, cities["Barcelona"])
	assert.True(t, cities["Malaga"])
	assert.False(t, cities["Berlin"])
}

func TestEveryMoodHasDestinations(t *testing.T) {
	c := NewCatalog()
	for _, mood := range core.Moods() {
		assert.NotEmpty(t, c.Destinations(mood), "mood %s", mood)
	}
}

func TestFind(t *testing.T) {
	c := NewCatalog()

	d, ok := c.Find("BCN")
	require.True(t, ok)
	assert.Equal(t, "Barcelona", d.City)
	assert.Equal(t, "Spain", d.Country)

	_, ok = c.Find("XXX")
	assert.False(t, ok)
}

func TestFallbackHotel(t *testing.T) {
	c := NewCatalog()
	d, ok := c.Find("CDG")
	require.True(t, ok)

	hotel := c.FallbackHotel(d, "2026-06-02", "2026-06-06", 4, 2)

	// Paris is in the expensive tier: (80+150)/2 a night.
	assert.Equal(t, 115*4, hotel.Price)
	assert.Equal(t, "est-CDG", hotel.ID)
	assert.Equal(t, core.HotelSourceEstimate, hotel.Source)
	assert.Contains(t, hotel.BookingLink, "booking.com")
	assert.Contains(t, hotel.BookingLink, "checkin=2026-06-02")
}

func TestNightlyRateTiers(t *testing.T) {
	c := NewCatalog()

	parisMin, parisMax := c.NightlyRate("Paris")
	krakowMin, krakowMax := c.NightlyRate("Krakow")
	unknownMin, unknownMax := c.NightlyRate("Nowhere")

	assert.Greater(t, parisMin, krakowMin)
	assert.Greater(t, parisMax, krakowMax)
	assert.Equal(t, 40, unknownMin)
	assert.Equal(t, 90, unknownMax)
}

func TestBookingSearchURL(t *testing.T) {
	u := BookingSearchURL("Barcelona", "2026-06-02", "2026-06-06", 2)
	assert.True(t, strings.HasPrefix(u, "https://www.booking.com/searchresults.html?"))
	assert.Contains(t, u, "ss=Barcelona")
	assert.Contains(t, u, "group_adults=2")
	assert.Contains(t, u, "order=price")
}
