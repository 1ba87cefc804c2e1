// Package destinations holds the curated destination table: European
// cities reachable from London with budget carriers, the mood membership
// lists, and the city-tier nightly hotel estimates used as the last-resort
// hotel fallback.
package destinations

import (
	"fmt"
	"net/url"

	"github.com/wanderpack/packages-cli/internal/core"
)

// DefaultOrigin is the city code covering the London airports.
const DefaultOrigin = "LON"

var all = []core.Destination{
	// Spain
	{City: "Barcelona", Country: "Spain", IATA: "BCN", Lat: 41.3851, Lng: 2.1734},
	{City: "Madrid", Country: "Spain", IATA: "MAD", Lat: 40.4168, Lng: -3.7038},
	{City: "Malaga", Country: "Spain", IATA: "AGP", Lat: 36.7213, Lng: -4.4214},
	{City: "Alicante", Country: "Spain", IATA: "ALC", Lat: 38.2822, Lng: -0.5582},
	{City: "Palma", Country: "Spain", IATA: "PMI", Lat: 39.5517, Lng: 2.7388},
	{City: "Tenerife", Country: "Spain", IATA: "TFS", Lat: 28.0445, Lng: -16.5725},

	// Portugal
	{City: "Lisbon", Country: "Portugal", IATA: "LIS", Lat: 38.7746, Lng: -9.1349},
	{City: "Porto", Country: "Portugal", IATA: "OPO", Lat: 41.2370, Lng: -8.6700},
	{City: "Faro", Country: "Portugal", IATA: "FAO", Lat: 37.0146, Lng: -7.9656},

	// Italy
	{City: "Rome", Country: "Italy", IATA: "FCO", Lat: 41.9028, Lng: 12.4964},
	{City: "Milan", Country: "Italy", IATA: "MXP", Lat: 45.4642, Lng: 9.1900},
	{City: "Venice", Country: "Italy", IATA: "VCE", Lat: 45.4408, Lng: 12.3155},
	{City: "Naples", Country: "Italy", IATA: "NAP", Lat: 40.8518, Lng: 14.2681},

	// France
	{City: "Paris", Country: "France", IATA: "CDG", Lat: 48.8566, Lng: 2.3522},
	{City: "Nice", Country: "France", IATA: "NCE", Lat: 43.7102, Lng: 7.2620},
	{City: "Lyon", Country: "France", IATA: "LYS", Lat: 45.7640, Lng: 4.8357},

	// Germany
	{City: "Berlin", Country: "Germany", IATA: "BER", Lat: 52.5200, Lng: 13.4050},
	{City: "Munich", Country: "Germany", IATA: "MUC", Lat: 48.1351, Lng: 11.5820},

	// Benelux
	{City: "Amsterdam", Country: "Netherlands", IATA: "AMS", Lat: 52.3676, Lng: 4.9041},
	{City: "Brussels", Country: "Belgium", IATA: "BRU", Lat: 50.8503, Lng: 4.3517},

	// Central and eastern Europe
	{City: "Prague", Country: "Czech Republic", IATA: "PRG", Lat: 50.0755, Lng: 14.4378},
	{City: "Budapest", Country: "Hungary", IATA: "BUD", Lat: 47.4979, Lng: 19.0402},
	{City: "Krakow", Country: "Poland", IATA: "KRK", Lat: 50.0647, Lng: 19.9450},
	{City: "Warsaw", Country: "Poland", IATA: "WAW", Lat: 52.2297, Lng: 21.0122},
	{City: "Vienna", Country: "Austria", IATA: "VIE", Lat: 48.2082, Lng: 16.3738},

	// Nordics
	{City: "Copenhagen", Country: "Denmark", IATA: "CPH", Lat: 55.6761, Lng: 12.5683},
	{City: "Stockholm", Country: "Sweden", IATA: "ARN", Lat: 59.3293, Lng: 18.0686},

	// Balkans and Mediterranean
	{City: "Dubrovnik", Country: "Croatia", IATA: "DBV", Lat: 42.6507, Lng: 18.0944},
	{City: "Split", Country: "Croatia", IATA: "SPU", Lat: 43.5081, Lng: 16.4402},
	{City: "Athens", Country: "Greece", IATA: "ATH", Lat: 37.9838, Lng: 23.7275},
	{City: "Thessaloniki", Country: "Greece", IATA: "SKG", Lat: 40.6401, Lng: 22.9444},

	// Baltics
	{City: "Riga", Country: "Latvia", IATA: "RIX", Lat: 56.9496, Lng: 24.1052},
	{City: "Tallinn", Country: "Estonia", IATA: "TLL", Lat: 59.4370, Lng: 24.7536},
	{City: "Vilnius", Country: "Lithuania", IATA: "VNO", Lat: 54.6872, Lng: 25.2797},
}

var moodCities = map[core.Mood][]string{
	core.MoodSun: {
		"Barcelona", "Malaga", "Alicante", "Palma", "Tenerife",
		"Lisbon", "Faro", "Nice", "Rome", "Naples",
		"Dubrovnik", "Split", "Athens",
	},
	core.MoodCity: {
		"Paris", "Amsterdam", "Berlin", "Prague", "Budapest",
		"Vienna", "Copenhagen", "Stockholm", "Krakow", "Warsaw",
		"Riga", "Tallinn", "Brussels", "Milan",
	},
	core.MoodRomantic: {
		"Paris", "Venice", "Rome", "Nice", "Budapest",
	},
	core.MoodAdventure: {
		"Tenerife", "Athens", "Split", "Dubrovnik", "Krakow", "Thessaloniki",
	},
	core.MoodChill: {
		"Palma", "Faro", "Alicante", "Malaga", "Porto",
	},
}

type priceRange struct {
	Min int
	Max int
}

// Nightly hotel rate tiers in GBP, used when no provider returns a priced
// hotel. Tier membership follows observed market bands, not country.
var (
	expensiveCities = []string{"Paris", "Amsterdam", "Copenhagen", "Stockholm", "Venice"}
	midRangeCities  = []string{"Barcelona", "Madrid", "Rome", "Berlin", "Vienna", "Prague", "Lisbon"}
	budgetCities    = []string{"Krakow", "Budapest", "Riga", "Tallinn", "Vilnius", "Warsaw"}

	expensiveRate = priceRange{Min: 80, Max: 150}
	midRangeRate  = priceRange{Min: 50, Max: 100}
	budgetRate    = priceRange{Min: 30, Max: 70}
	defaultRate   = priceRange{Min: 40, Max: 90}
)

// Catalog implements core.DestinationSource over the static table.
type Catalog struct{}

func NewCatalog() *Catalog { return &Catalog{} }

// Destinations returns the pool for a mood; random means everything.
func (c *Catalog) Destinations(mood core.Mood) []core.Destination {
	cities, ok := moodCities[mood]
	if !ok {
		out := make([]core.Destination, len(all))
		copy(out, all)
		return out
	}

	member := make(map[string]bool, len(cities))
	for _, city := range cities {
		member[city] = true
	}
	var out []core.Destination
	for _, d := range all {
		if member[d.City] {
			out = append(out, d)
		}
	}
	return out
}

// Find looks a destination up by IATA code.
func (c *Catalog) Find(iata string) (core.Destination, bool) {
	for _, d := range all {
		if d.IATA == iata {
			return d, true
		}
	}
	return core.Destination{}, false
}

// NightlyRate returns the estimated per-night hotel price band for a city.
func (c *Catalog) NightlyRate(city string) (minRate, maxRate int) {
	r := rateFor(city)
	return r.Min, r.Max
}

// FallbackHotel builds the nightly-rate estimate offer for a city: the
// tier-average rate times the stay length, linked to a hotel search for
// the actual dates.
func (c *Catalog) FallbackHotel(d core.Destination, checkin, checkout string, nights, adults int) core.HotelOffer {
	r := rateFor(d.City)
	avg := (r.Min + r.Max) / 2
	return core.HotelOffer{
		ID:          "est-" + d.IATA,
		Name:        fmt.Sprintf("Hotels in %s (estimated)", d.City),
		Price:       avg * nights,
		BookingLink: BookingSearchURL(d.City, checkin, checkout, adults),
		Source:      core.HotelSourceEstimate,
	}
}

func rateFor(city string) priceRange {
	if contains(expensiveCities, city) {
		return expensiveRate
	}
	if contains(midRangeCities, city) {
		return midRangeRate
	}
	if contains(budgetCities, city) {
		return budgetRate
	}
	return defaultRate
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// BookingSearchURL is the affiliate hotel search deep link. It works
// without API access; the aid parameter carries the affiliate tracking.
func BookingSearchURL(city, checkin, checkout string, adults int) string {
	params := url.Values{}
	params.Set("ss", city)
	params.Set("checkin", checkin)
	params.Set("checkout", checkout)
	params.Set("group_adults", fmt.Sprintf("%d", adults))
	params.Set("no_rooms", "1")
	params.Set("group_children", "0")
	params.Set("order", "price")
	return "https://www.booking.com/searchresults.html?" + params.Encode()
}
