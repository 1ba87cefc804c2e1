package core

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
)

type Mood string

const (
	MoodSun       Mood = "sun"
	MoodCity      Mood = "city"
	MoodRomantic  Mood = "romantic"
	MoodAdventure Mood = "adventure"
	MoodChill     Mood = "chill"
	MoodRandom    Mood = "random"
)

type TransportType string

const (
	TransportFlight TransportType = "flight"
	TransportTrain  TransportType = "train"
	TransportAny    TransportType = "any"
)

type HotelSource string

const (
	HotelSourceLive     HotelSource = "live"
	HotelSourceEstimate HotelSource = "estimate"
)

// Destination is a static reference record, loaded once and never mutated.
type Destination struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	IATA    string  `json:"iata"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// SearchRequest describes one package search. It is built once per search
// and not mutated afterwards; FixedDates, when supplied, replaces the
// generated date sample set entirely.
type SearchRequest struct {
	Origin        string          `json:"origin" validate:"required,len=3,alpha"`
	Destination   string          `json:"destination,omitempty" validate:"omitempty,len=3,alpha"`
	Nights        int             `json:"nights" validate:"min=1,max=30"`
	Adults        int             `json:"adults" validate:"min=1,max=9"`
	MaxBudget     int             `json:"maxBudget" validate:"min=0"`
	Mood          Mood            `json:"mood" validate:"oneof=sun city romantic adventure chill random"`
	TransportType TransportType   `json:"transportType" validate:"oneof=flight train any"`
	RelaxBudget   bool            `json:"relaxBudget"`
	RelaxMood     bool            `json:"relaxMood"`
	FixedDates    []DateCandidate `json:"fixedDates,omitempty"`
	Debug         bool            `json:"debug"`
}

var validate = validator.New()

// ApplyDefaults fills the documented defaults for zero-value fields.
func (r *SearchRequest) ApplyDefaults() {
	if r.Origin == "" {
		r.Origin = "LON"
	}
	if r.Nights == 0 {
		r.Nights = 4
	}
	if r.Adults == 0 {
		r.Adults = 2
	}
	if r.Mood == "" {
		r.Mood = MoodRandom
	}
	if r.TransportType == "" {
		r.TransportType = TransportAny
	}
}

// Validate rejects malformed requests before orchestration starts.
func (r *SearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidRequest(err)
	}
	for _, d := range r.FixedDates {
		if _, err := time.Parse(dateLayout, d.OutboundDate); err != nil {
			return invalidRequest(err)
		}
		if _, err := time.Parse(dateLayout, d.ReturnDate); err != nil {
			return invalidRequest(err)
		}
	}
	return nil
}

// TransportOffer is a priced return journey. Type tags flight vs train;
// callers switch on the tag, never on the producing adapter.
type TransportOffer struct {
	Type            TransportType `json:"type"`
	Price           int           `json:"price"`
	Currency        string        `json:"currency"`
	OutboundDate    string        `json:"outboundDate"`
	ReturnDate      string        `json:"returnDate"`
	Departure       time.Time     `json:"departureTimestamp"`
	Arrival         time.Time     `json:"arrivalTimestamp"`
	Stops           int           `json:"stops"`
	Carriers        []string      `json:"carriers"`
	DurationMinutes int           `json:"durationMinutes"`
	BookingLink     string        `json:"bookingLink"`
	IsRealPrice     bool          `json:"isRealPrice"`
}

// HotelOffer is a priced stay for the whole trip. Source tags live provider
// data vs a derived estimate.
type HotelOffer struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       int         `json:"price"`
	Rating      float64     `json:"rating,omitempty"`
	Image       string      `json:"image,omitempty"`
	BookingLink string      `json:"bookingLink"`
	Source      HotelSource `json:"source"`
}

// Package combines one transport offer and one hotel offer for a
// destination. At most one package is produced per destination per run.
// TotalPrice is always Transport.Price + Hotel.Price, in integer GBP.
type Package struct {
	ID          string         `json:"id"`
	Destination Destination    `json:"destination"`
	Nights      int            `json:"nights"`
	Adults      int            `json:"adults"`
	Transport   TransportOffer `json:"transport"`
	Hotel       HotelOffer     `json:"hotel"`
	TotalPrice  int            `json:"totalPrice"`
	Currency    string         `json:"currency"`
	OverBudget  bool           `json:"overBudget"`
	SearchedAt  time.Time      `json:"searchedAt"`
}

// SearchStats explains a run: how many destinations were scanned, how many
// produced transport, how many came in over budget, how many failed.
type SearchStats struct {
	DestinationsScanned int64 `json:"destinationsScanned"`
	TransportFound      int64 `json:"transportFound"`
	OverBudgetCount     int64 `json:"overBudgetCount"`
	ErrorsCount         int64 `json:"errorsCount"`
}

// SearchResult is the orchestrator's answer. ExactMatch reports whether
// every returned package satisfies the requested budget.
type SearchResult struct {
	Query      SearchRequest `json:"query"`
	Packages   []Package     `json:"packages"`
	ExactMatch bool          `json:"exactMatch"`
	Stats      SearchStats   `json:"stats"`
	FetchedAt  time.Time     `json:"fetchedAt"`
}

// TransportQuery is one transport lookup: a single destination, date pair
// and passenger count.
type TransportQuery struct {
	Origin       string
	Destination  Destination
	OutboundDate string
	ReturnDate   string
	Adults       int
}

// HotelQuery is one hotel lookup for a city and stay window.
type HotelQuery struct {
	City     string
	CheckIn  string
	CheckOut string
	Adults   int
}

// TransportProvider returns a priced offer for one query, or (nil, nil)
// when it has nothing for the route. Implementations must be safe to call
// concurrently for different queries.
type TransportProvider interface {
	Name() string
	Available() (bool, string)
	Search(ctx context.Context, q TransportQuery) (*TransportOffer, error)
}

// HotelProvider returns zero or more priced stays for one query.
type HotelProvider interface {
	Name() string
	Available() (bool, string)
	Search(ctx context.Context, q HotelQuery) ([]HotelOffer, error)
}

// DestinationSource supplies the static destination pool and the
// nightly-rate fallback used when no hotel provider returns an offer.
type DestinationSource interface {
	Destinations(mood Mood) []Destination
	FallbackHotel(d Destination, checkin, checkout string, nights, adults int) HotelOffer
}

// Moods lists the curated category tags, random last.
func Moods() []Mood {
	return []Mood{MoodSun, MoodCity, MoodRomantic, MoodAdventure, MoodChill, MoodRandom}
}
