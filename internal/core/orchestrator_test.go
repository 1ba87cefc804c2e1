package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDests = []Destination{
	{City: "Barcelona", Country: "Spain", IATA: "BCN"},
	{City: "Lisbon", Country: "Portugal", IATA: "LIS"},
	{City: "Prague", Country: "Czech Republic", IATA: "PRG"},
}

type fakeSource struct {
	dests []Destination
}

func (f *fakeSource) Destinations(Mood) []Destination { return f.dests }

func (f *fakeSource) FallbackHotel(d Destination, checkin, checkout string, nights, adults int) HotelOffer {
	return HotelOffer{
		ID:     "est-" + d.IATA,
		Name:   "Hotels in " + d.City + " (estimated)",
		Price:  50 * nights,
		Source: HotelSourceEstimate,
	}
}

// pricedTransport prices by destination so tests can control the ranking.
type pricedTransport struct {
	name   string
	prices map[string]int
	err    error
}

func (p *pricedTransport) Name() string              { return p.name }
func (p *pricedTransport) Available() (bool, string) { return true, "" }

func (p *pricedTransport) Search(_ context.Context, q TransportQuery) (*TransportOffer, error) {
	if p.err != nil {
		return nil, p.err
	}
	price, ok := p.prices[q.Destination.IATA]
	if !ok {
		return nil, nil
	}
	return &TransportOffer{
		Type:         TransportFlight,
		Price:        price,
		Currency:     "GBP",
		OutboundDate: q.OutboundDate,
		ReturnDate:   q.ReturnDate,
	}, nil
}

type pricedHotels struct {
	name   string
	prices map[string]int
	err    error
}

func (p *pricedHotels) Name() string              { return p.name }
func (p *pricedHotels) Available() (bool, string) { return true, "" }

func (p *pricedHotels) Search(_ context.Context, q HotelQuery) ([]HotelOffer, error) {
	if p.err != nil {
		return nil, p.err
	}
	price, ok := p.prices[q.City]
	if !ok {
		return nil, nil
	}
	return []HotelOffer{{
		ID:     "h-" + q.City,
		Name:   "Hotel " + q.City,
		Price:  price,
		Image:  "https://example.com/" + q.City + ".jpg",
		Source: HotelSourceLive,
	}}, nil
}

func testOrchestrator(t *testing.T, flights TransportProvider, hotels HotelProvider, cfg Config) *Orchestrator {
	t.Helper()
	reg := NewRegistry(ModeEstimate)
	reg.RegisterFlight(flights)
	if hotels != nil {
		reg.RegisterHotel(hotels)
	}
	// Serialize the fan-out so the fakes need no locking.
	cfg.Concurrency = 1
	return NewOrchestrator(cfg, reg, &fakeSource{dests: testDests}, nil)
}

func fixedDateRequest() SearchRequest {
	return SearchRequest{
		Nights: 4,
		FixedDates: []DateCandidate{
			{OutboundDate: "2026-06-02", ReturnDate: "2026-06-06", Nights: 4},
		},
	}
}

func TestSearchRanksByTotalPrice(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 200, "LIS": 100, "PRG": 300},
	}
	hotels := &pricedHotels{
		name:   "estimate_hotels",
		prices: map[string]int{"Barcelona": 100, "Lisbon": 100, "Prague": 100},
	}
	orch := testOrchestrator(t, flights, hotels, Config{})

	result, err := orch.Search(context.Background(), fixedDateRequest())
	require.NoError(t, err)

	require.Len(t, result.Packages, 3)
	assert.True(t, result.ExactMatch)
	assert.Equal(t, "LIS", result.Packages[0].Destination.IATA)
	assert.Equal(t, 200, result.Packages[0].TotalPrice)
	assert.Equal(t, "PRG", result.Packages[2].Destination.IATA)

	assert.Equal(t, int64(3), result.Stats.DestinationsScanned)
	assert.Equal(t, int64(3), result.Stats.TransportFound)
	assert.Zero(t, result.Stats.ErrorsCount)
}

func TestSearchBudgetTopUp(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 200, "LIS": 100, "PRG": 300},
	}
	hotels := &pricedHotels{
		name:   "estimate_hotels",
		prices: map[string]int{"Barcelona": 100, "Lisbon": 100, "Prague": 100},
	}
	orch := testOrchestrator(t, flights, hotels, Config{MinResults: 2})

	req := fixedDateRequest()
	req.MaxBudget = 250

	result, err := orch.Search(context.Background(), req)
	require.NoError(t, err)

	// Only Lisbon (200) fits; Barcelona (300) tops the list up to two.
	require.Len(t, result.Packages, 2)
	assert.False(t, result.ExactMatch)
	assert.Equal(t, "LIS", result.Packages[0].Destination.IATA)
	assert.False(t, result.Packages[0].OverBudget)
	assert.Equal(t, "BCN", result.Packages[1].Destination.IATA)
	assert.True(t, result.Packages[1].OverBudget)
	assert.Equal(t, int64(2), result.Stats.OverBudgetCount)
}

func TestSearchRelaxBudgetReturnsEverything(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 900, "LIS": 800, "PRG": 950},
	}
	orch := testOrchestrator(t, flights, nil, Config{MinResults: 2})

	req := fixedDateRequest()
	req.MaxBudget = 100
	req.RelaxBudget = true

	result, err := orch.Search(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Packages, 3)
	assert.True(t, result.ExactMatch)
	for _, p := range result.Packages {
		assert.False(t, p.OverBudget)
	}
}

func TestSearchProviderErrorDropsDestinationOnly(t *testing.T) {
	flights := &pricedTransport{
		name: "estimate_flights",
		err:  errors.New("upstream exploded"),
	}
	orch := testOrchestrator(t, flights, nil, Config{})

	result, err := orch.Search(context.Background(), fixedDateRequest())
	require.NoError(t, err)

	assert.Empty(t, result.Packages)
	assert.False(t, result.ExactMatch)
	assert.Equal(t, int64(3), result.Stats.DestinationsScanned)
	assert.Equal(t, int64(3), result.Stats.ErrorsCount)
}

func TestSearchNoTransportMeansNoPackage(t *testing.T) {
	flights := &pricedTransport{name: "estimate_flights", prices: map[string]int{}}
	orch := testOrchestrator(t, flights, nil, Config{})

	result, err := orch.Search(context.Background(), fixedDateRequest())
	require.NoError(t, err)

	assert.Empty(t, result.Packages)
	assert.False(t, result.ExactMatch)
	assert.Zero(t, result.Stats.TransportFound)
	assert.Zero(t, result.Stats.ErrorsCount)
}

func TestSearchHotelFallback(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 150},
	}
	orch := testOrchestrator(t, flights, nil, Config{})

	req := fixedDateRequest()
	req.Destination = "BCN"

	result, err := orch.Search(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Packages, 1)
	got := result.Packages[0]
	assert.Equal(t, HotelSourceEstimate, got.Hotel.Source)
	assert.Equal(t, "est-BCN", got.Hotel.ID)
	assert.Equal(t, 150+50*4, got.TotalPrice)
}

func TestSearchDestinationFilter(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 200, "LIS": 100, "PRG": 300},
	}
	orch := testOrchestrator(t, flights, nil, Config{})

	req := fixedDateRequest()
	req.Destination = "lis"

	result, err := orch.Search(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Packages, 1)
	assert.Equal(t, "LIS", result.Packages[0].Destination.IATA)
	assert.Equal(t, int64(1), result.Stats.DestinationsScanned)
}

func TestSearchRejectsInvalidRequest(t *testing.T) {
	orch := testOrchestrator(t, &pricedTransport{name: "estimate_flights"}, nil, Config{})

	req := fixedDateRequest()
	req.Adults = 100

	_, err := orch.Search(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSearchRejectsMalformedFixedDates(t *testing.T) {
	orch := testOrchestrator(t, &pricedTransport{name: "estimate_flights"}, nil, Config{})

	req := SearchRequest{
		FixedDates: []DateCandidate{{OutboundDate: "02/06/2026", ReturnDate: "2026-06-06"}},
	}

	_, err := orch.Search(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSearchCancelled(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 200},
	}
	orch := testOrchestrator(t, flights, nil, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Search(ctx, fixedDateRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchAppliesDefaults(t *testing.T) {
	flights := &pricedTransport{
		name:   "estimate_flights",
		prices: map[string]int{"BCN": 100, "LIS": 100, "PRG": 100},
	}
	orch := testOrchestrator(t, flights, nil, Config{})

	result, err := orch.Search(context.Background(), fixedDateRequest())
	require.NoError(t, err)

	assert.Equal(t, "LON", result.Query.Origin)
	assert.Equal(t, 2, result.Query.Adults)
	assert.Equal(t, MoodRandom, result.Query.Mood)
	assert.Equal(t, TransportAny, result.Query.TransportType)
}
