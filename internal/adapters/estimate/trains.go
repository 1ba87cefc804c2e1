package estimate

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/wanderpack/packages-cli/internal/core"
)

type station struct {
	Code     string
	Name     string
	Services []string
}

var trainStations = map[string]station{
	"Paris":     {"PLY", "Paris Gare du Nord", []string{"Eurostar", "TGV"}},
	"Brussels":  {"BRU", "Brussels Midi", []string{"Eurostar", "Thalys"}},
	"Amsterdam": {"AMS", "Amsterdam Centraal", []string{"Eurostar", "Thalys", "ICE"}},
	"Lyon":      {"LPD", "Lyon Part-Dieu", []string{"TGV"}},
	"Nice":      {"NCE", "Nice Ville", []string{"TGV"}},
	"Berlin":    {"BER", "Berlin Hauptbahnhof", []string{"ICE", "EC"}},
	"Munich":    {"MUC", "München Hauptbahnhof", []string{"ICE", "EC"}},
	"Barcelona": {"BCN", "Barcelona Sants", []string{"AVE", "Renfe"}},
	"Madrid":    {"MAD", "Madrid Puerta de Atocha", []string{"AVE", "Renfe"}},
	"Rome":      {"ROM", "Roma Termini", []string{"Frecciarossa", "Italo"}},
	"Milan":     {"MIL", "Milano Centrale", []string{"Frecciarossa", "Italo", "TGV"}},
	"Venice":    {"VCE", "Venezia Santa Lucia", []string{"Frecciarossa", "Italo"}},
	"Vienna":    {"VIE", "Wien Hauptbahnhof", []string{"Railjet", "ICE"}},
	"Prague":    {"PRG", "Praha hlavní nádraží", []string{"Railjet", "EC"}},
	"Budapest":  {"BUD", "Budapest Keleti", []string{"Railjet", "EC"}},
}

type journey struct {
	Direct  bool
	Hours   float64
	Changes int
}

// Journey times from London. Direct means a single Eurostar leg.
var journeys = map[string]journey{
	"Paris":     {true, 2.25, 0},
	"Brussels":  {true, 2, 0},
	"Amsterdam": {true, 4, 0},
	"Lyon":      {false, 5.5, 1},
	"Nice":      {false, 8, 1},
	"Berlin":    {false, 10, 2},
	"Munich":    {false, 9, 2},
	"Milan":     {false, 8, 1},
	"Rome":      {false, 12, 2},
	"Venice":    {false, 11, 2},
	"Barcelona": {false, 10, 2},
	"Vienna":    {false, 14, 2},
	"Prague":    {false, 14, 2},
	"Budapest":  {false, 18, 3},
}

type trainPrice struct {
	Min, Typical, Max int
}

// Return fares from London in GBP per adult.
var trainPrices = map[string]trainPrice{
	"Paris":     {78, 140, 300},
	"Brussels":  {70, 120, 260},
	"Amsterdam": {90, 160, 320},
	"Lyon":      {110, 200, 360},
	"Nice":      {140, 260, 440},
	"Berlin":    {160, 300, 560},
	"Munich":    {150, 280, 520},
	"Milan":     {140, 260, 480},
	"Rome":      {180, 340, 600},
	"Venice":    {170, 320, 560},
	"Barcelona": {160, 300, 560},
	"Vienna":    {200, 360, 640},
	"Prague":    {190, 340, 600},
	"Budapest":  {220, 400, 700},
}

// Trains estimates rail fares for cities reachable from London St Pancras.
// Cities with no rail route return no offer, which simply excludes the
// train leg from the "any" comparison for that destination.
type Trains struct {
	now func() time.Time
}

func NewTrains() *Trains {
	return &Trains{now: time.Now}
}

func (t *Trains) Name() string              { return "estimate_trains" }
func (t *Trains) Available() (bool, string) { return true, "" }

func (t *Trains) Search(_ context.Context, q core.TransportQuery) (*core.TransportOffer, error) {
	j, ok := journeys[q.Destination.City]
	if !ok {
		return nil, nil
	}
	depart, err := time.Parse(dateLayout, q.OutboundDate)
	if err != nil {
		return nil, fmt.Errorf("invalid outbound date: %w", err)
	}

	base := trainPrices[q.Destination.City]
	st := trainStations[q.Destination.City]

	modifier := 1.0
	switch depart.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		modifier *= 1.15
	}
	daysAhead := int(depart.Sub(t.now()).Hours() / 24)
	switch {
	case daysAhead > 60:
		modifier *= 0.85
	case daysAhead > 30:
		modifier *= 0.95
	case daysAhead <= 14:
		modifier *= 1.15
	}

	rng := rand.New(rand.NewSource(hashSeed("train" + q.Destination.City + q.OutboundDate)))
	jitter := 0.95 + rng.Float64()*0.10

	perAdult := float64(base.Typical) * modifier * jitter
	if perAdult < float64(base.Min) {
		perAdult = float64(base.Min)
	}
	if perAdult > float64(base.Max) {
		perAdult = float64(base.Max)
	}
	price := int(perAdult) * maxInt(q.Adults, 1)

	durationMin := int(j.Hours * 60)
	departAt := depart.Add(time.Duration(7+rng.Intn(6)) * time.Hour)

	return &core.TransportOffer{
		Type:            core.TransportTrain,
		Price:           price,
		Currency:        "GBP",
		OutboundDate:    q.OutboundDate,
		ReturnDate:      q.ReturnDate,
		Departure:       departAt,
		Arrival:         departAt.Add(time.Duration(durationMin) * time.Minute),
		Stops:           j.Changes,
		Carriers:        st.Services,
		DurationMinutes: durationMin,
		BookingLink:     klookTrainURL(q.Origin, q.Destination.City, q.OutboundDate, q.ReturnDate),
		IsRealPrice:     false,
	}, nil
}

func klookTrainURL(origin, destCity, outbound, ret string) string {
	params := url.Values{}
	params.Set("from", strings.ToLower(origin))
	params.Set("to", strings.ToLower(destCity))
	params.Set("outbound", outbound)
	params.Set("return", ret)
	return "https://klook.tpx.lu/89cfHZHx?" + params.Encode()
}
