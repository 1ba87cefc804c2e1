// Package live holds the credential-gated external providers. Each adapter
// reads its credentials from the environment and reports through
// Available() so the registry can route around missing ones.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wanderpack/packages-cli/internal/core"
)

const aviasalesBase = "https://api.travelpayouts.com/v1/prices/cheap"

// AviasalesFlights queries the travelpayouts cached-prices API. Cached
// prices are slower-moving than a live fare search but reliable and
// unthrottled, which suits a many-destination fan-out. Set AVIASALES_TOKEN
// (and optionally AVIASALES_MARKER for deep-link attribution) to enable.
type AviasalesFlights struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	token   string
	marker  string
}

func NewAviasalesFlights(timeout time.Duration) *AviasalesFlights {
	return &AviasalesFlights{
		client: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "aviasales",
			Interval: 30 * time.Second,
			Timeout:  60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < 5 {
					return false
				}
				return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
			},
		}),
		token:  os.Getenv("AVIASALES_TOKEN"),
		marker: os.Getenv("AVIASALES_MARKER"),
	}
}

func (a *AviasalesFlights) Name() string { return "aviasales" }

func (a *AviasalesFlights) Available() (bool, string) {
	if a.token == "" {
		return false, "set AVIASALES_TOKEN (sign up at https://www.travelpayouts.com)"
	}
	return true, ""
}

type aviasalesTicket struct {
	Price       int    `json:"price"`
	Airline     string `json:"airline"`
	DepartureAt string `json:"departure_at"`
	ReturnAt    string `json:"return_at"`
	Transfers   int    `json:"transfers"`
}

type aviasalesResponse struct {
	Success bool                                  `json:"success"`
	Data    map[string]map[string]aviasalesTicket `json:"data"`
}

func (a *AviasalesFlights) Search(ctx context.Context, q core.TransportQuery) (*core.TransportOffer, error) {
	month := q.OutboundDate
	if len(month) >= 7 {
		month = month[:7]
	}

	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination.IATA)
	params.Set("depart_date", month)
	params.Set("currency", "GBP")
	params.Set("token", a.token)

	result, err := a.breaker.Execute(func() (any, error) {
		return a.fetch(ctx, aviasalesBase+"?"+params.Encode())
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			// Breaker open: behave like "no offer" so the destination is
			// skipped quietly instead of counting one error per date sample.
			return nil, nil
		}
		return nil, err
	}

	resp := result.(*aviasalesResponse)
	tickets, ok := resp.Data[q.Destination.IATA]
	if !resp.Success || !ok || len(tickets) == 0 {
		return nil, nil
	}

	var best *aviasalesTicket
	for _, t := range tickets {
		cand := t
		if best == nil || cand.Price < best.Price {
			best = &cand
		}
	}

	outbound := q.OutboundDate
	ret := q.ReturnDate
	departAt, _ := time.Parse(time.RFC3339, best.DepartureAt)
	if !departAt.IsZero() {
		outbound = departAt.Format("2006-01-02")
	}
	arriveAt, _ := time.Parse(time.RFC3339, best.ReturnAt)
	if !arriveAt.IsZero() {
		ret = arriveAt.Format("2006-01-02")
	}

	adults := q.Adults
	if adults < 1 {
		adults = 1
	}

	return &core.TransportOffer{
		Type:         core.TransportFlight,
		Price:        best.Price * adults,
		Currency:     "GBP",
		OutboundDate: outbound,
		ReturnDate:   ret,
		Departure:    departAt,
		Arrival:      arriveAt,
		Stops:        best.Transfers,
		Carriers:     []string{best.Airline},
		BookingLink:  a.deepLink(q.Origin, q.Destination.IATA, outbound, ret, adults),
		IsRealPrice:  true,
	}, nil
}

func (a *AviasalesFlights) fetch(ctx context.Context, u string) (*aviasalesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("aviasales returned status %d: %s", resp.StatusCode, string(body))
	}

	var out aviasalesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse aviasales response: %w", err)
	}
	return &out, nil
}

func (a *AviasalesFlights) deepLink(origin, dest, outbound, ret string, adults int) string {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", dest)
	params.Set("depart_date", outbound)
	params.Set("return_date", ret)
	params.Set("passengers", fmt.Sprintf("%d", adults))
	if a.marker != "" {
		params.Set("marker", a.marker)
	}
	return "https://www.aviasales.com/search?" + params.Encode()
}
