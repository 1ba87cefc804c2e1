package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// assembler builds at most one Package per destination: the cheapest
// transport across a bounded number of date samples, paired with the
// cheapest acceptable hotel on the winning dates.
type assembler struct {
	cfg      Config
	registry *Registry
	source   DestinationSource
	stats    *runStats
	logger   *zap.Logger
	now      func() time.Time
}

func (a *assembler) assemble(ctx context.Context, req SearchRequest, dest Destination, dates []DateCandidate) *Package {
	a.stats.scanned.Add(1)

	transport := a.cheapestTransport(ctx, req, dest, dates)
	if transport == nil {
		// Includes the provider-failure path; the destination drops out of
		// this run without aborting its siblings.
		return nil
	}
	a.stats.transport.Add(1)

	hotel, err := a.pickHotel(ctx, dest, transport.OutboundDate, transport.ReturnDate, req)
	if err != nil {
		a.stats.errors.Add(1)
		a.logger.Warn("hotel lookup failed",
			zap.String("city", dest.City),
			zap.Error(err))
		return nil
	}
	if hotel == nil {
		// No live or estimate provider produced an acceptable offer; fall
		// back to the static nightly-rate estimate rather than dropping
		// the destination.
		fb := a.source.FallbackHotel(dest, transport.OutboundDate, transport.ReturnDate, req.Nights, req.Adults)
		hotel = &fb
	}

	total := transport.Price + hotel.Price
	over := total > req.MaxBudget && req.MaxBudget > 0 && !req.RelaxBudget
	if over {
		a.stats.overBudget.Add(1)
	}

	return &Package{
		ID:          fmt.Sprintf("pkg-%s-%s", dest.IATA, uuid.NewString()[:8]),
		Destination: dest,
		Nights:      req.Nights,
		Adults:      req.Adults,
		Transport:   *transport,
		Hotel:       *hotel,
		TotalPrice:  total,
		Currency:    "GBP",
		OverBudget:  over,
		SearchedAt:  a.now().UTC(),
	}
}

// cheapestTransport tries up to DateSamples candidates in sampler order (a
// bounded best-effort search, not an exhaustive one) against every provider
// allowed by the requested transport type, tracking the running cheapest.
func (a *assembler) cheapestTransport(ctx context.Context, req SearchRequest, dest Destination, dates []DateCandidate) *TransportOffer {
	providers := a.registry.Transport(req.TransportType)
	if len(providers) == 0 {
		return nil
	}

	limit := a.cfg.DateSamples
	if limit <= 0 || limit > len(dates) {
		limit = len(dates)
	}

	var cheapest *TransportOffer
	for _, dc := range dates[:limit] {
		q := TransportQuery{
			Origin:       req.Origin,
			Destination:  dest,
			OutboundDate: dc.OutboundDate,
			ReturnDate:   dc.ReturnDate,
			Adults:       req.Adults,
		}
		for _, p := range providers {
			offer, err := a.searchTransport(ctx, p, q)
			if err != nil {
				a.stats.errors.Add(1)
				a.logger.Warn("transport provider failed",
					zap.String("provider", p.Name()),
					zap.String("city", dest.City),
					zap.Error(err))
				return nil
			}
			if offer != nil && (cheapest == nil || offer.Price < cheapest.Price) {
				cheapest = offer
			}
		}
	}
	return cheapest
}

// searchTransport applies the per-call timeout. A timed-out or cancelled
// call counts as "no offer" for that destination, not as a failure.
func (a *assembler) searchTransport(ctx context.Context, p TransportProvider, q TransportQuery) (*TransportOffer, error) {
	cctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	offer, err := p.Search(cctx, q)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, nil
		}
		return nil, err
	}
	return offer, nil
}

// pickHotel queries hotel providers on the winning transport dates and
// selects the cheapest offer surviving the configured pre-filters.
func (a *assembler) pickHotel(ctx context.Context, dest Destination, checkin, checkout string, req SearchRequest) (*HotelOffer, error) {
	q := HotelQuery{City: dest.City, CheckIn: checkin, CheckOut: checkout, Adults: req.Adults}

	for _, hp := range a.registry.Hotels() {
		cctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
		offers, err := hp.Search(cctx, q)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", hp.Name(), err)
		}

		var best *HotelOffer
		for _, o := range offers {
			if a.cfg.RequireHotelImage && o.Image == "" {
				continue
			}
			if a.cfg.RequireRealPrice && o.Source != HotelSourceLive {
				continue
			}
			cand := o
			if best == nil || cand.Price < best.Price {
				best = &cand
			}
		}
		if best != nil {
			return best, nil
		}
	}
	return nil, nil
}
