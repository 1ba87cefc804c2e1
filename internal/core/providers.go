package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wanderpack/packages-cli/internal/cache"
)

// cachedTransport memoizes an inner provider's found offers. Errors are
// never cached, so a failing provider is retried on the next call; "no
// offer" results are likewise left uncached.
type cachedTransport struct {
	inner TransportProvider
	store cache.Store
	ttl   time.Duration
	onHit func()
}

// NewCachedTransport wraps p with TTL memoization. onHit may be nil.
func NewCachedTransport(p TransportProvider, store cache.Store, ttl time.Duration, onHit func()) TransportProvider {
	return &cachedTransport{inner: p, store: store, ttl: ttl, onHit: onHit}
}

func (c *cachedTransport) Name() string              { return c.inner.Name() }
func (c *cachedTransport) Available() (bool, string) { return c.inner.Available() }

func (c *cachedTransport) Search(ctx context.Context, q TransportQuery) (*TransportOffer, error) {
	key := cache.Key{
		Kind:        c.inner.Name(),
		Origin:      q.Origin,
		Destination: q.Destination.IATA,
		CheckIn:     q.OutboundDate,
		CheckOut:    q.ReturnDate,
		Adults:      q.Adults,
	}.String()

	if raw, ok := c.store.Get(ctx, key); ok {
		var offer TransportOffer
		if err := json.Unmarshal(raw, &offer); err == nil {
			if c.onHit != nil {
				c.onHit()
			}
			return &offer, nil
		}
	}

	offer, err := c.inner.Search(ctx, q)
	if err != nil || offer == nil {
		return offer, err
	}
	if raw, err := json.Marshal(offer); err == nil {
		_ = c.store.Set(ctx, key, raw, c.ttl)
	}
	return offer, nil
}

type cachedHotels struct {
	inner HotelProvider
	store cache.Store
	ttl   time.Duration
	onHit func()
}

// NewCachedHotels wraps p with TTL memoization, same policy as transport
// but with the longer hotel TTL (location inventory moves slower than
// fares).
func NewCachedHotels(p HotelProvider, store cache.Store, ttl time.Duration, onHit func()) HotelProvider {
	return &cachedHotels{inner: p, store: store, ttl: ttl, onHit: onHit}
}

func (c *cachedHotels) Name() string              { return c.inner.Name() }
func (c *cachedHotels) Available() (bool, string) { return c.inner.Available() }

func (c *cachedHotels) Search(ctx context.Context, q HotelQuery) ([]HotelOffer, error) {
	key := cache.Key{
		Kind:        c.inner.Name(),
		Origin:      "",
		Destination: q.City,
		CheckIn:     q.CheckIn,
		CheckOut:    q.CheckOut,
		Adults:      q.Adults,
	}.String()

	if raw, ok := c.store.Get(ctx, key); ok {
		var offers []HotelOffer
		if err := json.Unmarshal(raw, &offers); err == nil {
			if c.onHit != nil {
				c.onHit()
			}
			return offers, nil
		}
	}

	offers, err := c.inner.Search(ctx, q)
	if err != nil || len(offers) == 0 {
		return offers, err
	}
	if raw, err := json.Marshal(offers); err == nil {
		_ = c.store.Set(ctx, key, raw, c.ttl)
	}
	return offers, nil
}
