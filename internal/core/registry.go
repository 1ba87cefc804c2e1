package core

import (
	"fmt"
	"strings"
)

// ProviderMode selects which providers a search runs against.
type ProviderMode string

const (
	// ModeEstimate uses only the built-in price models.
	ModeEstimate ProviderMode = "estimate"
	// ModeLive uses only credentialed external providers.
	ModeLive ProviderMode = "live"
	// ModeHybrid prefers live providers and falls back to the price models
	// where no live provider has credentials.
	ModeHybrid ProviderMode = "hybrid"
)

// Registry holds the registered transport and hotel providers and decides
// which are active for the configured mode.
type Registry struct {
	mode    ProviderMode
	flights []TransportProvider
	trains  []TransportProvider
	hotels  []HotelProvider
}

func NewRegistry(mode ProviderMode) *Registry {
	if mode == "" {
		mode = ModeEstimate
	}
	return &Registry{mode: mode}
}

func (r *Registry) Mode() ProviderMode { return r.mode }

func (r *Registry) RegisterFlight(p TransportProvider) { r.flights = append(r.flights, p) }
func (r *Registry) RegisterTrain(p TransportProvider)  { r.trains = append(r.trains, p) }
func (r *Registry) RegisterHotel(p HotelProvider)      { r.hotels = append(r.hotels, p) }

// Validate fails fast, before any orchestration, when the configured mode
// cannot produce working providers: live mode with a credential-less
// provider is a configuration error, not a per-destination one.
func (r *Registry) Validate() error {
	if r.mode != ModeLive {
		return nil
	}
	for _, p := range allTransport(r.flights, r.trains) {
		if isEstimateProvider(p.Name()) {
			continue
		}
		if ok, reason := p.Available(); !ok {
			return fmt.Errorf("%w: %s: %s", ErrProviderConfig, p.Name(), reason)
		}
	}
	for _, p := range r.hotels {
		if isEstimateProvider(p.Name()) {
			continue
		}
		if ok, reason := p.Available(); !ok {
			return fmt.Errorf("%w: %s: %s", ErrProviderConfig, p.Name(), reason)
		}
	}
	if len(r.Transport(TransportAny)) == 0 {
		return fmt.Errorf("%w: no transport providers active in live mode", ErrProviderConfig)
	}
	return nil
}

// Transport returns the active providers for a transport type. "any"
// returns flight providers followed by train providers; the assembler
// keeps whichever offer comes out cheaper.
func (r *Registry) Transport(t TransportType) []TransportProvider {
	switch t {
	case TransportFlight:
		return r.activeTransport(r.flights)
	case TransportTrain:
		return r.activeTransport(r.trains)
	default:
		return append(r.activeTransport(r.flights), r.activeTransport(r.trains)...)
	}
}

// Hotels returns the active hotel providers.
func (r *Registry) Hotels() []HotelProvider {
	var out []HotelProvider
	for _, p := range r.hotels {
		if r.shouldUse(p.Name(), hotelHasLiveAlternative(r.hotels)) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) activeTransport(list []TransportProvider) []TransportProvider {
	var out []TransportProvider
	for _, p := range list {
		if r.shouldUse(p.Name(), transportHasLiveAlternative(list)) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) shouldUse(name string, liveAlternative func(string) bool) bool {
	switch r.mode {
	case ModeEstimate:
		return isEstimateProvider(name)
	case ModeLive:
		return !isEstimateProvider(name)
	case ModeHybrid:
		if !isEstimateProvider(name) {
			return r.available(name)
		}
		return !liveAlternative(name)
	}
	return false
}

func (r *Registry) available(name string) bool {
	for _, p := range allTransport(r.flights, r.trains) {
		if p.Name() == name {
			ok, _ := p.Available()
			return ok
		}
	}
	for _, p := range r.hotels {
		if p.Name() == name {
			ok, _ := p.Available()
			return ok
		}
	}
	return false
}

func transportHasLiveAlternative(list []TransportProvider) func(string) bool {
	return func(string) bool {
		for _, p := range list {
			if !isEstimateProvider(p.Name()) {
				if ok, _ := p.Available(); ok {
					return true
				}
			}
		}
		return false
	}
}

func hotelHasLiveAlternative(list []HotelProvider) func(string) bool {
	return func(string) bool {
		for _, p := range list {
			if !isEstimateProvider(p.Name()) {
				if ok, _ := p.Available(); ok {
					return true
				}
			}
		}
		return false
	}
}

func allTransport(flights, trains []TransportProvider) []TransportProvider {
	return append(append([]TransportProvider{}, flights...), trains...)
}

func isEstimateProvider(name string) bool {
	return strings.HasPrefix(name, "estimate_")
}

// ProviderInfo describes one registered provider for diagnostics.
type ProviderInfo struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// DoctorReport summarizes provider health for the doctor command.
type DoctorReport struct {
	Mode      ProviderMode   `json:"mode"`
	Providers []ProviderInfo `json:"providers"`
	Healthy   bool           `json:"healthy"`
	Summary   string         `json:"summary"`
}

// Infos reports every registered provider with its status under the
// current mode.
func (r *Registry) Infos() []ProviderInfo {
	var infos []ProviderInfo
	for _, p := range r.flights {
		infos = append(infos, r.info(p.Name(), "flight", p.Available))
	}
	for _, p := range r.trains {
		infos = append(infos, r.info(p.Name(), "train", p.Available))
	}
	for _, p := range r.hotels {
		infos = append(infos, r.info(p.Name(), "hotel", p.Available))
	}
	return infos
}

func (r *Registry) info(name, kind string, available func() (bool, string)) ProviderInfo {
	info := ProviderInfo{Name: name, Kind: kind}
	if ok, reason := available(); ok {
		info.Status = "active"
	} else {
		info.Status = "no_credentials"
		info.Reason = reason
	}
	if r.mode == ModeEstimate && !isEstimateProvider(name) {
		info.Status = "inactive"
		info.Reason = "mode is estimate"
	}
	return info
}
