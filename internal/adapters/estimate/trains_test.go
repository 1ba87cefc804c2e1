package estimate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderpack/packages-cli/internal/core"
)

func trainQuery(city string) core.TransportQuery {
	return core.TransportQuery{
		Origin:       "LON",
		Destination:  core.Destination{City: city, IATA: "XXX"},
		OutboundDate: "2026-06-02",
		ReturnDate:   "2026-06-06",
		Adults:       2,
	}
}

func TestTrainsRailCity(t *testing.T) {
	tr := &Trains{now: fixedNow}

	offer, err := tr.Search(context.Background(), trainQuery("Paris"))
	require.NoError(t, err)
	require.NotNil(t, offer)

	assert.Equal(t, core.TransportTrain, offer.Type)
	assert.Contains(t, offer.Carriers, "Eurostar")
	assert.Zero(t, offer.Stops)
	assert.Equal(t, 135, offer.DurationMinutes)
	// Paris band is 78..300 per adult.
	assert.GreaterOrEqual(t, offer.Price, 78*2)
	assert.LessOrEqual(t, offer.Price, 300*2)
	assert.False(t, offer.IsRealPrice)
}

func TestTrainsNoRailRoute(t *testing.T) {
	tr := &Trains{now: fixedNow}

	offer, err := tr.Search(context.Background(), trainQuery("Tenerife"))
	require.NoError(t, err)
	assert.Nil(t, offer, "no rail route means no offer, not an error")
}

func TestTrainsDeterministic(t *testing.T) {
	tr := &Trains{now: fixedNow}

	first, err := tr.Search(context.Background(), trainQuery("Berlin"))
	require.NoError(t, err)
	second, err := tr.Search(context.Background(), trainQuery("Berlin"))
	require.NoError(t, err)

	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, 2, first.Stops)
}
