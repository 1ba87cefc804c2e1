package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDateCandidatesHorizon(t *testing.T) {
	// A Wednesday, so the first candidate needs no weekend shift.
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

	got := GenerateDateCandidates(now, 4)
	require.NotEmpty(t, got)
	assert.Len(t, got, 11)

	assert.Equal(t, "2026-01-28", got[0].OutboundDate)
	assert.Equal(t, "2026-02-01", got[0].ReturnDate)

	for _, dc := range got {
		out, err := time.Parse("2006-01-02", dc.OutboundDate)
		require.NoError(t, err)
		ret, err := time.Parse("2006-01-02", dc.ReturnDate)
		require.NoError(t, err)
		assert.Equal(t, 4, int(ret.Sub(out).Hours()/24))
		assert.Equal(t, 4, dc.Nights)
	}
}

func TestGenerateDateCandidatesShiftsWeekends(t *testing.T) {
	// Saturday start: every base candidate lands on a Saturday and must be
	// shifted three days to the Tuesday.
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Saturday, now.Weekday())

	for _, dc := range GenerateDateCandidates(now, 7) {
		out, err := time.Parse("2006-01-02", dc.OutboundDate)
		require.NoError(t, err)
		assert.Equal(t, time.Tuesday, out.Weekday(), "outbound %s", dc.OutboundDate)
	}

	// Sunday start shifts two days, also to Tuesday.
	now = time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, now.Weekday())

	for _, dc := range GenerateDateCandidates(now, 7) {
		out, err := time.Parse("2006-01-02", dc.OutboundDate)
		require.NoError(t, err)
		assert.Equal(t, time.Tuesday, out.Weekday(), "outbound %s", dc.OutboundDate)
	}
}

func TestGenerateDateCandidatesNeverOnWeekend(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 7; day++ {
		now := start.AddDate(0, 0, day)
		for _, dc := range GenerateDateCandidates(now, 3) {
			out, err := time.Parse("2006-01-02", dc.OutboundDate)
			require.NoError(t, err)
			assert.NotEqual(t, time.Saturday, out.Weekday())
			assert.NotEqual(t, time.Sunday, out.Weekday())
		}
	}
}

func TestGenerateDateCandidatesCoercesNights(t *testing.T) {
	now := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	got := GenerateDateCandidates(now, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, 1, got[0].Nights)
}
