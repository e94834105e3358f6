package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateFilter(t *testing.T) {
	cases := []struct {
		raw      string
		expected StateFilter
	}{
		{"ALL", FilterAll},
		{"all", FilterAll},
		{"", FilterAll},
		{"  current ", FilterCurrent},
		{"Past", FilterPast},
		{"FUTURE", FilterFuture},
		{"waiting", FilterWaiting},
		{"ReJeCtEd", FilterRejected},
	}

	for _, tc := range cases {
		got, err := ParseStateFilter(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.expected, got, "raw=%q", tc.raw)
	}
}

func TestParseStateFilterUnknown(t *testing.T) {
	_, err := ParseStateFilter("APPROVED")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state")
}

func TestStateFilterString(t *testing.T) {
	assert.Equal(t, "ALL", FilterAll.String())
	assert.Equal(t, "REJECTED", FilterRejected.String())
}

func TestViewpointString(t *testing.T) {
	assert.Equal(t, "BOOKER", ViewpointBooker.String())
	assert.Equal(t, "OWNER", ViewpointOwner.String())
}
