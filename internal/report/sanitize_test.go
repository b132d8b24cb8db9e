package report

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalDocumentCleanPassThrough(t *testing.T) {
	t.Parallel()

	doc, _ := sampleDocument()
	data, sanitized, err := MarshalDocument(doc)

	require.NoError(t, err)
	assert.False(t, sanitized)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), `"airport": "LPPT"`)
}

func TestMarshalDocumentSanitizesNonFinite(t *testing.T) {
	t.Parallel()

	doc, _ := sampleDocument()
	doc.General.ArrivalDelays.AvgDelayMin = math.NaN()
	doc.General.ArrivalDelays.MinDelayMin = math.Inf(-1)
	doc.General.DepartureDelays.MaxDelayMin = math.Inf(1)

	data, sanitized, err := MarshalDocument(doc)
	require.NoError(t, err)
	assert.True(t, sanitized)
	assert.True(t, json.Valid(data))

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))
	general, ok := tree["general_metrics"].(map[string]any)
	require.True(t, ok)

	arrivalDelays := general["arrival_delays"].(map[string]any)
	assert.Equal(t, "NaN", arrivalDelays["avg_delay_min"])
	assert.Equal(t, "-Inf", arrivalDelays["min_delay_min"])

	departureDelays := general["departure_delays"].(map[string]any)
	assert.Equal(t, "+Inf", departureDelays["max_delay_min"])

	// Finite values survive untouched.
	assert.Equal(t, "LPPT", tree["airport"])
	assert.InDelta(t, 5.0, arrivalDelays["median_delay_min"].(float64), 0.001)
}

func TestSanitizeFlattensEmbeddedStructs(t *testing.T) {
	t.Parallel()

	doc, _ := sampleDocument()
	doc.General.ArrivalDelays.AvgDelayMin = math.NaN()

	data, sanitized, err := MarshalDocument(doc)
	require.NoError(t, err)
	require.True(t, sanitized)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))
	general := tree["general_metrics"].(map[string]any)
	peaks, ok := general["flights_per_hour_with_peaks"].([]any)
	require.True(t, ok)
	require.Len(t, peaks, 24)

	slot, ok := peaks[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, slot, "scheduled_hour")
	assert.Contains(t, slot, "hour_hh_mm")
	assert.Contains(t, slot, "arrivals_peak")
	assert.Contains(t, slot, "avg_departures")
}

func TestSanitizeKeepsNilPointersNull(t *testing.T) {
	t.Parallel()

	doc, _ := Assemble("lis", nil, nil, AssembleConfig{TopRoutes: 5, TopDestinations: 10})
	doc.General.ArrivalDelays.AvgDelayMin = math.NaN()

	data, sanitized, err := MarshalDocument(doc)
	require.NoError(t, err)
	require.True(t, sanitized)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))
	destination := tree["destination_metrics"].(map[string]any)
	assert.Nil(t, destination["shortest_route"])
	assert.Nil(t, destination["longest_route"])
}
