package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
	"github.com/transport-service/internal/schema"
	"github.com/transport-service/internal/usecase"
)

func TestDropNulls(t *testing.T) {
	in := map[string]any{
		"a": nil,
		"b": 0,
		"c": false,
		"d": []any{},
		"e": map[string]any{
			"x": nil,
			"y": map[string]any{"z": nil, "w": 0.0},
		},
		"f": []any{map[string]any{"k": nil, "v": "1"}, nil, 2},
	}

	out := usecase.DropNulls(in)

	assert.Equal(t, map[string]any{
		"b": 0,
		"c": false,
		"d": []any{},
		"e": map[string]any{
			"y": map[string]any{"w": 0.0},
		},
		"f": []any{map[string]any{"v": "1"}, nil, 2},
	}, out)

	// вход не изменяется
	assert.Contains(t, in, "a")
	assert.Contains(t, in["e"].(map[string]any), "x")
}

func TestFlattenLocations(t *testing.T) {
	locations := []any{
		map[string]any{
			"lat":  1.0,
			"lon":  2.0,
			"side": map[string]any{"preferred_side": "same", "lat": 99.0},
		},
		map[string]any{"lat": 3.0, "lon": 4.0},
	}

	out := usecase.FlattenLocations(locations)

	require.Len(t, out, 2)
	assert.Equal(t, map[string]any{"lat": 1.0, "lon": 2.0, "preferred_side": "same"}, out[0])
	assert.Equal(t, map[string]any{"lat": 3.0, "lon": 4.0}, out[1])

	// исходная точка сохраняет side
	assert.Contains(t, locations[0].(map[string]any), "side")
}

func TestSplitRouteParams(t *testing.T) {
	values := form.Values{
		"locations": []any{
			map[string]any{"lat": 1.0, "lon": 2.0, "type": nil, "side": map[string]any{"preferred_side": "either", "display_lat": nil}},
		},
		"units":            "miles",
		"language":         "fr-FR",
		"directions_type":  "none",
		"date_time":        nil,
		"use_tolls":        0.0,
		"shortest":         false,
		"height":           nil,
		"maneuver_penalty": 5,
	}

	params := usecase.SplitRouteParams(values)

	assert.Equal(t, []any{map[string]any{"lat": 1.0, "lon": 2.0, "preferred_side": "either"}}, params.Locations)
	assert.Equal(t, map[string]any{"units": "miles", "language": "fr-FR", "directions_type": "none"}, params.Directions)
	assert.Equal(t, map[string]any{"use_tolls": 0.0, "shortest": false, "maneuver_penalty": 5}, params.CostingOptions)

	// извлечение не меняет провалидированный запрос
	assert.Len(t, values, 9)
	assert.Contains(t, values, "locations")
}

func TestBuildContours(t *testing.T) {
	tests := []struct {
		name     string
		op       domain.Operation
		ranges   []any
		colors   []any
		expected []any
	}{
		{
			name:   "distance without colors",
			op:     domain.OperationIsodistance,
			ranges: []any{5.0, 10.0},
			colors: []any{},
			expected: []any{
				map[string]any{"distance": 5.0, "color": nil},
				map[string]any{"distance": 10.0, "color": nil},
			},
		},
		{
			name:   "time with colors",
			op:     domain.OperationIsochrone,
			ranges: []any{15.0, 30.0},
			colors: []any{"ff0000", "00ff00"},
			expected: []any{
				map[string]any{"time": 15.0, "color": "ff0000"},
				map[string]any{"time": 30.0, "color": "00ff00"},
			},
		},
		{
			name:   "fewer colors than ranges",
			op:     domain.OperationIsochrone,
			ranges: []any{1.0, 2.0, 3.0},
			colors: []any{"ff0000", nil},
			expected: []any{
				map[string]any{"time": 1.0, "color": "ff0000"},
				map[string]any{"time": 2.0, "color": nil},
				map[string]any{"time": 3.0, "color": nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usecase.BuildContours(tt.op.ContourMetric(), tt.ranges, tt.colors))
		})
	}
}

func TestNormalizeFilters(t *testing.T) {
	assert.Equal(t, []string{"edge.id", "edge.names"}, usecase.NormalizeFilters("edge.id, edge.names"))
	assert.Equal(t, []string{"edge.id", "edge.names"}, usecase.NormalizeFilters([]any{"edge.id", "edge.names"}))
	assert.Equal(t, []string{"edge.id"}, usecase.NormalizeFilters([]string{"edge.id"}))
	assert.Nil(t, usecase.NormalizeFilters(nil))
}

func TestRoutePayload(t *testing.T) {
	s, ok := schema.Route(domain.CostingPedestrian)
	require.True(t, ok)

	values, err := form.Validate(s, map[string]any{
		"locations": []any{
			map[string]any{"lat": 41.38, "lon": 2.17, "side": map[string]any{"preferred_side": "same"}},
			map[string]any{"lat": 41.39, "lon": 2.18},
		},
		"date_time": map[string]any{"type": 1, "value": "2024-05-01T08:00"},
	})
	require.NoError(t, err)

	payload := usecase.RoutePayload(domain.CostingPedestrian, values)

	assert.Equal(t, "pedestrian", payload["costing"])
	assert.Equal(t, "kilometers", payload["units"])
	assert.Equal(t, "en-US", payload["language"])
	assert.Equal(t, "instructions", payload["directions_type"])
	assert.Equal(t, map[string]any{"type": 1, "value": "2024-05-01T08:00"}, payload["date_time"])
	assert.Equal(t, []any{
		map[string]any{"lat": 41.38, "lon": 2.17, "preferred_side": "same"},
		map[string]any{"lat": 41.39, "lon": 2.18},
	}, payload["locations"])

	options := payload["costing_options"].(map[string]any)["pedestrian"].(map[string]any)
	assert.Equal(t, 0.6, options["use_living_streets"])
	assert.Equal(t, 5.1, options["walking_speed"])
	assert.NotContains(t, options, "locations")
	assert.NotContains(t, options, "units")

	t.Run("idempotent", func(t *testing.T) {
		once := usecase.Canonicalize(payload)
		assert.Equal(t, once, usecase.Canonicalize(once))
		assert.Equal(t, payload, once)
	})
}

func TestIsolinePayload(t *testing.T) {
	values, err := form.Validate(schema.Isoline, map[string]any{
		"lat":   "41.38",
		"lon":   "2.17",
		"range": []any{"5", "10"},
		"color": []any{"ff0000"},
	})
	require.NoError(t, err)

	payload := usecase.IsolinePayload(domain.OperationIsodistance, values)

	assert.Equal(t, domain.Payload{
		"locations": []any{map[string]any{"lat": 41.38, "lon": 2.17}},
		"costing":   "auto",
		"contours": []any{
			map[string]any{"distance": 5.0, "color": "ff0000"},
			map[string]any{"distance": 10.0, "color": nil},
		},
		"polygons": false,
		"denoise":  1.0,
	}, payload)
}

func TestTracePayload(t *testing.T) {
	values, err := form.Validate(schema.TraceAttributes, map[string]any{
		"shape": []any{
			map[string]any{"lat": "41.38", "lon": "2.17"},
			map[string]any{"lat": "41.39", "lon": "2.18", "time": "10"},
		},
		"filters": "edge.id,edge.names",
	})
	require.NoError(t, err)

	payload := usecase.TracePayload(values)

	assert.Equal(t, domain.Payload{
		"costing": "auto",
		"shape": []any{
			map[string]any{"lat": 41.38, "lon": 2.17},
			map[string]any{"lat": 41.39, "lon": 2.18, "time": 10},
		},
		"filters":       []string{"edge.id", "edge.names"},
		"filter_action": "exclude",
	}, payload)

	assert.Equal(t, payload, usecase.Canonicalize(payload))
}
