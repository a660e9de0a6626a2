package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorForCount(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, "#CCCCCC"},
		{1, "#90EE90"},
		{2, "#FFFF00"},
		{3, "#FFA500"},
		{4, "#FF0000"},
		{17, "#FF0000"},
		{-1, "#CCCCCC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ColorForCount(tt.count), "count %d", tt.count)
	}
}

func TestGradesMatchScale(t *testing.T) {
	grades := Grades()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, grades)
	// Every grade maps to a distinct color.
	seen := make(map[string]bool)
	for _, g := range grades {
		seen[ColorForCount(g)] = true
	}
	assert.Len(t, seen, len(grades))
}

func TestFeaturesLoad(t *testing.T) {
	const doc = `{
	  "type": "FeatureCollection",
	  "features": [
	    {
	      "type": "Feature",
	      "properties": {"name": "Arasampalayam"},
	      "geometry": {
	        "type": "Polygon",
	        "coordinates": [[[77.00, 10.72], [77.03, 10.72], [77.03, 10.74], [77.00, 10.72]]]
	      }
	    }
	  ]
	}`
	path := filepath.Join(t.TempDir(), "boundaries.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	b := NewBoundaries(path)
	features, err := b.Features()
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "Arasampalayam", features[0].Properties.Name)
	require.Len(t, features[0].Geometry.Coordinates, 1)
	assert.InDelta(t, 77.00, features[0].Geometry.Coordinates[0][0][0], 0.0001)
}

func TestFeaturesMissingFile(t *testing.T) {
	b := NewBoundaries(filepath.Join(t.TempDir(), "nope.json"))
	_, err := b.Features()
	assert.Error(t, err)
}
