package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Feature is one village polygon from the boundary dataset.
type Feature struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	} `json:"geometry"`
}

// FeatureCollection is the GeoJSON document holding all village boundaries.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Boundaries serves the static village polygon dataset, loaded once.
type Boundaries struct {
	path       string
	once       sync.Once
	collection FeatureCollection
	err        error
}

// NewBoundaries prepares a loader for the given GeoJSON file.
func NewBoundaries(path string) *Boundaries {
	return &Boundaries{path: path}
}

func (b *Boundaries) load() {
	data, err := os.ReadFile(b.path)
	if err != nil {
		b.err = fmt.Errorf("read boundary data: %w", err)
		return
	}
	if err := json.Unmarshal(data, &b.collection); err != nil {
		b.err = fmt.Errorf("parse boundary data: %w", err)
	}
}

// Features returns all village boundary features.
func (b *Boundaries) Features() ([]Feature, error) {
	b.once.Do(b.load)
	return b.collection.Features, b.err
}

// Choropleth color scale, fixed breakpoints at counts 0/1/2/3/4+.
const (
	colorNone   = "#CCCCCC"
	colorLow    = "#90EE90"
	colorMild   = "#FFFF00"
	colorRaised = "#FFA500"
	colorHigh   = "#FF0000"
)

// ColorForCount maps an open-issue count to its choropleth fill color.
func ColorForCount(count int) string {
	switch {
	case count >= 4:
		return colorHigh
	case count == 3:
		return colorRaised
	case count == 2:
		return colorMild
	case count == 1:
		return colorLow
	default:
		return colorNone
	}
}

// Grades returns the legend breakpoints in display order.
func Grades() []int {
	return []int{0, 1, 2, 3, 4}
}
