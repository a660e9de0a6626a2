package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestMatch(t *testing.T) {
	options := []string{"Pollachi", "Veerapandi", "Karamadai", "Sulur"}

	tests := []struct {
		name     string
		query    string
		expected string
		ok       bool
	}{
		{"exact ignoring case", "pollachi", "Pollachi", true},
		{"exact with spaces", "  Sulur  ", "Sulur", true},
		{"substring", "veera", "Veerapandi", true},
		{"exact wins over substring", "sulur", "Sulur", true},
		{"no match", "xyzzy", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestMatch(tt.query, options)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBestMatchExactBeatsSubstring(t *testing.T) {
	// "Madurai East" contains "madurai" but the exact option must win.
	options := []string{"Madurai East", "Madurai"}
	got, ok := BestMatch("madurai", options)
	assert.True(t, ok)
	assert.Equal(t, "Madurai", got)
}

func TestNextStageOrder(t *testing.T) {
	assert.Equal(t, StagePanchayat, nextStage(StageDistrict))
	assert.Equal(t, StageLandmark, nextStage(StageStreet))
	assert.Equal(t, StageEvidence, nextStage(StageDescription))
	// Evidence only leaves via summary generation.
	assert.Equal(t, StageEvidence, nextStage(StageEvidence))
}

func TestPromptCatalogComplete(t *testing.T) {
	for lang, tr := range translations {
		for _, stage := range stageOrder {
			assert.NotEmpty(t, tr.promptFor(stage), "missing %s prompt for %s", lang, stage)
		}
		assert.NotEmpty(t, tr.Welcome)
		assert.Contains(t, tr.SpeechError, "{0}")
	}
}
