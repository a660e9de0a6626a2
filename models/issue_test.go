package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from IssueStatus
		to   IssueStatus
		ok   bool
	}{
		{"pending to received", Pending, Received, true},
		{"pending to resolved skips ahead", Pending, Resolved, true},
		{"received back to pending", Received, Pending, false},
		{"resolved back to in progress", Resolved, InProgress, false},
		{"same status", InProgress, InProgress, false},
		{"anything to closed", Pending, Closed, true},
		{"resolved to closed", Resolved, Closed, true},
		{"unknown status", Pending, IssueStatus("Archived"), false},
		{"unknown source", IssueStatus("Draft"), Received, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Resolved.Terminal())
	assert.True(t, Closed.Terminal())
	assert.False(t, Pending.Terminal())
	assert.False(t, Received.Terminal())
	assert.False(t, InProgress.Terminal())
}
