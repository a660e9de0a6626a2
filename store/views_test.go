package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicguard-be/models"
)

func TestSeverityScore(t *testing.T) {
	low := &models.Issue{Upvotes: 0, Priority: models.PriorityLow}
	assert.InDelta(t, 25.0, SeverityScore(low), 0.001)

	critical := &models.Issue{Upvotes: 10, Priority: models.PriorityCritical, Urgency: models.UrgencyHigh}
	assert.InDelta(t, 10*0.2+100+20, SeverityScore(critical), 0.001)

	// Priority dominates votes: a heavily upvoted Low issue still scores
	// below an unvoted Critical one.
	popular := &models.Issue{Upvotes: 300, Priority: models.PriorityLow}
	quiet := &models.Issue{Upvotes: 0, Priority: models.PriorityCritical}
	assert.Greater(t, SeverityScore(quiet), SeverityScore(popular))
	assert.Greater(t, SeverityScore(critical), SeverityScore(low))
}

func TestQueryFiltersAndSorts(t *testing.T) {
	s := newTestStore()
	citizen := addCitizen(s, "Asha")

	pothole := potholeDraft()
	s.AddIssue(pothole, citizen.ID)

	garbage := models.ReportDraft{
		Title: "Garbage pileup at market", Description: "Overflowing bins", Category: models.Waste,
		District: "Coimbatore", Panchayat: "Sulur", Village: "Arasur", Street: "Market Road",
	}
	garbageIssue := s.AddIssue(garbage, citizen.ID)

	leak := models.ReportDraft{
		Title: "Water pipe LEAKING", Description: "Main supply line burst", Category: models.Water,
		District: "Tiruppur", Panchayat: "Palladam", Village: "Karadivavi", Street: "Mill Street",
	}
	s.AddIssue(leak, citizen.ID)

	t.Run("by panchayat", func(t *testing.T) {
		got := s.Query(Filter{Panchayat: "Sulur"})
		require.Len(t, got, 1)
		assert.Equal(t, "Garbage pileup at market", got[0].Title)
	})

	t.Run("by category", func(t *testing.T) {
		got := s.Query(Filter{Category: models.Waste})
		require.Len(t, got, 1)
	})

	t.Run("search is case insensitive over title and description", func(t *testing.T) {
		got := s.Query(Filter{Search: "leaking"})
		require.Len(t, got, 1)
		assert.Equal(t, "Water pipe LEAKING", got[0].Title)

		got = s.Query(Filter{Search: "BURST"})
		require.Len(t, got, 1)
	})

	t.Run("newest first by default", func(t *testing.T) {
		got := s.Query(Filter{})
		require.Len(t, got, 3)
		assert.Equal(t, "Water pipe LEAKING", got[0].Title)
		assert.Equal(t, "Large pothole on Main Street", got[2].Title)
	})

	t.Run("oldest reverses", func(t *testing.T) {
		got := s.Query(Filter{Sort: SortOldest})
		require.Len(t, got, 3)
		assert.Equal(t, "Large pothole on Main Street", got[0].Title)
	})

	t.Run("most voted", func(t *testing.T) {
		voter := addCitizen(s, "Bala")
		_, _, err := s.VoteIssue(voter.ID, garbageIssue.ID)
		require.NoError(t, err)

		got := s.Query(Filter{Sort: SortMostVoted})
		assert.Equal(t, "Garbage pileup at market", got[0].Title)
	})

	t.Run("priority uses severity", func(t *testing.T) {
		leader := addLeader(s)
		critical := models.PriorityCritical
		_, err := s.UpdateTriage(garbageIssue.ID, leader, &critical, nil)
		require.NoError(t, err)

		got := s.Query(Filter{Sort: SortPriority})
		assert.Equal(t, "Garbage pileup at market", got[0].Title)
	})
}

func TestPanchayatCountsExcludeTerminal(t *testing.T) {
	s := newTestStore()
	leader := addLeader(s)
	citizen := addCitizen(s, "Asha")

	// Five issues in Pollachi, two of which end up terminal.
	var issues []*models.Issue
	for i := 0; i < 5; i++ {
		issues = append(issues, s.AddIssue(potholeDraft(), citizen.ID))
	}

	proof := &models.ResolutionProof{Image: "img", Description: "fixed"}
	_, err := s.UpdateStatus(issues[0].ID, leader, models.Resolved, proof)
	require.NoError(t, err)
	_, err = s.UpdateStatus(issues[1].ID, leader, models.Closed, nil)
	require.NoError(t, err)

	counts := s.PanchayatCounts()
	assert.Equal(t, 3, counts["Pollachi"])
}

func TestRecentGeotagged(t *testing.T) {
	s := newTestStore()
	citizen := addCitizen(s, "Asha")

	s.AddIssue(potholeDraft(), citizen.ID) // no coordinates

	withGPS := potholeDraft()
	withGPS.Title = "Pothole with location"
	withGPS.GPS = &models.GPSFix{Lat: 10.7312, Lng: 77.0105, Accuracy: 12.5}
	s.AddIssue(withGPS, citizen.ID)

	got := s.RecentGeotagged(10)
	require.Len(t, got, 1)
	assert.Equal(t, "Pothole with location", got[0].Title)
	require.NotNil(t, got[0].Location.Lat)
	assert.InDelta(t, 10.7312, *got[0].Location.Lat, 0.0001)
}

func TestComputeAnalytics(t *testing.T) {
	s := newTestStore()
	leader := addLeader(s)
	citizen := addCitizen(s, "Asha")
	voter := addCitizen(s, "Bala")

	pothole := s.AddIssue(potholeDraft(), citizen.ID)
	garbage := models.ReportDraft{Title: "Garbage pileup", Description: "bins", Category: models.Waste, District: "Coimbatore", Panchayat: "Sulur"}
	s.AddIssue(garbage, citizen.ID)

	_, _, err := s.VoteIssue(voter.ID, pothole.ID)
	require.NoError(t, err)
	_, err = s.UpdateStatus(pothole.ID, leader, models.Closed, nil)
	require.NoError(t, err)

	a := s.ComputeAnalytics()
	assert.Equal(t, 2, a.TotalIssues)
	assert.Equal(t, 1, a.TotalVotes)
	assert.Equal(t, 1, a.OpenIssues)
	require.Len(t, a.Last7Days, 7)
	assert.Equal(t, 2, a.Last7Days[6].Count)

	require.NotEmpty(t, a.TopVotedIssues)
	assert.Equal(t, pothole.ID, a.TopVotedIssues[0].ID)

	// Category breakdown is sorted by name.
	require.Len(t, a.IssuesByCategory, 2)
	assert.Equal(t, string(models.Roads), a.IssuesByCategory[0].Name)
	assert.Equal(t, string(models.Waste), a.IssuesByCategory[1].Name)
}
