package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicguard-be/models"
)

func newTestStore() *Store {
	s := New()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})
	return s
}

func addLeader(s *Store) *models.User {
	return s.AddUser(models.User{Name: "Ward Leader", Email: "leader@civic.com", Role: models.RoleLeader})
}

func addCitizen(s *Store, name string) *models.User {
	return s.AddUser(models.User{Name: name, Role: models.RoleCitizen})
}

func potholeDraft() models.ReportDraft {
	return models.ReportDraft{
		Title:       "Large pothole on Main Street",
		Description: "A deep pothole near the bus stop is damaging two-wheelers.",
		Category:    models.Roads,
		Urgency:     models.UrgencyHigh,
		District:    "Coimbatore",
		Panchayat:   "Pollachi",
		Village:     "Arasampalayam",
		Street:      "Main Street",
	}
}

func TestAddIssueDefaults(t *testing.T) {
	s := newTestStore()
	citizen := addCitizen(s, "Asha")

	issue := s.AddIssue(potholeDraft(), citizen.ID)

	assert.Equal(t, models.Pending, issue.Status)
	assert.Equal(t, models.PriorityMedium, issue.Priority)
	assert.Equal(t, 0, issue.Upvotes)
	assert.Equal(t, citizen.ID, issue.ReporterID)
	assert.Equal(t, "Pollachi", issue.Location.Panchayat)
	assert.False(t, issue.CreatedAt.IsZero())
}

func TestAddIssueFallbacks(t *testing.T) {
	s := newTestStore()
	citizen := addCitizen(s, "Asha")

	issue := s.AddIssue(models.ReportDraft{
		Description:  "Something broke",
		Category:     models.IssueCategory("Bogus"),
		FinalSummary: "Streetlight out near the school requires replacement.",
	}, citizen.ID)

	assert.Equal(t, "Streetlight out near the school requires replacement.", issue.Title)
	assert.Equal(t, models.Roads, issue.Category)

	issue = s.AddIssue(models.ReportDraft{Description: "No title at all"}, citizen.ID)
	assert.Equal(t, "Manual Report", issue.Title)
}

func TestAddIssueUniqueIDsSameInstant(t *testing.T) {
	s := New()
	frozen := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return frozen })
	citizen := addCitizen(s, "Asha")

	a := s.AddIssue(potholeDraft(), citizen.ID)
	b := s.AddIssue(potholeDraft(), citizen.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestEmotionUrgencyEscalation(t *testing.T) {
	tests := []struct {
		name     string
		urgency  models.Urgency
		score    int
		expected models.Urgency
	}{
		{"score 8 forces High", models.UrgencyLow, 8, models.UrgencyHigh},
		{"score 5 lifts Low to Medium", models.UrgencyLow, 5, models.UrgencyMedium},
		{"score 5 never demotes High", models.UrgencyHigh, 5, models.UrgencyHigh},
		{"score 4 leaves urgency alone", models.UrgencyLow, 4, models.UrgencyLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			citizen := addCitizen(s, "Asha")
			draft := potholeDraft()
			draft.Urgency = tt.urgency
			draft.EmotionAnalysis = &models.EmotionAnalysis{Sentiment: "Frustrated", UrgencyScore: tt.score}

			issue := s.AddIssue(draft, citizen.ID)
			assert.Equal(t, tt.expected, issue.Urgency)
		})
	}
}

func TestVoteIssueIdempotent(t *testing.T) {
	s := newTestStore()
	reporter := addCitizen(s, "Asha")
	voter := addCitizen(s, "Bala")
	issue := s.AddIssue(potholeDraft(), reporter.ID)

	upvotes, voted, err := s.VoteIssue(voter.ID, issue.ID)
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, 1, upvotes)

	// Second vote from the same account changes nothing.
	upvotes, voted, err = s.VoteIssue(voter.ID, issue.ID)
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Equal(t, 1, upvotes)

	assert.True(t, s.HasVoted(voter.ID, issue.ID))
	assert.False(t, s.HasVoted(reporter.ID, issue.ID))
}

func TestVoteIssueNotFound(t *testing.T) {
	s := newTestStore()
	voter := addCitizen(s, "Bala")
	_, _, err := s.VoteIssue(voter.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	proof := &models.ResolutionProof{Image: "data:image/jpeg;base64,xyz", Description: "Road patched"}

	tests := []struct {
		name    string
		from    models.IssueStatus
		to      models.IssueStatus
		proof   *models.ResolutionProof
		wantErr error
	}{
		{"forward step", models.Pending, models.Received, nil, nil},
		{"skip ahead", models.Pending, models.InProgress, nil, nil},
		{"backwards refused", models.InProgress, models.Received, nil, ErrBadTransition},
		{"same status refused", models.Received, models.Received, nil, ErrBadTransition},
		{"any state may close", models.Pending, models.Closed, nil, nil},
		{"resolve without proof refused", models.InProgress, models.Resolved, nil, ErrProofRequired},
		{"resolve with proof", models.InProgress, models.Resolved, proof, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			leader := addLeader(s)
			citizen := addCitizen(s, "Asha")
			issue := s.AddIssue(potholeDraft(), citizen.ID)

			// Walk the issue to the starting status.
			if tt.from != models.Pending {
				_, err := s.UpdateStatus(issue.ID, leader, tt.from, proof)
				require.NoError(t, err)
			}

			updated, err := s.UpdateStatus(issue.ID, leader, tt.to, tt.proof)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			if tt.to == models.Resolved {
				require.NotNil(t, updated.ResolutionProof)
				assert.False(t, updated.ResolutionProof.CompletedAt.IsZero())
				assert.True(t, updated.ResolutionProof.CompletedAt.After(updated.CreatedAt))
			}
			if tt.to == models.Closed {
				require.NotNil(t, updated.ClosedAt)
			}
		})
	}
}

func TestUpdateStatusLeaderOnly(t *testing.T) {
	s := newTestStore()
	citizen := addCitizen(s, "Asha")
	issue := s.AddIssue(potholeDraft(), citizen.ID)

	_, err := s.UpdateStatus(issue.ID, citizen, models.Received, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.UpdateStatus(issue.ID, nil, models.Received, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateTriage(t *testing.T) {
	s := newTestStore()
	leader := addLeader(s)
	citizen := addCitizen(s, "Asha")
	issue := s.AddIssue(potholeDraft(), citizen.ID)

	critical := models.PriorityCritical
	assignee := "Road Maintenance Crew"
	updated, err := s.UpdateTriage(issue.ID, leader, &critical, &assignee)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityCritical, updated.Priority)
	assert.Equal(t, "Road Maintenance Crew", updated.AssignedTo)

	_, err = s.UpdateTriage(issue.ID, citizen, &critical, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateIssueOwnership(t *testing.T) {
	s := newTestStore()
	leader := addLeader(s)
	owner := addCitizen(s, "Asha")
	stranger := addCitizen(s, "Bala")
	issue := s.AddIssue(potholeDraft(), owner.ID)

	draft := potholeDraft()
	draft.Title = "Pothole repaired partially, still dangerous"

	_, err := s.UpdateIssue(issue.ID, stranger.ID, draft)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := s.UpdateIssue(issue.ID, owner.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, draft.Title, updated.Title)

	// Editing stops once the issue reaches a terminal status.
	_, err = s.UpdateStatus(issue.ID, leader, models.Closed, nil)
	require.NoError(t, err)
	_, err = s.UpdateIssue(issue.ID, owner.ID, draft)
	assert.ErrorIs(t, err, ErrIssueFinal)
}

func TestDeleteIssue(t *testing.T) {
	s := newTestStore()
	owner := addCitizen(s, "Asha")
	stranger := addCitizen(s, "Bala")
	issue := s.AddIssue(potholeDraft(), owner.ID)

	assert.ErrorIs(t, s.DeleteIssue(issue.ID, stranger.ID), ErrNotOwner)
	require.NoError(t, s.DeleteIssue(issue.ID, owner.ID))
	_, err := s.GetIssue(issue.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaderboardOrder(t *testing.T) {
	s := newTestStore()
	a := addCitizen(s, "Asha")
	b := addCitizen(s, "Bala")
	c := addCitizen(s, "Chitra")

	a.Points = 10
	b.Points = 30
	c.Points = 20
	require.NoError(t, s.UpdateUser(*a))
	require.NoError(t, s.UpdateUser(*b))
	require.NoError(t, s.UpdateUser(*c))

	board := s.Leaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, "Bala", board[0].Name)
	assert.Equal(t, "Chitra", board[1].Name)
	assert.Equal(t, "Asha", board[2].Name)
}

func TestNotificationsFeed(t *testing.T) {
	s := newTestStore()
	citizen := addCitizen(s, "Asha")
	s.AddIssue(potholeDraft(), citizen.ID)

	feed := s.Notifications()
	require.NotEmpty(t, feed)
	assert.Contains(t, feed[len(feed)-1].Message, "Large pothole on Main Street")
}
