package store

import (
	"sort"
	"strings"
	"time"

	"civicguard-be/models"
)

// SortBy selects the ordering of a filtered issue list.
type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortOldest    SortBy = "oldest"
	SortMostVoted SortBy = "mostVoted"
	SortPriority  SortBy = "priority"
)

// Filter narrows an issue query. Empty fields match everything.
type Filter struct {
	District  string
	Panchayat string
	Village   string
	Street    string
	Category  models.IssueCategory
	Status    models.IssueStatus
	Search    string
	Sort      SortBy
}

var priorityWeight = map[models.Priority]float64{
	models.PriorityCritical: 100,
	models.PriorityHigh:     75,
	models.PriorityMedium:   50,
	models.PriorityLow:      25,
}

var urgencyWeight = map[models.Urgency]float64{
	models.UrgencyHigh:   20,
	models.UrgencyMedium: 10,
}

// SeverityScore ranks an issue for the leader console's auto-prioritize
// ordering: community votes weigh lightly against the triage priority,
// with a smaller bump for reported urgency.
func SeverityScore(issue *models.Issue) float64 {
	score := float64(issue.Upvotes) * 0.2
	score += priorityWeight[issue.Priority]
	score += urgencyWeight[issue.Urgency]
	return score
}

func matchesFilter(issue *models.Issue, f Filter) bool {
	if f.District != "" && issue.Location.District != f.District {
		return false
	}
	if f.Panchayat != "" && issue.Location.Panchayat != f.Panchayat {
		return false
	}
	if f.Village != "" && issue.Location.Village != f.Village {
		return false
	}
	if f.Street != "" && issue.Location.Street != f.Street {
		return false
	}
	if f.Category != "" && issue.Category != f.Category {
		return false
	}
	if f.Status != "" && issue.Status != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(issue.Title), needle) &&
			!strings.Contains(strings.ToLower(issue.Description), needle) {
			return false
		}
	}
	return true
}

// Query recomputes a filtered, sorted issue list from current state.
// Sorting is stable, so score ties keep their input order.
func (s *Store) Query(f Filter) []*models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		if matchesFilter(issue, f) {
			cp := *issue
			out = append(out, &cp)
		}
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortMostVoted:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Upvotes > out[j].Upvotes
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return SeverityScore(out[i]) > SeverityScore(out[j])
		})
	default: // newest; the backing slice already holds newest first
	}
	return out
}

// IssuesByReporter returns all issues created by one user, newest first.
func (s *Store) IssuesByReporter(userID int64) []*models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Issue, 0)
	for _, issue := range s.issues {
		if issue.ReporterID == userID {
			cp := *issue
			out = append(out, &cp)
		}
	}
	return out
}

// RecentGeotagged returns up to limit recent issues that carry coordinates,
// for map markers.
func (s *Store) RecentGeotagged(limit int) []*models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Issue, 0, limit)
	for _, issue := range s.issues {
		if issue.Location.Lat == nil || issue.Location.Lng == nil {
			continue
		}
		cp := *issue
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out
}

// PanchayatCounts aggregates non-terminal issues per panchayat for the
// choropleth map. Resolved and Closed issues are excluded.
func (s *Store) PanchayatCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, issue := range s.issues {
		if issue.Status.Terminal() {
			continue
		}
		if issue.Location.Panchayat == "" {
			continue
		}
		counts[issue.Location.Panchayat]++
	}
	return counts
}

// CategoryCount is one slice of the category breakdown chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DayCount is one point of the last-7-days series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TopIssue is one row of the most-voted listing.
type TopIssue struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Votes    int    `json:"votes"`
}

// Analytics is the dashboard summary recomputed on every request.
type Analytics struct {
	IssuesByCategory []CategoryCount `json:"issuesByCategory"`
	Last7Days        []DayCount      `json:"last7Days"`
	TopVotedIssues   []TopIssue      `json:"topVotedIssues"`
	TotalIssues      int             `json:"totalIssues"`
	TotalVotes       int             `json:"totalVotes"`
	OpenIssues       int             `json:"openIssues"`
}

// ComputeAnalytics builds the analytics payload from current state.
func (s *Store) ComputeAnalytics() Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := Analytics{TotalIssues: len(s.issues)}

	byCategory := make(map[string]int)
	for _, issue := range s.issues {
		byCategory[string(issue.Category)]++
		a.TotalVotes += issue.Upvotes
		if !issue.Status.Terminal() {
			a.OpenIssues++
		}
	}
	for name, value := range byCategory {
		a.IssuesByCategory = append(a.IssuesByCategory, CategoryCount{Name: name, Value: value})
	}
	sort.Slice(a.IssuesByCategory, func(i, j int) bool {
		return a.IssuesByCategory[i].Name < a.IssuesByCategory[j].Name
	})

	now := s.now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		next := day.AddDate(0, 0, 1)
		count := 0
		for _, issue := range s.issues {
			if !issue.CreatedAt.Before(day) && issue.CreatedAt.Before(next) {
				count++
			}
		}
		a.Last7Days = append(a.Last7Days, DayCount{Date: day.Format("2006-01-02"), Count: count})
	}

	ranked := make([]*models.Issue, len(s.issues))
	copy(ranked, s.issues)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Upvotes > ranked[j].Upvotes
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	for _, issue := range ranked {
		a.TopVotedIssues = append(a.TopVotedIssues, TopIssue{
			ID: issue.ID, Title: issue.Title, Category: string(issue.Category), Votes: issue.Upvotes,
		})
	}
	return a
}
