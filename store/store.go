package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"civicguard-be/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNotOwner      = errors.New("only the reporter may modify this issue")
	ErrIssueFinal    = errors.New("issue is already resolved or closed")
	ErrForbidden     = errors.New("action requires the leader role")
	ErrBadTransition = errors.New("invalid status transition")
	ErrProofRequired = errors.New("resolution proof is required to resolve an issue")
)

const notificationCap = 100

// Notification is one entry in the in-memory activity feed.
type Notification struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the single application-state container. All domain collections
// live here in memory and are lost on restart. Every read-side view is
// recomputed from current state; nothing is cached.
type Store struct {
	mu sync.RWMutex

	issues   []*models.Issue // newest first
	users    map[int64]*models.User
	posts    []*models.ForumPost // newest first
	comments []*models.Comment

	// Per-session voted sets, the single source of truth preventing
	// double voting.
	votedIssues   map[int64]map[int64]struct{}
	votedComments map[int64]map[int64]struct{}

	notifications []Notification

	lastID int64
	now    func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:         make(map[int64]*models.User),
		votedIssues:   make(map[int64]map[int64]struct{}),
		votedComments: make(map[int64]map[int64]struct{}),
		now:           time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// nextID returns a time-derived identifier that is still monotonically
// distinguishable when two events land on the same millisecond.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) notify(format string, args ...interface{}) {
	n := Notification{Message: fmt.Sprintf(format, args...), CreatedAt: s.now()}
	s.notifications = append(s.notifications, n)
	if len(s.notifications) > notificationCap {
		s.notifications = s.notifications[len(s.notifications)-notificationCap:]
	}
}

// Notifications returns the activity feed, newest last.
func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// AddUser registers a user in the session store and returns it with an id.
func (s *Store) AddUser(u models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextID()
	}
	stored := u
	s.users[stored.ID] = &stored
	return &stored
}

// GetUser looks a user up by id.
func (s *Store) GetUser(id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// FindUserByEmail returns the first user with the given email, or nil.
func (s *Store) FindUserByEmail(email string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp
		}
	}
	return nil
}

// UpdateUser replaces the stored profile for the given user id.
func (s *Store) UpdateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	stored := u
	s.users[u.ID] = &stored
	s.notify("Profile for %s has been updated.", u.Name)
	return nil
}

// Leaderboard returns all users sorted by points, highest first.
func (s *Store) Leaderboard() []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

// AddIssue promotes a draft report into a new issue record. Urgency is
// escalated when the audio emotion analysis signals high distress.
func (s *Store) AddIssue(draft models.ReportDraft, reporterID int64) *models.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	urgency := draft.Urgency
	if draft.EmotionAnalysis != nil {
		if draft.EmotionAnalysis.UrgencyScore >= 8 {
			urgency = models.UrgencyHigh
		} else if draft.EmotionAnalysis.UrgencyScore >= 5 && urgency != models.UrgencyHigh {
			urgency = models.UrgencyMedium
		}
	}

	title := draft.Title
	if title == "" {
		title = draft.FinalSummary
	}
	if title == "" {
		title = "Manual Report"
	}
	category := draft.Category
	if !models.ValidCategories[category] {
		category = models.Roads
	}

	issue := &models.Issue{
		ID:          s.nextID(),
		Title:       title,
		Description: draft.Description,
		Category:    category,
		Status:      models.Pending,
		Upvotes:     0,
		ReporterID:  reporterID,
		Location: models.Location{
			District:  draft.District,
			Panchayat: draft.Panchayat,
			Village:   draft.Village,
			Street:    draft.Street,
		},
		Images:          draft.Photos,
		Video:           draft.Video,
		Audio:           draft.Audio,
		CreatedAt:       s.now(),
		IncidentTime:    draft.IncidentTime,
		AffectedPeople:  draft.AffectedPeople,
		Urgency:         urgency,
		Priority:        models.PriorityMedium,
		EmotionAnalysis: draft.EmotionAnalysis,
		ImageAnalyses:   draft.PhotoAnalyses,
	}
	if draft.GPS != nil {
		lat, lng := draft.GPS.Lat, draft.GPS.Lng
		issue.Location.Lat = &lat
		issue.Location.Lng = &lng
	}

	s.issues = append([]*models.Issue{issue}, s.issues...)
	s.notify("New report \"%s\" is now visible on the feed and the map.", issue.Title)
	logrus.WithFields(logrus.Fields{"issue": issue.ID, "reporter": reporterID}).Info("issue created")

	cp := *issue
	return &cp
}

// GetIssue looks an issue up by id.
func (s *Store) GetIssue(id int64) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issue := s.findIssue(id)
	if issue == nil {
		return nil, ErrNotFound
	}
	cp := *issue
	return &cp, nil
}

func (s *Store) findIssue(id int64) *models.Issue {
	for _, issue := range s.issues {
		if issue.ID == id {
			return issue
		}
	}
	return nil
}

// UpdateIssue lets the reporter revise a report that has not yet been
// resolved or closed.
func (s *Store) UpdateIssue(id, userID int64, draft models.ReportDraft) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findIssue(id)
	if issue == nil {
		return nil, ErrNotFound
	}
	if issue.ReporterID != userID {
		return nil, ErrNotOwner
	}
	if issue.Status.Terminal() {
		return nil, ErrIssueFinal
	}

	if draft.Title != "" {
		issue.Title = draft.Title
	} else if draft.FinalSummary != "" {
		issue.Title = draft.FinalSummary
	}
	if draft.Description != "" {
		issue.Description = draft.Description
	}
	if models.ValidCategories[draft.Category] {
		issue.Category = draft.Category
	}
	if models.ValidUrgencies[draft.Urgency] {
		issue.Urgency = draft.Urgency
	}
	if draft.District != "" {
		issue.Location.District = draft.District
	}
	if draft.Panchayat != "" {
		issue.Location.Panchayat = draft.Panchayat
	}
	if draft.Village != "" {
		issue.Location.Village = draft.Village
	}
	if draft.Street != "" {
		issue.Location.Street = draft.Street
	}
	if len(draft.Photos) > 0 {
		issue.Images = draft.Photos
	}
	if draft.Video != "" {
		issue.Video = draft.Video
	}
	if len(draft.PhotoAnalyses) > 0 {
		issue.ImageAnalyses = draft.PhotoAnalyses
	}

	s.notify("Report \"%s\" was updated.", issue.Title)
	cp := *issue
	return &cp, nil
}

// DeleteIssue removes a report. Only the reporter may delete their own
// report, and only while it is not resolved or closed.
func (s *Store) DeleteIssue(id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, issue := range s.issues {
		if issue.ID != id {
			continue
		}
		if issue.ReporterID != userID {
			return ErrNotOwner
		}
		if issue.Status.Terminal() {
			return ErrIssueFinal
		}
		s.issues = append(s.issues[:i], s.issues[i+1:]...)
		s.notify("Report \"%s\" was deleted.", issue.Title)
		return nil
	}
	return ErrNotFound
}

// VoteIssue records an upvote for the (session, issue) pair. A second vote
// from the same session is a no-op, not an error.
func (s *Store) VoteIssue(userID, issueID int64) (upvotes int, voted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findIssue(issueID)
	if issue == nil {
		return 0, false, ErrNotFound
	}

	set, ok := s.votedIssues[userID]
	if !ok {
		set = make(map[int64]struct{})
		s.votedIssues[userID] = set
	}
	if _, already := set[issueID]; already {
		return issue.Upvotes, false, nil
	}
	set[issueID] = struct{}{}
	issue.Upvotes++
	return issue.Upvotes, true, nil
}

// HasVoted reports whether the session has already upvoted the issue.
func (s *Store) HasVoted(userID, issueID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.votedIssues[userID][issueID]
	return ok
}

// UpdateStatus moves an issue through its lifecycle. Only leaders may
// transition status; moving to Resolved requires a resolution proof and
// stamps its completion time, moving to Closed stamps the closure time.
func (s *Store) UpdateStatus(id int64, actor *models.User, status models.IssueStatus, proof *models.ResolutionProof) (*models.Issue, error) {
	if actor == nil || actor.Role != models.RoleLeader {
		return nil, ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findIssue(id)
	if issue == nil {
		return nil, ErrNotFound
	}
	if !models.CanTransition(issue.Status, status) {
		return nil, ErrBadTransition
	}

	if status == models.Resolved {
		if proof == nil || proof.Description == "" || proof.Image == "" {
			return nil, ErrProofRequired
		}
		stamped := *proof
		stamped.CompletedAt = s.now()
		issue.ResolutionProof = &stamped
	}
	if status == models.Closed {
		closedAt := s.now()
		issue.ClosedAt = &closedAt
	}
	issue.Status = status

	s.notify("Issue #%d status updated to %s.", issue.ID, status)
	logrus.WithFields(logrus.Fields{"issue": issue.ID, "status": status}).Info("status updated")
	cp := *issue
	return &cp, nil
}

// UpdateTriage sets the leader-controlled priority and assignee fields,
// allowed at any status.
func (s *Store) UpdateTriage(id int64, actor *models.User, priority *models.Priority, assignee *string) (*models.Issue, error) {
	if actor == nil || actor.Role != models.RoleLeader {
		return nil, ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findIssue(id)
	if issue == nil {
		return nil, ErrNotFound
	}
	if priority != nil {
		if !models.ValidPriorities[*priority] {
			return nil, fmt.Errorf("invalid priority %q", *priority)
		}
		issue.Priority = *priority
	}
	if assignee != nil {
		issue.AssignedTo = *assignee
	}

	s.notify("Details for issue #%d have been updated.", issue.ID)
	cp := *issue
	return &cp, nil
}
