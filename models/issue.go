package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Roads                IssueCategory = "Roads"
	Waste                IssueCategory = "Waste"
	Water                IssueCategory = "Water"
	Electricity          IssueCategory = "Electricity"
	PublicInfrastructure IssueCategory = "Public Infrastructure"
	Other                IssueCategory = "Other"
)

// ValidCategories lists the accepted category values for input validation.
var ValidCategories = map[IssueCategory]bool{
	Roads: true, Waste: true, Water: true,
	Electricity: true, PublicInfrastructure: true, Other: true,
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	Received   IssueStatus = "Received"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
	Closed     IssueStatus = "Closed"
)

var statusRank = map[IssueStatus]int{
	Pending: 0, Received: 1, InProgress: 2, Resolved: 3, Closed: 4,
}

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s IssueStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an issue may move from one status to another.
// Transitions only move forward, except that any state may jump to Closed.
func CanTransition(from, to IssueStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if to == Closed {
		return true
	}
	return statusRank[to] > statusRank[from]
}

// Terminal reports whether a status excludes the issue from open-issue counts.
func (s IssueStatus) Terminal() bool {
	return s == Resolved || s == Closed
}

// Urgency enum (reporter- or AI-derived)
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

var ValidUrgencies = map[Urgency]bool{
	UrgencyLow: true, UrgencyMedium: true, UrgencyHigh: true,
}

// Priority enum (independent triage field set by officials)
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true, PriorityCritical: true,
}

// GPSFix is a single geolocation reading.
type GPSFix struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
}

// Location is the administrative hierarchy an issue belongs to.
type Location struct {
	District  string   `json:"district"`
	Panchayat string   `json:"panchayat"`
	Village   string   `json:"village"`
	Street    string   `json:"street"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
}

// AnalysisStatus is the verdict of the image authenticity service.
type AnalysisStatus string

const (
	Authentic   AnalysisStatus = "Authentic"
	Manipulated AnalysisStatus = "Manipulated"
	AIGenerated AnalysisStatus = "AI-Generated"
	// Unverified is the terminal fallback when the service keeps failing,
	// so an entry never stays pending forever.
	Unverified AnalysisStatus = "Unverified"
)

// ImageAnalysis is one authenticity verdict for one evidence photo.
type ImageAnalysis struct {
	Status     AnalysisStatus `json:"status"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
}

// EmotionAnalysis is the result of the audio emotion service.
type EmotionAnalysis struct {
	Sentiment    string `json:"sentiment"`
	UrgencyScore int    `json:"urgencyScore"`
}

// ResolutionProof documents the fix attached when an issue is resolved.
type ResolutionProof struct {
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CompletedAt time.Time `json:"completedAt"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        IssueCategory    `json:"category"`
	Status          IssueStatus      `json:"status"`
	Upvotes         int              `json:"upvotes"`
	ReporterID      int64            `json:"reporterId"`
	Location        Location         `json:"location"`
	Images          []string         `json:"images"`
	Video           string           `json:"video,omitempty"`
	Audio           string           `json:"audio,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	IncidentTime    string           `json:"incidentTime,omitempty"`
	AffectedPeople  string           `json:"affectedPeople,omitempty"`
	Urgency         Urgency          `json:"urgency,omitempty"`
	Priority        Priority         `json:"priority,omitempty"`
	AssignedTo      string           `json:"assignedTo,omitempty"`
	EmotionAnalysis *EmotionAnalysis `json:"emotionAnalysis,omitempty"`
	ImageAnalyses   []ImageAnalysis  `json:"imageAnalyses,omitempty"`
	ResolutionProof *ResolutionProof `json:"resolutionProof,omitempty"`
	ClosedAt        *time.Time       `json:"closedAt,omitempty"`
}
