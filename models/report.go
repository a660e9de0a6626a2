package models

// ReportDraft is the single draft-report structure shared by the manual form
// path and the guided agent path. Both feed the same issue-creation core, so
// field names cannot drift between the two entry points.
type ReportDraft struct {
	Title          string        `json:"title"`
	Category       IssueCategory `json:"category"`
	Urgency        Urgency       `json:"urgency"`
	Description    string        `json:"description"`
	District       string        `json:"district"`
	Panchayat      string        `json:"panchayat"`
	Village        string        `json:"village"`
	Street         string        `json:"street"`
	Landmark       string        `json:"landmark,omitempty"`
	IncidentTime   string        `json:"incidentTime,omitempty"`
	AffectedPeople string        `json:"affectedPeople,omitempty"`

	// Set by the summarization service on the agent path, empty on the
	// manual path.
	ReporterDetails string `json:"reporterDetails,omitempty"`
	LocationDetails string `json:"locationDetails,omitempty"`
	FinalSummary    string `json:"finalSummary,omitempty"`

	GPS             *GPSFix          `json:"gps,omitempty"`
	Photos          []string         `json:"photos"`
	PhotoAnalyses   []ImageAnalysis  `json:"photoAnalyses,omitempty"`
	Video           string           `json:"video,omitempty"`
	Audio           string           `json:"audio,omitempty"`
	EmotionAnalysis *EmotionAnalysis `json:"emotionAnalysis,omitempty"`
}
