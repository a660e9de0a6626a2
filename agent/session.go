package agent

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"civicguard-be/ai"
	"civicguard-be/capture"
	"civicguard-be/location"
	"civicguard-be/models"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrBadStage          = errors.New("action not allowed in current stage")
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrAnswerRequired    = errors.New("an answer is required at this stage")
	ErrInvalidOption     = errors.New("answer is not one of the offered options")
	ErrEvidenceRequired  = errors.New("at least one photo and a video are required")
	ErrAnalysisPending   = errors.New("photo verification still in progress")
	ErrAlreadySubmitted  = errors.New("report already submitted")
	ErrRecordingActive   = errors.New("a recording is already in progress")
	ErrRecordingInactive = errors.New("no recording in progress")
)

// Message is one line of the conversation transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Deps are the external services a session needs. Everything is an
// interface or a small service so tests can swap in fakes.
type Deps struct {
	Provider   capture.Provider
	Locations  *location.Service
	Summarizer ai.Summarizer
	Classifier ai.Classifier
	Emotion    ai.Analyzer
}

// Session is one guided reporting conversation. All methods are safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	ID     uuid.UUID
	UserID int64

	deps Deps
	now  func() time.Time

	language   Language
	stage      Stage
	transcript []Message

	district    string
	panchayat   string
	village     string
	street      string
	landmark    string
	title       string
	category    string
	urgency     string
	description string

	evidence *capture.EvidenceStore
	recorder *capture.Recorder

	draft     *models.ReportDraft
	submitted bool
}

// Manager owns the live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	deps     Deps
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		deps:     deps,
	}
}

// Create opens a new conversation at the language-selection stage.
func (m *Manager) Create(userID int64) *Session {
	s := &Session{
		ID:       uuid.New(),
		UserID:   userID,
		deps:     m.deps,
		now:      time.Now,
		language: LangEnglish,
		stage:    StageLanguage,
		evidence: capture.NewEvidenceStore(),
	}
	s.transcript = append(s.transcript, Message{Role: "bot", Content: translations[LangEnglish].Welcome})

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears down a session and releases any device handles it still
// holds.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recorder != nil && s.recorder.Recording() {
		s.recorder.Stop()
	}
	s.recorder = nil
	return nil
}

func (s *Session) t() translation { return translations[s.language] }

func (s *Session) say(content string) {
	s.transcript = append(s.transcript, Message{Role: "bot", Content: content})
}

func (s *Session) hear(content string) {
	s.transcript = append(s.transcript, Message{Role: "user", Content: content})
}

// State is the snapshot handed to API clients.
type State struct {
	ID         uuid.UUID                 `json:"id"`
	Language   Language                  `json:"language"`
	LangCode   string                    `json:"langCode"`
	Stage      Stage                     `json:"stage"`
	Transcript []Message                 `json:"transcript"`
	Options    []string                  `json:"options,omitempty"`
	Photos     []*capture.PhotoEvidence  `json:"photos"`
	Video      *capture.VideoEvidence    `json:"video,omitempty"`
	Submitted  bool                      `json:"submitted"`
	Report     *models.ReportDraft       `json:"report,omitempty"`
}

// Snapshot returns the current conversation state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts, _ := s.optionsLocked()
	transcript := make([]Message, len(s.transcript))
	copy(transcript, s.transcript)
	return State{
		ID:         s.ID,
		Language:   s.language,
		LangCode:   s.t().LangCode,
		Stage:      s.stage,
		Transcript: transcript,
		Options:    opts,
		Photos:     s.evidence.Photos(),
		Video:      s.evidence.Video(),
		Submitted:  s.submitted,
		Report:     s.draft,
	}
}

// ChooseLanguage finishes the language stage and asks the first question.
func (s *Session) ChooseLanguage(lang Language) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageLanguage {
		return "", ErrBadStage
	}
	if !ValidLanguage[lang] {
		return "", ErrUnknownLanguage
	}
	s.language = lang
	s.stage = StageDistrict
	prompt := s.t().DistrictPrompt
	s.transcript = []Message{{Role: "bot", Content: prompt}}
	return prompt, nil
}

// Options returns the choice list for the current stage, or nil when the
// stage takes free text.
func (s *Session) Options() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optionsLocked()
}

func (s *Session) optionsLocked() ([]string, error) {
	switch s.stage {
	case StageDistrict:
		return s.deps.Locations.DistrictNames()
	case StagePanchayat:
		return s.deps.Locations.PanchayatNames(s.district)
	case StageVillage:
		return s.deps.Locations.VillageNames(s.district, s.panchayat)
	case StageCategory:
		return append([]string(nil), categoryOptions...), nil
	case StageUrgency:
		return append([]string(nil), urgencyOptions...), nil
	default:
		return nil, nil
	}
}

// SubmitInput records a typed answer for the current stage and advances the
// conversation. It returns the next prompt. Landmark is the only stage that
// accepts skipped.
func (s *Session) SubmitInput(value string, skipped bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stageIndex(s.stage) < 0 || s.stage == StageEvidence {
		return "", ErrBadStage
	}
	value = strings.TrimSpace(value)
	if skipped && s.stage != StageLandmark {
		return "", ErrBadStage
	}

	if !skipped {
		if requiresNonEmpty(s.stage) && value == "" {
			return "", ErrAnswerRequired
		}
		if !freeTextStage(s.stage) {
			opts, err := s.optionsLocked()
			if err != nil {
				return "", err
			}
			found := false
			for _, opt := range opts {
				if opt == value {
					found = true
					break
				}
			}
			if !found {
				return "", ErrInvalidOption
			}
		}
	}
	s.setAnswer(value, skipped)

	shown := value
	if skipped {
		shown = "(Skipped)"
	}
	s.hear(shown)
	return s.advanceLocked(), nil
}

// SubmitSpeech records a spoken answer. For option stages the phrase is
// matched against the options; when nothing matches the conversation stays
// put and the localized retry prompt, which quotes the phrase verbatim, is
// returned with matched=false.
func (s *Session) SubmitSpeech(query string) (reply string, matched bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stageIndex(s.stage) < 0 || s.stage == StageEvidence {
		return "", false, ErrBadStage
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false, ErrAnswerRequired
	}

	value := query
	if !freeTextStage(s.stage) {
		opts, err := s.optionsLocked()
		if err != nil {
			return "", false, err
		}
		match, ok := BestMatch(query, opts)
		if !ok {
			retry := strings.Replace(s.t().SpeechError, "{0}", query, 1)
			s.say(retry)
			return retry, false, nil
		}
		value = match
	}
	s.setAnswer(value, false)
	s.hear(value)
	return s.advanceLocked(), true, nil
}

func (s *Session) setAnswer(value string, skipped bool) {
	switch s.stage {
	case StageDistrict:
		if s.district != value {
			s.panchayat = ""
			s.village = ""
		}
		s.district = value
	case StagePanchayat:
		if s.panchayat != value {
			s.village = ""
		}
		s.panchayat = value
	case StageVillage:
		s.village = value
	case StageStreet:
		s.street = value
	case StageLandmark:
		if skipped {
			s.landmark = ""
		} else {
			s.landmark = value
		}
	case StageTitle:
		s.title = value
	case StageCategory:
		s.category = value
	case StageUrgency:
		s.urgency = value
	case StageDescription:
		s.description = value
	}
}

func (s *Session) advanceLocked() string {
	s.stage = nextStage(s.stage)
	prompt := s.t().promptFor(s.stage)
	if prompt != "" {
		s.say(prompt)
	}
	return prompt
}

// CapturePhoto runs the still-capture pipeline and kicks off authenticity
// verification in the background. The returned warning is non-empty when
// the photo was taken without a GPS fix.
func (s *Session) CapturePhoto(ctx context.Context) (*capture.PhotoEvidence, string, error) {
	s.mu.Lock()
	if s.stage != StageEvidence {
		s.mu.Unlock()
		return nil, "", ErrBadStage
	}
	if s.evidence.PhotoCount() >= capture.MaxPhotos {
		s.mu.Unlock()
		return nil, "", fmt.Errorf("photo limit of %d reached", capture.MaxPhotos)
	}
	village, panchayat, district := s.village, s.panchayat, s.district
	now := s.now
	s.mu.Unlock()

	result, err := capture.TakePhoto(ctx, s.deps.Provider, village, panchayat, district, now)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	entry, ok := s.evidence.AddPhoto(result.URI, result.GPS, result.CapturedAt)
	s.mu.Unlock()
	if !ok {
		return nil, "", fmt.Errorf("photo limit of %d reached", capture.MaxPhotos)
	}

	go s.verifyPhoto(entry.ID, result.URI)
	return entry, result.GPSWarning, nil
}

func (s *Session) verifyPhoto(id uuid.UUID, uri string) {
	data, mime, err := splitDataURI(uri)
	if err != nil {
		logrus.WithError(err).Warn("photo data unreadable, marking unverified")
		s.evidence.ResolveAnalysis(id, models.ImageAnalysis{
			Status:    models.Unverified,
			Reasoning: "Photo data could not be read.",
		})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.evidence.ResolveAnalysis(id, ai.Verify(ctx, s.deps.Classifier, data, mime))
}

// RemovePhoto drops a captured photo. Any verification result that arrives
// for it later is discarded.
func (s *Session) RemovePhoto(id uuid.UUID) bool {
	return s.evidence.RemovePhoto(id)
}

// StartVideo begins the single evidence recording. GPS and the location
// caption are fixed at start time; only the timestamp line changes per
// frame.
func (s *Session) StartVideo(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageEvidence {
		return "", ErrBadStage
	}
	if s.recorder != nil && s.recorder.Recording() {
		return "", ErrRecordingActive
	}
	rec, warning, err := capture.StartRecording(ctx, s.deps.Provider, s.village, s.panchayat, s.district, func(v *capture.VideoEvidence) {
		s.evidence.SetVideo(v)
	})
	if err != nil {
		return "", err
	}
	s.recorder = rec
	return warning, nil
}

// VideoFrame appends one frame to the active recording.
func (s *Session) VideoFrame() error {
	s.mu.Lock()
	rec := s.recorder
	s.mu.Unlock()
	if rec == nil || !rec.Recording() {
		return ErrRecordingInactive
	}
	return rec.CaptureFrame()
}

// StopVideo ends the active recording and files the clip as evidence.
func (s *Session) StopVideo() (*capture.VideoEvidence, error) {
	s.mu.Lock()
	rec := s.recorder
	s.mu.Unlock()
	if rec == nil {
		return nil, ErrRecordingInactive
	}
	v := rec.Stop()
	if v == nil {
		v = s.evidence.Video()
	}
	return v, nil
}

// RecordAudio captures the optional voice note used for emotion analysis.
func (s *Session) RecordAudio(ctx context.Context) (*capture.AudioEvidence, error) {
	s.mu.Lock()
	if s.stage != StageEvidence {
		s.mu.Unlock()
		return nil, ErrBadStage
	}
	s.mu.Unlock()

	mic, err := s.deps.Provider.AcquireMicrophone(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire microphone: %w", err)
	}
	defer mic.Release()

	data, mime, err := mic.Read()
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	audio := &capture.AudioEvidence{
		URI:      "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MimeType: mime,
		Data:     data,
	}
	s.evidence.SetAudio(audio)
	return audio, nil
}

// GenerateSummary runs the processing stage: optional emotion analysis,
// structured summarization and a final GPS fallback. On summarization
// failure the conversation returns to the evidence stage so the reporter
// can retry without losing anything.
func (s *Session) GenerateSummary(ctx context.Context) (*models.ReportDraft, error) {
	s.mu.Lock()
	if s.stage != StageEvidence {
		s.mu.Unlock()
		return nil, ErrBadStage
	}
	if s.evidence.PhotoCount() == 0 || s.evidence.Video() == nil {
		s.mu.Unlock()
		return nil, ErrEvidenceRequired
	}
	if !s.evidence.AllAnalysesDone() {
		s.mu.Unlock()
		return nil, ErrAnalysisPending
	}
	s.stage = StageProcessing
	reportText := s.reportText()
	audio := s.evidence.Audio()
	s.mu.Unlock()

	var emotion *models.EmotionAnalysis
	if audio != nil {
		result, err := s.deps.Emotion.Analyze(ctx, base64.StdEncoding.EncodeToString(audio.Data), audio.MimeType)
		if err != nil {
			logrus.WithError(err).Warn("emotion analysis failed, continuing without it")
		} else {
			emotion = result
		}
	}

	structured, err := s.deps.Summarizer.Summarize(ctx, reportText)
	if err != nil {
		logrus.WithError(err).Error("report summarization failed")
		s.mu.Lock()
		s.stage = StageEvidence
		s.say(s.t().AIError)
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", s.t().AIError, err)
	}

	gps := s.evidence.FirstGPS()
	if gps == nil {
		geoCtx, cancel := context.WithTimeout(ctx, capture.FallbackGeoOptions.Timeout)
		fix, geoErr := s.deps.Provider.CurrentPosition(geoCtx, capture.FallbackGeoOptions)
		cancel()
		if geoErr != nil {
			logrus.WithError(geoErr).Warn("final GPS fallback failed")
		} else {
			gps = &fix
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	urgency := models.Urgency(structured.UrgencyLevel)
	if !models.ValidUrgencies[urgency] {
		urgency = models.Urgency(s.urgency)
	}
	draft := &models.ReportDraft{
		Title:           s.title,
		Category:        models.IssueCategory(s.category),
		Urgency:         urgency,
		Description:     structured.IssueDescription,
		District:        s.district,
		Panchayat:       s.panchayat,
		Village:         s.village,
		Street:          s.street,
		Landmark:        s.landmark,
		IncidentTime:    structured.DateTime,
		AffectedPeople:  structured.AffectedPeopleCommunity,
		ReporterDetails: structured.ReporterDetails,
		LocationDetails: structured.LocationDetails,
		FinalSummary:    structured.FinalSummaryRecommendation,
		GPS:             gps,
		Photos:          s.evidence.PhotoURIs(),
		PhotoAnalyses:   s.evidence.Analyses(),
		EmotionAnalysis: emotion,
	}
	if v := s.evidence.Video(); v != nil {
		draft.Video = v.URI
	}
	if audio != nil {
		draft.Audio = audio.URI
	}
	s.draft = draft
	s.stage = StageSummary
	return draft, nil
}

func (s *Session) reportText() string {
	landmark := s.landmark
	if landmark == "" {
		landmark = "Not provided"
	}
	return fmt.Sprintf("Issue Report:\n- Title: %s\n- Category: %s\n- Urgency: %s\nLocation:\n- District: %s\n- Panchayat: %s\n- Village: %s\n- Street/Locality: %s\n- Landmark (optional): %s\nDescription:\n- %s",
		s.title, s.category, s.urgency, s.district, s.panchayat, s.village, s.street, landmark, s.description)
}

// Confirm finalizes the report. A second call returns ErrAlreadySubmitted
// rather than producing a duplicate.
func (s *Session) Confirm() (*models.ReportDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return nil, ErrAlreadySubmitted
	}
	if s.stage != StageSummary || s.draft == nil {
		return nil, ErrBadStage
	}
	s.submitted = true
	s.stage = StageCompleted
	s.say(s.t().Completed)
	return s.draft, nil
}

// EditReport walks the conversation back to the first question. Answers are
// re-asked but captured evidence stays attached.
func (s *Session) EditReport() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageSummary || s.submitted {
		return "", ErrBadStage
	}
	s.draft = nil
	s.stage = StageDistrict
	s.say(s.t().EditPrompt)
	prompt := s.t().DistrictPrompt
	s.say(prompt)
	return prompt, nil
}

func splitDataURI(uri string) (data, mimeType string, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("malformed data URI")
	}
	mimeType = strings.TrimSuffix(meta, ";base64")
	return payload, mimeType, nil
}
