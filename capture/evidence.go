package capture

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"civicguard-be/models"
)

// MaxPhotos caps the evidence photos per report. Adding beyond the cap is
// intentional capacity control, not an error.
const MaxPhotos = 3

// PhotoEvidence is one captured still with its burn-in metadata. Analysis
// results are keyed by ID, never by list position, so a result that lands
// after its entry was removed is simply discarded.
type PhotoEvidence struct {
	ID         uuid.UUID         `json:"id"`
	URI        string            `json:"uri"`
	GPS        *models.GPSFix    `json:"gps,omitempty"`
	CapturedAt time.Time         `json:"capturedAt"`
	Pending    bool              `json:"pending"`
	Analysis   *models.ImageAnalysis `json:"analysis,omitempty"`
}

// VideoEvidence is the single recorded clip for a report.
type VideoEvidence struct {
	URI      string         `json:"uri"`
	GPS      *models.GPSFix `json:"gps,omitempty"`
	Frames   int            `json:"frames"`
	Duration time.Duration  `json:"duration"`
}

// AudioEvidence is the optional voice note for emotion analysis.
type AudioEvidence struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// EvidenceStore holds the media attached to the report currently being
// composed: at most 3 photos, one video and one audio clip. It tolerates
// authenticity results arriving out of capture order.
type EvidenceStore struct {
	mu      sync.Mutex
	photos  []*PhotoEvidence
	pending map[uuid.UUID]bool
	video   *VideoEvidence
	audio   *AudioEvidence
}

// NewEvidenceStore creates an empty store for one report draft.
func NewEvidenceStore() *EvidenceStore {
	return &EvidenceStore{pending: make(map[uuid.UUID]bool)}
}

// AddPhoto stores a capture and marks its analysis pending. Once the cap of
// 3 is reached the add is a silent no-op and false is returned.
func (e *EvidenceStore) AddPhoto(uri string, gps *models.GPSFix, capturedAt time.Time) (*PhotoEvidence, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.photos) >= MaxPhotos {
		return nil, false
	}
	photo := &PhotoEvidence{
		ID:         uuid.New(),
		URI:        uri,
		GPS:        gps,
		CapturedAt: capturedAt,
		Pending:    true,
	}
	e.photos = append(e.photos, photo)
	e.pending[photo.ID] = true
	cp := *photo
	return &cp, true
}

// ResolveAnalysis attributes an authenticity verdict to its originating
// entry. A result for an entry that was removed in the meantime is dropped.
func (e *EvidenceStore) ResolveAnalysis(id uuid.UUID, result models.ImageAnalysis) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, id)
	for _, photo := range e.photos {
		if photo.ID == id {
			photo.Pending = false
			res := result
			photo.Analysis = &res
			return
		}
	}
}

// RemovePhoto drops an entry. Any in-flight analysis for it keeps running
// and its late result will be discarded on arrival.
func (e *EvidenceStore) RemovePhoto(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, photo := range e.photos {
		if photo.ID == id {
			e.photos = append(e.photos[:i], e.photos[i+1:]...)
			delete(e.pending, id)
			return true
		}
	}
	return false
}

// Photos returns a snapshot of the current entries in capture order.
func (e *EvidenceStore) Photos() []*PhotoEvidence {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*PhotoEvidence, 0, len(e.photos))
	for _, photo := range e.photos {
		cp := *photo
		out = append(out, &cp)
	}
	return out
}

// PhotoCount returns the number of stored photos.
func (e *EvidenceStore) PhotoCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.photos)
}

// AllAnalysesDone gates report submission: it is false while any entry is
// still pending.
func (e *EvidenceStore) AllAnalysesDone() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, photo := range e.photos {
		if photo.Pending {
			return false
		}
	}
	return true
}

// Analyses returns the resolved verdicts in capture order.
func (e *EvidenceStore) Analyses() []models.ImageAnalysis {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.ImageAnalysis, 0, len(e.photos))
	for _, photo := range e.photos {
		if photo.Analysis != nil {
			out = append(out, *photo.Analysis)
		}
	}
	return out
}

// SetVideo attaches the recorded clip, replacing any previous one.
func (e *EvidenceStore) SetVideo(v *VideoEvidence) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.video = v
}

// Video returns the attached clip, or nil.
func (e *EvidenceStore) Video() *VideoEvidence {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.video == nil {
		return nil
	}
	cp := *e.video
	return &cp
}

// RemoveVideo discards the recorded clip.
func (e *EvidenceStore) RemoveVideo() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.video = nil
}

// SetAudio attaches the optional voice note.
func (e *EvidenceStore) SetAudio(a *AudioEvidence) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.audio = a
}

// Audio returns the attached voice note, or nil.
func (e *EvidenceStore) Audio() *AudioEvidence {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audio
}

// FirstGPS returns the first location fix found on the evidence: photos in
// capture order, then the video.
func (e *EvidenceStore) FirstGPS() *models.GPSFix {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, photo := range e.photos {
		if photo.GPS != nil {
			cp := *photo.GPS
			return &cp
		}
	}
	if e.video != nil && e.video.GPS != nil {
		cp := *e.video.GPS
		return &cp
	}
	return nil
}

// PhotoURIs returns the stored photo URIs in capture order.
func (e *EvidenceStore) PhotoURIs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.photos))
	for _, photo := range e.photos {
		out = append(out, photo.URI)
	}
	return out
}
