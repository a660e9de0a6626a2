package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"civicguard-be/models"
)

// MaxRecordingTime is the hard cap on one evidence clip. Recording stops
// and finalizes at this boundary without further user input.
const MaxRecordingTime = 30 * time.Second

var ErrRecorderStopped = errors.New("recorder already stopped")

// Recorder owns the camera for the duration of one video recording. The
// location fix and location caption are taken once at start and held
// constant for the overlay; the time-of-day line is recomputed per frame.
type Recorder struct {
	mu        sync.Mutex
	cam       CameraHandle
	gps       *models.GPSFix
	location  string
	startedAt time.Time
	now       func() time.Time
	frames    [][]byte
	stopped   bool
	result    *VideoEvidence
	timer     *time.Timer
	onStop    func(*VideoEvidence)
}

// StartRecording acquires the camera and begins a capped recording session.
// A single geolocation attempt is made up front; its failure does not block
// recording. onStop fires exactly once when the session finalizes, whether
// stopped explicitly or by the 30-second hard timer.
func StartRecording(ctx context.Context, provider Provider, village, panchayat, district string, onStop func(*VideoEvidence)) (*Recorder, string, error) {
	cam, err := provider.AcquireCamera(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("acquire camera: %w", err)
	}

	warning := ""
	var gps *models.GPSFix
	geoCtx, cancel := context.WithTimeout(ctx, CaptureGeoOptions.Timeout)
	fix, geoErr := provider.CurrentPosition(geoCtx, CaptureGeoOptions)
	cancel()
	if geoErr != nil {
		warning = GeoErrorMessage(geoErr)
	} else {
		captured := fix
		gps = &captured
	}

	r := &Recorder{
		cam:      cam,
		gps:      gps,
		location: CaptionLocation(village, panchayat, district),
		now:      time.Now,
		onStop:   onStop,
	}
	r.startedAt = r.now()
	r.timer = time.AfterFunc(MaxRecordingTime, func() {
		logrus.Debug("recording hit the 30s cap, finalizing")
		r.Stop()
	})
	return r, warning, nil
}

// SetClock overrides the recorder's time source before frames are captured,
// for tests. It also resets the start instant.
func (r *Recorder) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
	r.startedAt = now()
}

// CaptureFrame grabs one camera frame, burns the overlay and appends it to
// the clip. Invoked once per display tick while recording; if the elapsed
// time has passed the cap the session finalizes instead.
func (r *Recorder) CaptureFrame() error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return ErrRecorderStopped
	}
	if r.now().Sub(r.startedAt) >= MaxRecordingTime {
		r.mu.Unlock()
		r.Stop()
		return nil
	}
	cam := r.cam
	captions := Captions{
		Location:  r.location,
		GPS:       CaptionGPS(r.gps),
		Timestamp: CaptionTimestamp(r.now()),
	}
	r.mu.Unlock()

	frame, err := cam.Frame()
	if err != nil {
		return fmt.Errorf("read camera frame: %w", err)
	}
	composited, err := Burn(frame, captions)
	if err != nil {
		return err
	}
	encoded, err := EncodeJPEG(composited)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if !r.stopped {
		r.frames = append(r.frames, encoded)
	}
	r.mu.Unlock()
	return nil
}

// Stop finalizes the clip, releases the camera and fires onStop. It is
// idempotent; the first call wins.
func (r *Recorder) Stop() *VideoEvidence {
	r.mu.Lock()
	if r.stopped {
		result := r.result
		r.mu.Unlock()
		return result
	}
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
	}
	duration := r.now().Sub(r.startedAt)
	if duration > MaxRecordingTime {
		duration = MaxRecordingTime
	}
	r.result = &VideoEvidence{
		URI:      "mem://video/" + uuid.NewString() + ".mjpeg",
		GPS:      r.gps,
		Frames:   len(r.frames),
		Duration: duration,
	}
	cam := r.cam
	onStop := r.onStop
	result := r.result
	r.mu.Unlock()

	cam.Release()
	if onStop != nil {
		onStop(result)
	}
	return result
}

// Recording reports whether the session is still live.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.stopped
}

// Elapsed returns the recording time so far, capped at the maximum.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	elapsed := r.now().Sub(r.startedAt)
	if elapsed > MaxRecordingTime {
		return MaxRecordingTime
	}
	return elapsed
}
