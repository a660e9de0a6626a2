package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"civicguard-be/models"
)

// Failure modes surfaced by device acquisition. Each maps to a distinct
// user-facing message; capture proceeds in degraded mode where the missing
// capability is not strictly required.
var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrDeviceUnavailable   = errors.New("device unavailable")
	ErrUnsupported         = errors.New("capability not supported")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrPositionTimeout     = errors.New("position request timed out")
)

// GeoOptions controls a single-shot geolocation request.
type GeoOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
}

// Geolocation request profiles. Live capture asks for a precise fix and can
// wait; the final submit fallback settles for a coarse one quickly.
var (
	CaptureGeoOptions  = GeoOptions{HighAccuracy: true, Timeout: 10 * time.Second}
	FallbackGeoOptions = GeoOptions{HighAccuracy: false, Timeout: 8 * time.Second}
)

// CameraHandle is a continuous video frame source. Whoever acquires it must
// release it on every exit path, or the hardware capture light stays on.
type CameraHandle interface {
	Frame() (image.Image, error)
	Release()
}

// AudioHandle is an open microphone recording session.
type AudioHandle interface {
	// Read returns the recorded clip so far as encoded audio bytes.
	Read() ([]byte, string, error)
	Release()
}

// Provider abstracts the device capabilities the capture flows depend on,
// so tests can inject deterministic frames, coordinates and failures.
type Provider interface {
	AcquireCamera(ctx context.Context) (CameraHandle, error)
	AcquireMicrophone(ctx context.Context) (AudioHandle, error)
	CurrentPosition(ctx context.Context, opts GeoOptions) (models.GPSFix, error)
}

// GeoErrorMessage translates a geolocation failure into the message shown
// alongside the capture that proceeded without location data.
func GeoErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "GPS permission denied. Please enable location access for this site. The capture proceeded without location data."
	case errors.Is(err, ErrPositionUnavailable):
		return "Your location is currently unavailable, possibly due to poor signal. The capture proceeded without location data."
	case errors.Is(err, ErrPositionTimeout):
		return "Getting your location timed out. Try moving to an open area with a clear view of the sky. The capture proceeded without location data."
	default:
		return "Could not get GPS location. The capture proceeded without location data."
	}
}

// FakeProvider is the deterministic device provider used in tests and as
// the bundled simulated backend when no hardware bridge is configured.
type FakeProvider struct {
	mu sync.Mutex

	FrameWidth  int
	FrameHeight int
	Fix         models.GPSFix

	CameraErr error
	MicErr    error
	GeoErr    error

	openCameras int
	openMics    int
}

// NewFakeProvider returns a provider producing 640x480 frames and a fix in
// the Coimbatore area.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		FrameWidth:  640,
		FrameHeight: 480,
		Fix:         models.GPSFix{Lat: 10.7312, Lng: 77.0105, Accuracy: 12.5},
	}
}

type fakeCamera struct {
	provider *FakeProvider
	released bool
	mu       sync.Mutex
	frames   int
}

func (c *fakeCamera) Frame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil, ErrDeviceUnavailable
	}
	c.frames++
	return image.NewRGBA(image.Rect(0, 0, c.provider.FrameWidth, c.provider.FrameHeight)), nil
}

func (c *fakeCamera) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	c.provider.mu.Lock()
	c.provider.openCameras--
	c.provider.mu.Unlock()
}

type fakeMic struct {
	provider *FakeProvider
	released bool
}

func (m *fakeMic) Read() ([]byte, string, error) {
	if m.released {
		return nil, "", ErrDeviceUnavailable
	}
	return []byte("simulated-audio-clip"), "audio/webm", nil
}

func (m *fakeMic) Release() {
	if m.released {
		return
	}
	m.released = true
	m.provider.mu.Lock()
	m.provider.openMics--
	m.provider.mu.Unlock()
}

func (p *FakeProvider) AcquireCamera(_ context.Context) (CameraHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CameraErr != nil {
		return nil, p.CameraErr
	}
	p.openCameras++
	return &fakeCamera{provider: p}, nil
}

func (p *FakeProvider) AcquireMicrophone(_ context.Context) (AudioHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.MicErr != nil {
		return nil, p.MicErr
	}
	p.openMics++
	return &fakeMic{provider: p}, nil
}

func (p *FakeProvider) CurrentPosition(_ context.Context, _ GeoOptions) (models.GPSFix, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.GeoErr != nil {
		return models.GPSFix{}, p.GeoErr
	}
	return p.Fix, nil
}

// OpenHandles reports how many camera and microphone handles are still
// held, so tests can assert that every exit path released its hardware.
func (p *FakeProvider) OpenHandles() (cameras, mics int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.openCameras, p.openMics
}

var (
	_ Provider     = (*FakeProvider)(nil)
	_ CameraHandle = (*fakeCamera)(nil)
	_ AudioHandle  = (*fakeMic)(nil)
)
