package capture

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderStopBuildsClip(t *testing.T) {
	provider := NewFakeProvider()
	var finished *VideoEvidence
	rec, _, err := StartRecording(context.Background(), provider, "Arasampalayam", "Pollachi", "Coimbatore", func(v *VideoEvidence) {
		finished = v
	})
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	elapsed := time.Duration(0)
	rec.SetClock(func() time.Time { return base.Add(elapsed) })

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.CaptureFrame())
		elapsed += time.Second
	}

	v := rec.Stop()
	require.NotNil(t, v)
	assert.Equal(t, 3, v.Frames)
	assert.Equal(t, 3*time.Second, v.Duration)
	assert.True(t, strings.HasPrefix(v.URI, "mem://video/"))
	require.NotNil(t, v.GPS)
	assert.InDelta(t, 10.7312, v.GPS.Lat, 0.0001)

	// onStop fired with the same clip.
	assert.Equal(t, v, finished)

	// Camera released on stop.
	cams, _ := provider.OpenHandles()
	assert.Equal(t, 0, cams)
}

func TestRecorderHardCapFinalizes(t *testing.T) {
	provider := NewFakeProvider()
	stops := 0
	rec, _, err := StartRecording(context.Background(), provider, "", "", "Coimbatore", func(*VideoEvidence) {
		stops++
	})
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	elapsed := time.Duration(0)
	rec.SetClock(func() time.Time { return base.Add(elapsed) })

	require.NoError(t, rec.CaptureFrame())
	elapsed = MaxRecordingTime + 5*time.Second

	// The frame past the cap finalizes instead of recording.
	require.NoError(t, rec.CaptureFrame())
	assert.False(t, rec.Recording())

	v := rec.Stop()
	require.NotNil(t, v)
	assert.Equal(t, 1, v.Frames)
	assert.Equal(t, MaxRecordingTime, v.Duration)
	assert.Equal(t, 1, stops, "onStop must fire exactly once")

	assert.ErrorIs(t, rec.CaptureFrame(), ErrRecorderStopped)
}

func TestRecorderElapsedCapped(t *testing.T) {
	provider := NewFakeProvider()
	rec, _, err := StartRecording(context.Background(), provider, "", "", "", nil)
	require.NoError(t, err)
	defer rec.Stop()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	elapsed := time.Duration(0)
	rec.SetClock(func() time.Time { return base.Add(elapsed) })

	elapsed = 10 * time.Second
	assert.Equal(t, 10*time.Second, rec.Elapsed())

	elapsed = 2 * time.Minute
	assert.Equal(t, MaxRecordingTime, rec.Elapsed())
}

func TestRecorderGPSWarning(t *testing.T) {
	provider := NewFakeProvider()
	provider.GeoErr = ErrPermissionDenied

	rec, warning, err := StartRecording(context.Background(), provider, "", "", "", nil)
	require.NoError(t, err)
	assert.Contains(t, warning, "GPS permission denied")

	v := rec.Stop()
	require.NotNil(t, v)
	assert.Nil(t, v.GPS)
}

func TestTakePhotoReleasesCamera(t *testing.T) {
	provider := NewFakeProvider()
	now := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	result, err := TakePhoto(context.Background(), provider, "Arasampalayam", "Pollachi", "Coimbatore", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.URI, "data:image/jpeg;base64,"))
	assert.Empty(t, result.GPSWarning)
	require.NotNil(t, result.GPS)

	cams, _ := provider.OpenHandles()
	assert.Equal(t, 0, cams)
}

func TestTakePhotoWithoutGPS(t *testing.T) {
	tests := []struct {
		name    string
		geoErr  error
		message string
	}{
		{"denied", ErrPermissionDenied, "GPS permission denied"},
		{"unavailable", ErrPositionUnavailable, "currently unavailable"},
		{"timeout", ErrPositionTimeout, "timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewFakeProvider()
			provider.GeoErr = tt.geoErr
			now := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

			result, err := TakePhoto(context.Background(), provider, "", "", "Coimbatore", now)
			require.NoError(t, err)
			assert.Nil(t, result.GPS)
			assert.Contains(t, result.GPSWarning, tt.message)

			cams, _ := provider.OpenHandles()
			assert.Equal(t, 0, cams)
		})
	}
}
