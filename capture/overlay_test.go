package capture

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicguard-be/models"
)

func TestCaptionLocation(t *testing.T) {
	tests := []struct {
		name                         string
		village, panchayat, district string
		expected                     string
	}{
		{"all parts", "Arasampalayam", "Pollachi", "Coimbatore", "Arasampalayam, Pollachi, Coimbatore"},
		{"missing village", "", "Pollachi", "Coimbatore", "Pollachi, Coimbatore"},
		{"district only", "", "", "Coimbatore", "Coimbatore"},
		{"nothing", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CaptionLocation(tt.village, tt.panchayat, tt.district))
		})
	}
}

func TestCaptionGPS(t *testing.T) {
	fix := &models.GPSFix{Lat: 10.7312, Lng: 77.0105, Accuracy: 12.5}
	assert.Equal(t, "Lat: 10.731200, Lng: 77.010500 (Acc: 12.5m)", CaptionGPS(fix))
	assert.Equal(t, "GPS Signal not found", CaptionGPS(nil))
}

func TestCaptionTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "10 Mar 2026, 3:04:05 PM", CaptionTimestamp(ts))
}

func TestBurnLeavesInputUntouched(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x++ {
		for y := 0; y < 480; y++ {
			frame.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	before := append([]uint8(nil), frame.Pix...)

	out, err := Burn(frame, Captions{
		Location:  "Arasampalayam, Pollachi, Coimbatore",
		GPS:       CaptionGPS(&models.GPSFix{Lat: 10.7312, Lng: 77.0105, Accuracy: 12.5}),
		Timestamp: "10 Mar 2026, 3:04:05 PM",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, before, []uint8(frame.Pix))
	assert.Equal(t, frame.Bounds(), out.Bounds())

	// The caption box darkens the bottom-right corner.
	changed := false
	for x := 400; x < 640 && !changed; x++ {
		for y := 380; y < 480; y++ {
			if out.RGBAAt(x, y) != frame.RGBAAt(x, y) {
				changed = true
				break
			}
		}
	}
	assert.True(t, changed, "expected overlay pixels in the bottom-right corner")
}

func TestBurnSmallFrameUsesFontFloor(t *testing.T) {
	// A 320px frame would scale to 6px; the floor keeps text legible.
	frame := image.NewRGBA(image.Rect(0, 0, 320, 240))
	out, err := Burn(frame, Captions{GPS: "GPS Signal not found", Timestamp: "10 Mar 2026, 3:04:05 PM"})
	require.NoError(t, err)
	assert.Equal(t, frame.Bounds(), out.Bounds())
}

func TestEncodeJPEG(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 32, 32))
	data, err := EncodeJPEG(frame)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// JPEG SOI marker.
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
}
