package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"civicguard-be/models"
)

// PhotoResult is one completed still capture, before it enters the
// evidence store.
type PhotoResult struct {
	URI        string
	GPS        *models.GPSFix
	CapturedAt time.Time
	// GPSWarning carries the distinct user-facing message when the
	// capture proceeded without location data.
	GPSWarning string
}

// TakePhoto runs the still-capture pipeline: acquire the camera, grab one
// frame, take a single high-accuracy geolocation fix (10s budget), burn the
// overlay and encode the result. The camera is released on every exit path.
// Geolocation failure does not block the capture; the photo is returned
// without GPS together with a failure-specific warning.
func TakePhoto(ctx context.Context, provider Provider, village, panchayat, district string, now func() time.Time) (*PhotoResult, error) {
	cam, err := provider.AcquireCamera(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire camera: %w", err)
	}
	defer cam.Release()

	frame, err := cam.Frame()
	if err != nil {
		return nil, fmt.Errorf("read camera frame: %w", err)
	}

	capturedAt := now()
	result := &PhotoResult{CapturedAt: capturedAt}

	geoCtx, cancel := context.WithTimeout(ctx, CaptureGeoOptions.Timeout)
	defer cancel()
	fix, geoErr := provider.CurrentPosition(geoCtx, CaptureGeoOptions)
	if geoErr != nil {
		result.GPSWarning = GeoErrorMessage(geoErr)
	} else {
		captured := fix
		result.GPS = &captured
	}

	composited, err := Burn(frame, Captions{
		Location:  CaptionLocation(village, panchayat, district),
		GPS:       CaptionGPS(result.GPS),
		Timestamp: CaptionTimestamp(capturedAt),
	})
	if err != nil {
		return nil, err
	}
	encoded, err := EncodeJPEG(composited)
	if err != nil {
		return nil, err
	}
	result.URI = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded)
	return result, nil
}
