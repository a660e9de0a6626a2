package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"civicguard-be/models"
)

// Captions is the text set burned onto a captured frame.
type Captions struct {
	Location  string
	GPS       string
	Timestamp string
}

// CaptionLocation joins the administrative names bottom-up, omitting empty
// segments.
func CaptionLocation(village, panchayat, district string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{village, panchayat, district} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// CaptionGPS formats a fix for the overlay, or the no-signal line when the
// capture proceeded without location data.
func CaptionGPS(fix *models.GPSFix) string {
	if fix == nil {
		return "GPS Signal not found"
	}
	return fmt.Sprintf("Lat: %.6f, Lng: %.6f (Acc: %.1fm)", fix.Lat, fix.Lng, fix.Accuracy)
}

// CaptionTimestamp renders the localized timestamp line.
func CaptionTimestamp(t time.Time) string {
	return t.Format("2 Jan 2006, 3:04:05 PM")
}

func (c Captions) lines() []string {
	lines := make([]string, 0, 3)
	if c.Location != "" {
		lines = append(lines, c.Location)
	}
	lines = append(lines, c.GPS, c.Timestamp)
	return lines
}

var (
	overlayFontOnce sync.Once
	overlayFont     *opentype.Font
	overlayFontErr  error
)

func loadOverlayFont() (*opentype.Font, error) {
	overlayFontOnce.Do(func() {
		overlayFont, overlayFontErr = opentype.Parse(goregular.TTF)
	})
	return overlayFont, overlayFontErr
}

// Burn composites the caption box onto a copy of the frame and returns it.
// It is a pure function of (frame, captions); the input frame is untouched
// and no I/O happens here. The font scales with frame width (1/50th, 14px
// floor) and the semi-transparent box hugs the bottom-right corner, sized
// to the longest line.
func Burn(frame image.Image, c Captions) (*image.RGBA, error) {
	bounds := frame.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, frame, bounds.Min, draw.Src)

	fontSize := bounds.Dx() / 50
	if fontSize < 14 {
		fontSize = 14
	}
	padding := fontSize / 2
	lineHeight := fontSize * 6 / 5

	parsed, err := loadOverlayFont()
	if err != nil {
		return nil, fmt.Errorf("load overlay font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build overlay face: %w", err)
	}
	defer face.Close()

	lines := c.lines()
	measurer := &font.Drawer{Face: face}
	textWidth := 0
	for _, line := range lines {
		if w := measurer.MeasureString(line).Ceil(); w > textWidth {
			textWidth = w
		}
	}

	boxX := bounds.Max.X - textWidth - padding*3
	boxY := bounds.Max.Y - lineHeight*len(lines) - padding*3
	boxW := textWidth + padding*2
	boxH := lineHeight*len(lines) + padding*2

	boxRect := image.Rect(boxX, boxY, boxX+boxW, boxY+boxH).Intersect(bounds)
	draw.Draw(dst, boxRect, image.NewUniform(color.NRGBA{0, 0, 0, 153}), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, line := range lines {
		baseline := boxY + padding + lineHeight*(i+1) - lineHeight/4
		drawer.Dot = fixed.P(boxX+padding, baseline)
		drawer.DrawString(line)
	}
	return dst, nil
}

// EncodeJPEG serializes a composited frame.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
