// Package track reconstructs a drivable centerline from unordered
// left/right boundary cone positions.
package track

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MarkerClass identifies what a boundary marker denotes on the track.
type MarkerClass string

const (
	LeftBoundary    MarkerClass = "left"     // blue cone, left edge
	RightBoundary   MarkerClass = "right"    // yellow cone, right edge
	StartPosition   MarkerClass = "start"    // car start marker
	SectionBoundary MarkerClass = "section"  // orange cone, sector split
)

// BoundaryMarker is a single cone placed on the track edge.
type BoundaryMarker struct {
	ID    string      `json:"id"`
	Class MarkerClass `json:"class"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Z     float64     `json:"z"`
}

// classifyTag maps a raw record tag to a MarkerClass. Matching is
// substring-based and case-sensitive, mirroring the cone colour names
// used by common track file exports.
func classifyTag(tag string) (MarkerClass, bool) {
	switch {
	case strings.Contains(tag, "blue"):
		return LeftBoundary, true
	case strings.Contains(tag, "yellow"):
		return RightBoundary, true
	case strings.Contains(tag, "car_start"):
		return StartPosition, true
	case strings.Contains(tag, "orange"):
		return SectionBoundary, true
	}
	return "", false
}

// ParseMarkers converts raw delimited track text into boundary markers.
// Each line is `tag,x,y[,...]`; trailing fields are ignored. Lines with
// fewer than three fields, an unrecognised tag, or non-numeric x/y are
// skipped silently: malformed records are a data-quality concern for the
// upstream file, not a parse failure.
func ParseMarkers(text string) []BoundaryMarker {
	var markers []BoundaryMarker
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) < 3 {
			continue
		}
		class, ok := classifyTag(fields[0])
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			continue
		}
		markers = append(markers, BoundaryMarker{
			ID:    uuid.NewString(),
			Class: class,
			X:     x,
			Y:     y,
		})
	}
	return markers
}
