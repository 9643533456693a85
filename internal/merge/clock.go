package merge

import (
	"fmt"
	"math"

	"stitch/internal/gecko"
)

// clockOffset computes the shift, in milliseconds, that places marker-capture
// timestamps on the sample capture's timeline:
//
//	aligned = original + offset
//	offset  = markerDoc.meta.startTime - sampleDoc.meta.startTime
func clockOffset(sampleDoc, markerDoc *gecko.Document) (float64, error) {
	sampleStart, err := startTime(sampleDoc, "sample")
	if err != nil {
		return 0, err
	}
	markerStart, err := startTime(markerDoc, "marker")
	if err != nil {
		return 0, err
	}
	return markerStart - sampleStart, nil
}

func startTime(d *gecko.Document, which string) (float64, error) {
	if d.Meta.StartTime == nil {
		return 0, fmt.Errorf("%w: %s document has no meta.startTime", ErrMissingClockReference, which)
	}
	st := *d.Meta.StartTime
	if math.IsNaN(st) || math.IsInf(st, 0) {
		return 0, fmt.Errorf("%w: %s document meta.startTime is %v", ErrMissingClockReference, which, st)
	}
	return st, nil
}
