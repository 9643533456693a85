// Package merge combines a sampled-stack capture and a marker capture of the
// same application startup into one interchange-format document. Processes
// and threads are paired by name, marker timestamps are shifted onto the
// sample capture's timeline, and every table reference a marker carries is
// rewritten into the unified interning tables.
package merge

import (
	"github.com/rs/zerolog/log"

	"stitch/internal/gecko"
)

type Options struct {
	// ProcessPrefix retains only sample-capture processes whose name starts
	// with this prefix. Empty retains all.
	ProcessPrefix string
}

// Documents merges the marker capture into the sample capture and returns a
// freshly-built document. Both inputs are treated as read-only. Any error is
// terminal: no partially-merged document is ever returned.
func Documents(sampleDoc, markerDoc *gecko.Document, opts Options) (*gecko.Document, error) {
	out := sampleDoc.Clone()

	pairs, err := matchProcesses(out, markerDoc, opts.ProcessPrefix)
	if err != nil {
		return nil, err
	}
	offset, err := clockOffset(sampleDoc, markerDoc)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Float64("offset_ms", offset).
		Int("processes", len(pairs)).
		Msg("aligned marker capture")

	r := newRemapper(markerDoc, out)
	injected := 0
	for _, pair := range pairs {
		if pair.marker == nil {
			continue
		}
		for ti := range pair.marker.Threads {
			mt := &pair.marker.Threads[ti]
			if len(mt.Markers) == 0 {
				continue
			}
			dst := matchThread(pair.sample, mt.Name)
			if dst == nil {
				log.Warn().
					Str("process", pair.sample.Name).
					Str("thread", mt.Name).
					Int("markers", len(mt.Markers)).
					Msg("sample process has no threads, dropping markers")
				continue
			}
			if err := injectMarkers(dst, mt.Markers, r, offset); err != nil {
				return nil, err
			}
			injected += len(mt.Markers)
		}
	}
	log.Debug().Int("markers", injected).Msg("injected markers")
	return out, nil
}
