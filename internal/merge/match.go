package merge

import (
	"fmt"
	"strings"

	"stitch/internal/gecko"
)

type processPair struct {
	sample *gecko.Process
	// marker is nil when the marker capture has no process of this name.
	// The pair is still retained, with an empty marker contribution.
	marker *gecko.Process
}

// matchProcesses filters out's processes to those whose name starts with
// prefix (an empty prefix retains all), then pairs each retained process
// with the marker-document process of the exact same name. Marker-document
// processes that match nothing are left unpaired and their markers never
// reach the output: the marker capture is assumed to be a superset covering
// processes outside the filter.
//
// out is the document under construction and is filtered in place; markerDoc
// is read-only.
func matchProcesses(out, markerDoc *gecko.Document, prefix string) ([]processPair, error) {
	retained := out.Processes[:0]
	for _, p := range out.Processes {
		if prefix == "" || strings.HasPrefix(p.Name, prefix) {
			retained = append(retained, p)
		}
	}
	if len(retained) == 0 {
		return nil, fmt.Errorf("%w: prefix %q retained none of %d sample processes",
			ErrNoMatchingProcess, prefix, len(out.Processes))
	}
	out.Processes = retained

	byName := make(map[string][]*gecko.Process, len(markerDoc.Processes))
	for i := range markerDoc.Processes {
		p := &markerDoc.Processes[i]
		byName[p.Name] = append(byName[p.Name], p)
	}

	pairs := make([]processPair, 0, len(out.Processes))
	for i := range out.Processes {
		sp := &out.Processes[i]
		pair := processPair{sample: sp}
		switch candidates := byName[sp.Name]; len(candidates) {
		case 0:
		case 1:
			pair.marker = candidates[0]
		default:
			return nil, fmt.Errorf("%w: %d marker processes named %q",
				ErrAmbiguousProcessMatch, len(candidates), sp.Name)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// matchThread finds the sample-capture thread a marker-capture thread's
// markers belong on: the thread with the exact same name, or the process's
// first (main) thread as the accepted fallback when the two captures do not
// enumerate threads identically. Returns nil only for a process with no
// threads at all.
func matchThread(p *gecko.Process, name string) *gecko.Thread {
	for i := range p.Threads {
		if p.Threads[i].Name == name {
			return &p.Threads[i]
		}
	}
	if len(p.Threads) == 0 {
		return nil
	}
	return &p.Threads[0]
}
