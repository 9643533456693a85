package gecko

import (
	"sort"

	"github.com/goccy/go-json"
)

// Supported interchange format versions. Documents outside this range are
// rejected at load time with ErrUnsupportedVersion.
const (
	SupportedVersionMin = 25
	SupportedVersionMax = 40
)

type (
	// Document is the top-level container of the profiling interchange
	// format. It owns all processes transitively and the interning tables
	// shared by every thread in the document.
	Document struct {
		Meta       Meta       `json:"meta"`
		Processes  []Process  `json:"processes"`
		Strings    []string   `json:"stringTable"`
		Stacks     []Stack    `json:"stackTable"`
		Frames     []Frame    `json:"frameTable"`
		Funcs      []Func     `json:"funcTable"`
		Categories []Category `json:"categoryTable"`
	}

	Meta struct {
		Version int `json:"version"`
		// StartTime is in milliseconds since the epoch. It is a pointer so
		// that a capture which failed to record it is distinguishable from
		// one that started exactly at 0.
		StartTime *float64 `json:"startTime"`
		Interval  float64  `json:"interval"`
		Product   string   `json:"product,omitempty"`
	}

	// Process pids are scoped to one capture session. Two documents may
	// assign different pids to the same logical process, so cross-document
	// identity goes through the process name, never the pid.
	Process struct {
		Name    string   `json:"name"`
		PID     int64    `json:"pid"`
		Threads []Thread `json:"threads"`
	}

	Thread struct {
		TID     int64    `json:"tid"`
		Name    string   `json:"name"`
		Samples []Sample `json:"samples"`
		Markers []Marker `json:"markers"`
	}

	Sample struct {
		Time   float64 `json:"time"`
		Stack  int     `json:"stack"`
		Weight float64 `json:"weight,omitempty"`
	}

	Marker struct {
		Time     float64        `json:"time"`
		Name     int            `json:"name"`
		Category int            `json:"category"`
		Stack    *int           `json:"stack,omitempty"`
		Payload  *MarkerPayload `json:"data,omitempty"`
	}

	MarkerPayload struct {
		Type  string          `json:"type,omitempty"`
		Text  *int            `json:"text,omitempty"`
		Stack *int            `json:"stack,omitempty"`
		Extra json.RawMessage `json:"extra,omitempty"`
	}

	// Stack is a node of the flat, deduplicated call-path tree. Prefix is
	// the parent node, nil for a root.
	Stack struct {
		Prefix *int `json:"prefix"`
		Frame  int  `json:"frame"`
	}

	Frame struct {
		Func int    `json:"func"`
		Line uint32 `json:"line,omitempty"`
		Col  uint32 `json:"col,omitempty"`
	}

	Func struct {
		Name     int  `json:"name"`
		IsNative bool `json:"isNative"`
		File     *int `json:"file,omitempty"`
	}

	Category struct {
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
	}
)

// Clone returns a deep copy of the document. The merge pipeline treats both
// source documents as read-only and grows a clone instead.
func (d *Document) Clone() *Document {
	out := &Document{
		Meta:       d.Meta,
		Processes:  make([]Process, len(d.Processes)),
		Strings:    append([]string(nil), d.Strings...),
		Stacks:     append([]Stack(nil), d.Stacks...),
		Frames:     append([]Frame(nil), d.Frames...),
		Funcs:      append([]Func(nil), d.Funcs...),
		Categories: append([]Category(nil), d.Categories...),
	}
	if d.Meta.StartTime != nil {
		st := *d.Meta.StartTime
		out.Meta.StartTime = &st
	}
	for i := range d.Stacks {
		out.Stacks[i].Prefix = cloneIndex(d.Stacks[i].Prefix)
	}
	for i := range d.Funcs {
		out.Funcs[i].File = cloneIndex(d.Funcs[i].File)
	}
	for i, p := range d.Processes {
		np := Process{Name: p.Name, PID: p.PID, Threads: make([]Thread, len(p.Threads))}
		for j, t := range p.Threads {
			nt := Thread{
				TID:     t.TID,
				Name:    t.Name,
				Samples: append([]Sample(nil), t.Samples...),
				Markers: make([]Marker, len(t.Markers)),
			}
			for k, m := range t.Markers {
				nt.Markers[k] = m.clone()
			}
			np.Threads[j] = nt
		}
		out.Processes[i] = np
	}
	return out
}

func (m Marker) clone() Marker {
	m.Stack = cloneIndex(m.Stack)
	if m.Payload != nil {
		p := *m.Payload
		p.Text = cloneIndex(p.Text)
		p.Stack = cloneIndex(p.Stack)
		p.Extra = append(json.RawMessage(nil), p.Extra...)
		m.Payload = &p
	}
	return m
}

func cloneIndex(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// SortMarkersStable orders every thread's marker list by timestamp. The sort
// is stable: markers with equal timestamps keep their relative order, which
// after a merge is the order they were injected in.
func (d *Document) SortMarkersStable() {
	for i := range d.Processes {
		for j := range d.Processes[i].Threads {
			markers := d.Processes[i].Threads[j].Markers
			sort.SliceStable(markers, func(a, b int) bool {
				return markers[a].Time < markers[b].Time
			})
		}
	}
}
