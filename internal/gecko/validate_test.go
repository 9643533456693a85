package gecko

import (
	"errors"
	"strings"
	"testing"
)

// validDocument returns a document whose every index resolves; tests mutate
// one reference at a time.
func validDocument() *Document {
	return &Document{
		Meta:       Meta{Version: 29, StartTime: ms(0)},
		Strings:    []string{"root", "work", "file.cpp"},
		Stacks:     []Stack{{Frame: 0}, {Prefix: idx(0), Frame: 1}},
		Frames:     []Frame{{Func: 0}, {Func: 1}},
		Funcs:      []Func{{Name: 0, IsNative: true}, {Name: 1, File: idx(2)}},
		Categories: []Category{{Name: "Other"}},
		Processes: []Process{{
			Name: "app",
			PID:  1,
			Threads: []Thread{{
				TID:     1,
				Name:    "main",
				Samples: []Sample{{Time: 1, Stack: 1}},
				Markers: []Marker{{
					Time:     1,
					Name:     1,
					Category: 0,
					Stack:    idx(1),
					Payload:  &MarkerPayload{Type: "tracing", Text: idx(0), Stack: idx(0)},
				}},
			}},
		}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
		within string
	}{
		{
			name:   "valid",
			mutate: func(*Document) {},
		},
		{
			name:   "stack frame out of range",
			mutate: func(d *Document) { d.Stacks[0].Frame = 5 },
			within: "frame",
		},
		{
			name:   "stack prefix not before node",
			mutate: func(d *Document) { d.Stacks[1].Prefix = idx(1) },
			within: "stack",
		},
		{
			name:   "frame func out of range",
			mutate: func(d *Document) { d.Frames[1].Func = -1 },
			within: "func",
		},
		{
			name:   "func name out of range",
			mutate: func(d *Document) { d.Funcs[0].Name = 3 },
			within: "string",
		},
		{
			name:   "func file out of range",
			mutate: func(d *Document) { d.Funcs[1].File = idx(9) },
			within: "string",
		},
		{
			name:   "sample stack out of range",
			mutate: func(d *Document) { d.Processes[0].Threads[0].Samples[0].Stack = 2 },
			within: "stack",
		},
		{
			name:   "marker name out of range",
			mutate: func(d *Document) { d.Processes[0].Threads[0].Markers[0].Name = 3 },
			within: "string",
		},
		{
			name:   "marker category out of range",
			mutate: func(d *Document) { d.Processes[0].Threads[0].Markers[0].Category = 1 },
			within: "category",
		},
		{
			name:   "marker stack out of range",
			mutate: func(d *Document) { d.Processes[0].Threads[0].Markers[0].Stack = idx(-1) },
			within: "stack",
		},
		{
			name:   "payload text out of range",
			mutate: func(d *Document) { d.Processes[0].Threads[0].Markers[0].Payload.Text = idx(3) },
			within: "string",
		},
		{
			name:   "payload stack out of range",
			mutate: func(d *Document) { d.Processes[0].Threads[0].Markers[0].Payload.Stack = idx(2) },
			within: "stack",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDocument()
			tt.mutate(d)
			err := d.Validate()
			if tt.within == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrDanglingIndexReference) {
				t.Fatalf("got error %v, want ErrDanglingIndexReference", err)
			}
			if !strings.Contains(err.Error(), tt.within+" index") {
				t.Fatalf("error %q does not name the %s table", err, tt.within)
			}
		})
	}
}
