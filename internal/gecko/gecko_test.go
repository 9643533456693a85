package gecko

import (
	"errors"
	"testing"

	"stitch/internal/testutil"
)

func idx(i int) *int { return &i }

func ms(t float64) *float64 { return &t }

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "valid document",
			data: `{"meta": {"version": 29, "startTime": 1000, "interval": 1}, "processes": []}`,
		},
		{
			name: "not json",
			data: `{"meta":`,
			err:  ErrMalformedDocument,
		},
		{
			name: "missing meta",
			data: `{"processes": []}`,
			err:  ErrMalformedDocument,
		},
		{
			name: "missing processes",
			data: `{"meta": {"version": 29}}`,
			err:  ErrMalformedDocument,
		},
		{
			name: "version too old",
			data: `{"meta": {"version": 3}, "processes": []}`,
			err:  ErrUnsupportedVersion,
		},
		{
			name: "version too new",
			data: `{"meta": {"version": 99}, "processes": []}`,
			err:  ErrUnsupportedVersion,
		},
		{
			name: "dangling sample stack",
			data: `{
				"meta": {"version": 29},
				"processes": [{
					"name": "app", "pid": 1,
					"threads": [{"tid": 1, "name": "main", "samples": [{"time": 1, "stack": 7}], "markers": []}]
				}]
			}`,
			err: ErrDanglingIndexReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data))
			if !errors.Is(err, tt.err) {
				t.Fatalf("got error %v, want %v", err, tt.err)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &Document{
		Meta:       Meta{Version: 29, StartTime: ms(1000)},
		Strings:    []string{"root", "marker"},
		Stacks:     []Stack{{Frame: 0}, {Prefix: idx(0), Frame: 0}},
		Frames:     []Frame{{Func: 0}},
		Funcs:      []Func{{Name: 0}},
		Categories: []Category{{Name: "Other"}},
		Processes: []Process{{
			Name: "app",
			PID:  1,
			Threads: []Thread{{
				TID:     1,
				Name:    "main",
				Samples: []Sample{{Time: 1, Stack: 1}},
				Markers: []Marker{{
					Time:     2,
					Name:     1,
					Category: 0,
					Stack:    idx(0),
					Payload:  &MarkerPayload{Type: "tracing", Text: idx(1)},
				}},
			}},
		}},
	}
	snapshot := original.Clone()

	clone := original.Clone()
	clone.Strings = append(clone.Strings, "added")
	clone.Stacks[1].Prefix = nil
	*clone.Meta.StartTime = 9999
	clone.Processes[0].Threads[0].Samples[0].Time = 42
	*clone.Processes[0].Threads[0].Markers[0].Stack = 1
	clone.Processes[0].Threads[0].Markers[0].Payload.Type = "changed"
	*clone.Processes[0].Threads[0].Markers[0].Payload.Text = 0

	if diff := testutil.Diff(snapshot, original); diff != "" {
		t.Fatalf("mutating a clone reached the original\n%s", diff)
	}
}

func TestSortMarkersStable(t *testing.T) {
	d := &Document{
		Strings:    []string{"a", "b", "c", "d"},
		Categories: []Category{{Name: "Other"}},
		Processes: []Process{{
			Name: "app",
			Threads: []Thread{{
				Name: "main",
				Markers: []Marker{
					{Time: 5, Name: 0},
					{Time: 1, Name: 1},
					{Time: 5, Name: 2},
					{Time: 3, Name: 3},
				},
			}},
		}},
	}
	d.SortMarkersStable()

	want := []Marker{
		{Time: 1, Name: 1},
		{Time: 3, Name: 3},
		{Time: 5, Name: 0},
		{Time: 5, Name: 2},
	}
	if diff := testutil.Diff(want, d.Processes[0].Threads[0].Markers); diff != "" {
		t.Fatalf("markers mismatch\n%s", diff)
	}
}
