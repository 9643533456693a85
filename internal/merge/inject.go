package merge

import "stitch/internal/gecko"

// injectMarkers appends the marker-capture thread's markers to dst after
// dst's own markers, preserving their original relative order. Each marker is
// rewritten through the remapper and shifted onto the sample capture's
// timeline. No sorting happens here; the output writer owns that.
func injectMarkers(dst *gecko.Thread, markers []gecko.Marker, r *remapper, offset float64) error {
	for _, m := range markers {
		nm, err := remapMarker(m, r)
		if err != nil {
			return err
		}
		nm.Time = m.Time + offset
		dst.Markers = append(dst.Markers, nm)
	}
	return nil
}

// remapMarker returns a copy of m with every table reference translated into
// the unified tables. The source marker is never modified.
func remapMarker(m gecko.Marker, r *remapper) (gecko.Marker, error) {
	name, err := r.String(m.Name)
	if err != nil {
		return gecko.Marker{}, err
	}
	m.Name = name
	category, err := r.Category(m.Category)
	if err != nil {
		return gecko.Marker{}, err
	}
	m.Category = category
	if m.Stack != nil {
		stack, err := r.Stack(*m.Stack)
		if err != nil {
			return gecko.Marker{}, err
		}
		m.Stack = &stack
	}
	if m.Payload != nil {
		p := *m.Payload
		if p.Text != nil {
			text, err := r.String(*p.Text)
			if err != nil {
				return gecko.Marker{}, err
			}
			p.Text = &text
		}
		if p.Stack != nil {
			stack, err := r.Stack(*p.Stack)
			if err != nil {
				return gecko.Marker{}, err
			}
			p.Stack = &stack
		}
		m.Payload = &p
	}
	return m, nil
}
