package gecko

import "fmt"

// TableKind names one of the document's interning tables in error messages.
type TableKind string

const (
	TableString   TableKind = "string"
	TableStack    TableKind = "stack"
	TableFrame    TableKind = "frame"
	TableFunc     TableKind = "func"
	TableCategory TableKind = "category"
)

// Validate checks that every index reference in the document resolves to an
// entry of the table it points into. Returns an error wrapping
// ErrDanglingIndexReference naming the table kind, the offending index and
// where it was referenced from.
func (d *Document) Validate() error {
	for i, s := range d.Stacks {
		if err := d.checkIndex(TableFrame, s.Frame, fmt.Sprintf("stack %d", i)); err != nil {
			return err
		}
		if s.Prefix != nil {
			// The stack table is a flat tree encoding: parents always
			// precede children, so a prefix pointing at or past its own
			// node cannot resolve to a real parent.
			if *s.Prefix < 0 || *s.Prefix >= i {
				return fmt.Errorf("%w: %s index %d out of range [0, %d) at stack %d prefix",
					ErrDanglingIndexReference, TableStack, *s.Prefix, i, i)
			}
		}
	}
	for i, f := range d.Frames {
		if err := d.checkIndex(TableFunc, f.Func, fmt.Sprintf("frame %d", i)); err != nil {
			return err
		}
	}
	for i, fn := range d.Funcs {
		if err := d.checkIndex(TableString, fn.Name, fmt.Sprintf("func %d name", i)); err != nil {
			return err
		}
		if fn.File != nil {
			if err := d.checkIndex(TableString, *fn.File, fmt.Sprintf("func %d file", i)); err != nil {
				return err
			}
		}
	}
	for pi := range d.Processes {
		p := &d.Processes[pi]
		for ti := range p.Threads {
			t := &p.Threads[ti]
			at := fmt.Sprintf("process %q thread %q", p.Name, t.Name)
			for si, s := range t.Samples {
				if err := d.checkIndex(TableStack, s.Stack, fmt.Sprintf("%s sample %d", at, si)); err != nil {
					return err
				}
			}
			for mi, m := range t.Markers {
				where := fmt.Sprintf("%s marker %d", at, mi)
				if err := d.checkIndex(TableString, m.Name, where+" name"); err != nil {
					return err
				}
				if err := d.checkIndex(TableCategory, m.Category, where+" category"); err != nil {
					return err
				}
				if m.Stack != nil {
					if err := d.checkIndex(TableStack, *m.Stack, where+" stack"); err != nil {
						return err
					}
				}
				if m.Payload != nil {
					if m.Payload.Text != nil {
						if err := d.checkIndex(TableString, *m.Payload.Text, where+" payload text"); err != nil {
							return err
						}
					}
					if m.Payload.Stack != nil {
						if err := d.checkIndex(TableStack, *m.Payload.Stack, where+" payload stack"); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

func (d *Document) checkIndex(kind TableKind, idx int, at string) error {
	var n int
	switch kind {
	case TableString:
		n = len(d.Strings)
	case TableStack:
		n = len(d.Stacks)
	case TableFrame:
		n = len(d.Frames)
	case TableFunc:
		n = len(d.Funcs)
	case TableCategory:
		n = len(d.Categories)
	}
	if idx < 0 || idx >= n {
		return fmt.Errorf("%w: %s index %d out of range [0, %d) at %s",
			ErrDanglingIndexReference, kind, idx, n, at)
	}
	return nil
}
