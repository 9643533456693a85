package merge

import (
	"fmt"

	"stitch/internal/gecko"
)

// remapper translates interning-table indices of the marker-capture document
// into indices of the unified output document, appending entries as needed.
// The output document's tables start as the sample capture's tables verbatim,
// so sample-side indices keep their base numbering.
//
// Strings and categories deduplicate by content: a marker name that already
// exists in the sample capture's string table resolves to the existing entry.
// Frames, funcs and stacks are appended without dedup, because cross-document
// stack identity cannot be inferred without symbol-level comparison and a
// duplicate entry is harmless where a wrong unification is not.
//
// Every lookup is memoized, so a given source index resolves to the same
// output index for the whole run.
type remapper struct {
	src *gecko.Document
	dst *gecko.Document

	strings    map[int]int
	stacks     map[int]int
	frames     map[int]int
	funcs      map[int]int
	categories map[int]int

	stringIndex   map[string]int
	categoryIndex map[string]int
}

func newRemapper(src, dst *gecko.Document) *remapper {
	r := &remapper{
		src:           src,
		dst:           dst,
		strings:       make(map[int]int),
		stacks:        make(map[int]int),
		frames:        make(map[int]int),
		funcs:         make(map[int]int),
		categories:    make(map[int]int),
		stringIndex:   make(map[string]int, len(dst.Strings)),
		categoryIndex: make(map[string]int, len(dst.Categories)),
	}
	for i, s := range dst.Strings {
		if _, ok := r.stringIndex[s]; !ok {
			r.stringIndex[s] = i
		}
	}
	for i, c := range dst.Categories {
		if _, ok := r.categoryIndex[c.Name]; !ok {
			r.categoryIndex[c.Name] = i
		}
	}
	return r
}

func (r *remapper) String(old int) (int, error) {
	if idx, ok := r.strings[old]; ok {
		return idx, nil
	}
	if old < 0 || old >= len(r.src.Strings) {
		return 0, dangling(gecko.TableString, old, len(r.src.Strings))
	}
	s := r.src.Strings[old]
	idx, ok := r.stringIndex[s]
	if !ok {
		idx = len(r.dst.Strings)
		r.dst.Strings = append(r.dst.Strings, s)
		r.stringIndex[s] = idx
	}
	r.strings[old] = idx
	return idx, nil
}

func (r *remapper) Category(old int) (int, error) {
	if idx, ok := r.categories[old]; ok {
		return idx, nil
	}
	if old < 0 || old >= len(r.src.Categories) {
		return 0, dangling(gecko.TableCategory, old, len(r.src.Categories))
	}
	c := r.src.Categories[old]
	idx, ok := r.categoryIndex[c.Name]
	if !ok {
		idx = len(r.dst.Categories)
		r.dst.Categories = append(r.dst.Categories, c)
		r.categoryIndex[c.Name] = idx
	}
	r.categories[old] = idx
	return idx, nil
}

func (r *remapper) Func(old int) (int, error) {
	if idx, ok := r.funcs[old]; ok {
		return idx, nil
	}
	if old < 0 || old >= len(r.src.Funcs) {
		return 0, dangling(gecko.TableFunc, old, len(r.src.Funcs))
	}
	fn := r.src.Funcs[old]
	name, err := r.String(fn.Name)
	if err != nil {
		return 0, err
	}
	fn.Name = name
	if fn.File != nil {
		file, err := r.String(*fn.File)
		if err != nil {
			return 0, err
		}
		fn.File = &file
	}
	idx := len(r.dst.Funcs)
	r.dst.Funcs = append(r.dst.Funcs, fn)
	r.funcs[old] = idx
	return idx, nil
}

func (r *remapper) Frame(old int) (int, error) {
	if idx, ok := r.frames[old]; ok {
		return idx, nil
	}
	if old < 0 || old >= len(r.src.Frames) {
		return 0, dangling(gecko.TableFrame, old, len(r.src.Frames))
	}
	f := r.src.Frames[old]
	fn, err := r.Func(f.Func)
	if err != nil {
		return 0, err
	}
	f.Func = fn
	idx := len(r.dst.Frames)
	r.dst.Frames = append(r.dst.Frames, f)
	r.frames[old] = idx
	return idx, nil
}

func (r *remapper) Stack(old int) (int, error) {
	if idx, ok := r.stacks[old]; ok {
		return idx, nil
	}
	if old < 0 || old >= len(r.src.Stacks) {
		return 0, dangling(gecko.TableStack, old, len(r.src.Stacks))
	}
	s := r.src.Stacks[old]
	if s.Prefix != nil {
		prefix, err := r.Stack(*s.Prefix)
		if err != nil {
			return 0, err
		}
		s.Prefix = &prefix
	}
	frame, err := r.Frame(s.Frame)
	if err != nil {
		return 0, err
	}
	s.Frame = frame
	idx := len(r.dst.Stacks)
	r.dst.Stacks = append(r.dst.Stacks, s)
	r.stacks[old] = idx
	return idx, nil
}

func dangling(kind gecko.TableKind, idx, n int) error {
	return fmt.Errorf("%w: marker document %s index %d out of range [0, %d)",
		gecko.ErrDanglingIndexReference, kind, idx, n)
}
