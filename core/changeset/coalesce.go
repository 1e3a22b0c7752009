package changeset

import (
	"maps"
	"slices"
)

// Coalesce merges raw, possibly overlapping changes into the fewest changes
// of the given kind. Indices are ordered by kind.Order() and split into
// maximal runs sharing a Tag. When several changes name the same index, the
// later change's tag wins. Indices for which ignore returns true are dropped;
// ignore may be nil.
//
// Coalescing its own output yields the same result.
func Coalesce[T Index[T]](changes []Change[T], kind Kind, ignore func(T) bool) []Change[T] {
	tags := make(map[T]Tag)
	for _, c := range changes {
		for _, idx := range c.indices {
			tags[idx] = c.tag
		}
	}

	all := slices.Collect(maps.Keys(tags))
	if ignore != nil {
		all = slices.DeleteFunc(all, ignore)
	}
	if len(all) == 0 {
		return nil
	}
	all = sortIndices(all, kind.Order())

	var out []Change[T]
	start := 0
	for i := 1; i <= len(all); i++ {
		if i < len(all) && tags[all[i]] == tags[all[start]] {
			continue
		}
		run := slices.Clone(all[start:i])
		out = append(out, Change[T]{kind: kind, indices: run, tag: tags[all[start]]})
		start = i
	}
	return out
}
