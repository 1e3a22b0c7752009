package changeset

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelled(counts ...int) [][]string {
	layout := make([][]string, len(counts))
	for s, n := range counts {
		for i := 0; i < n; i++ {
			layout[s] = append(layout[s], fmt.Sprintf("s%di%d", s, i))
		}
	}
	return layout
}

func freshLabel(p ItemIndex) string {
	return "new" + p.String()
}

func TestApply_DeleteSectionAndItems(t *testing.T) {
	b := NewBuilder([]int{2, 3})
	require.NoError(t, b.DeleteSections([]int{0}, tagA))
	require.NoError(t, b.DeleteItems([]ItemIndex{Item(1, 0), Item(1, 2)}, tagA))
	require.NoError(t, b.InsertItems([]ItemIndex{Item(0, 0)}, tagA))

	res, err := b.Finalize([]int{2})
	require.NoError(t, err)

	got, err := Apply(labelled(2, 3), res, freshLabel)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"new(0,0)", "s1i1"}}, got)
}

func TestApply_Reloads(t *testing.T) {
	b := NewBuilder([]int{2, 3})
	require.NoError(t, b.ReloadSections([]int{0}, tagA))
	require.NoError(t, b.InsertItems([]ItemIndex{Item(1, 0)}, tagA))
	require.NoError(t, b.ReloadItems([]ItemIndex{Item(1, 1)}, tagB))

	res, err := b.Finalize([]int{2, 4})
	require.NoError(t, err)

	got, err := Apply(labelled(2, 3), res, freshLabel)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"new(0,0)", "new(0,1)"},
		{"new(1,0)", "s1i0", "new(1,2)", "s1i2"},
	}, got)
}

func TestApply_ReloadData(t *testing.T) {
	b := NewBuilder([]int{1})
	require.NoError(t, b.ReloadData())
	res, err := b.Finalize([]int{0, 2})
	require.NoError(t, err)

	got, err := Apply(labelled(1), res, freshLabel)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}, {"new(1,0)", "new(1,1)"}}, got)
}

func TestApply_LayoutMismatch(t *testing.T) {
	res, err := NewBuilder([]int{2}).Finalize([]int{2})
	require.NoError(t, err)

	_, err = Apply(labelled(3), res, freshLabel)
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	_, err = Apply(labelled(1, 1), res, freshLabel)
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestApply_InputUntouched(t *testing.T) {
	b := NewBuilder([]int{3})
	require.NoError(t, b.DeleteItems([]ItemIndex{Item(0, 1)}, tagA))
	res, err := b.Finalize([]int{2})
	require.NoError(t, err)

	in := labelled(3)
	_, err = Apply(in, res, freshLabel)
	require.NoError(t, err)
	assert.Equal(t, labelled(3), in)
}

// Random batches of declared section and item edits must finalize, satisfy
// the counting invariants, and replay to a layout that keeps every surviving
// item in its original relative order.
func TestApply_RandomBatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		oldCounts := make([]int, rng.Intn(4)+1)
		for s := range oldCounts {
			oldCounts[s] = rng.Intn(6)
		}
		b := NewBuilder(oldCounts)

		var deletedSections []int
		for s := range oldCounts {
			if rng.Intn(4) == 0 {
				deletedSections = append(deletedSections, s)
			}
		}
		if len(deletedSections) > 0 {
			require.NoError(t, b.DeleteSections(deletedSections, Tag(rng.Intn(2))))
		}

		// Surviving sections in order, with their item edits.
		newCounts := []int{}
		var survivors []int
		for s, n := range oldCounts {
			if slices.Contains(deletedSections, s) {
				continue
			}
			survivors = append(survivors, s)
			var del []int
			for i := 0; i < n; i++ {
				if rng.Intn(3) == 0 {
					del = append(del, i)
				}
			}
			newCounts = append(newCounts, n-len(del)+rng.Intn(3))
			for _, i := range del {
				require.NoError(t, b.DeleteItems([]ItemIndex{Item(s, i)}, Tag(rng.Intn(2))))
			}
		}

		// Insert whole sections at random new positions.
		inserts := rng.Intn(3)
		for k := 0; k < inserts; k++ {
			pos := rng.Intn(len(newCounts) + 1)
			newCounts = slices.Insert(newCounts, pos, rng.Intn(3))
		}
		var insertedSections []int
		if inserts > 0 {
			// Fresh sections take random new positions; survivors fill the rest in order.
			taken := rng.Perm(len(newCounts))[:inserts]
			slices.Sort(taken)
			insertedSections = taken
			require.NoError(t, b.InsertSections(insertedSections, Tag(rng.Intn(2))))
		}

		// Declare item inserts for surviving sections in new space.
		oldOf := make(map[int]int)
		next := 0
		for ns := range newCounts {
			if slices.Contains(insertedSections, ns) {
				continue
			}
			oldOf[ns] = survivors[next]
			next++
		}
		for ns := range newCounts {
			s, ok := oldOf[ns]
			if !ok {
				continue
			}
			deleted := 0
			for _, c := range b.items[Delete] {
				for _, p := range c.indices {
					if p.Section == s {
						deleted++
					}
				}
			}
			added := newCounts[ns] - (oldCounts[s] - deleted)
			if added < 0 {
				newCounts[ns] -= added
				added = 0
			}
			positions := rng.Perm(newCounts[ns])[:added]
			for _, i := range positions {
				require.NoError(t, b.InsertItems([]ItemIndex{Item(ns, i)}, Tag(rng.Intn(2))))
			}
		}

		res, err := b.Finalize(newCounts)
		require.NoError(t, err, "round %d", round)

		assert.Equal(t, len(oldCounts)+res.InsertedSections().Len()-res.DeletedSections().Len(), len(newCounts))
		for s := range oldCounts {
			ns, ok := res.NewSection(s)
			if !ok {
				continue
			}
			assert.Equal(t, newCounts[ns],
				oldCounts[s]+res.ItemOrdinals(Insert, ns).Len()-res.ItemOrdinals(Delete, s).Len(),
				"round %d section %d", round, s)
		}

		before := labelled(oldCounts...)
		after, err := Apply(before, res, freshLabel)
		require.NoError(t, err, "round %d", round)
		assert.Equal(t, newCounts, Counts(after))

		for s := range oldCounts {
			ns, ok := res.NewSection(s)
			if !ok {
				continue
			}
			var kept []string
			for _, label := range after[ns] {
				if slices.Contains(before[s], label) {
					kept = append(kept, label)
				}
			}
			deleted := res.ItemOrdinals(Delete, s)
			var want []string
			for i, label := range before[s] {
				if !deleted.Contains(i) {
					want = append(want, label)
				}
			}
			assert.Equal(t, want, kept, "round %d section %d", round, s)
		}
	}
}
