package changeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIndexSet(t *testing.T) {
	s := NewIndexSet(5, 1, 3, 1, 5)
	assert.Equal(t, []int{1, 3, 5}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(2))

	var empty IndexSet
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.Values())
}

func TestIndexSet_CountBelow(t *testing.T) {
	s := NewIndexSet(1, 3, 5)

	tests := []struct {
		v    int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{6, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.CountBelow(tt.v), "CountBelow(%d)", tt.v)
	}
}

func TestIndexSet_ShiftPast(t *testing.T) {
	tests := []struct {
		name string
		set  IndexSet
		v    int
		want int
	}{
		{"empty set", IndexSet{}, 4, 4},
		{"insert above", NewIndexSet(5), 2, 2},
		{"insert at candidate", NewIndexSet(2), 2, 3},
		{"insert below", NewIndexSet(0), 2, 3},
		// A single count of {x <= 0} would give 1 and land on an inserted index.
		{"chained insertions", NewIndexSet(0, 1), 0, 2},
		{"chain broken by gap", NewIndexSet(0, 1, 4), 0, 2},
		{"chain reaches later insert", NewIndexSet(0, 2, 3), 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.ShiftPast(tt.v)
			assert.Equal(t, tt.want, got)
			assert.False(t, tt.set.Contains(got), "shifted index must not collide with an insertion")
		})
	}
}

// ShiftPast must equal the fixed point of "add one for every insertion at or
// below the candidate".
func TestIndexSet_ShiftPastIsFixedPoint(t *testing.T) {
	sets := []IndexSet{
		NewIndexSet(0, 1, 2),
		NewIndexSet(0, 2, 4, 6),
		NewIndexSet(1, 2, 3, 7, 8),
		NewIndexSet(3),
	}
	for _, s := range sets {
		for v := 0; v < 10; v++ {
			fixed := v
			for {
				next := v + s.CountBelow(fixed+1)
				if next == fixed {
					break
				}
				fixed = next
			}
			assert.Equal(t, fixed, s.ShiftPast(v), "set %v value %d", s.Values(), v)
		}
	}
}

func TestIndexSet_FirstAbove(t *testing.T) {
	s := NewIndexSet(1, 4, 7)

	v, ok := s.FirstAbove(4)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	v, ok = s.FirstAbove(-1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.FirstAbove(7)
	assert.False(t, ok)
}

func TestIndexSet_UnionIntersect(t *testing.T) {
	a := NewIndexSet(1, 3, 5)
	b := NewIndexSet(2, 3, 6)

	assert.Equal(t, []int{1, 2, 3, 5, 6}, a.Union(b).Values())
	assert.Equal(t, []int{3}, a.Intersect(b).Values())
	assert.Equal(t, a.Values(), a.Union(IndexSet{}).Values())
	assert.True(t, a.Intersect(IndexSet{}).IsEmpty())
}

func TestOrdinalTable(t *testing.T) {
	c1, err := NewItemChange(Insert, []ItemIndex{Item(2, 4), Item(0, 1)}, 0)
	assert.NoError(t, err)
	c2, err := NewItemChange(Insert, []ItemIndex{Item(2, 1), Item(2, 4)}, 1)
	assert.NoError(t, err)

	table := newOrdinalTable([]ItemChange{c1, c2})
	assert.Equal(t, []int{1}, table.at(0).Values())
	assert.True(t, table.at(1).IsEmpty())
	assert.Equal(t, []int{1, 4}, table.at(2).Values())
	assert.True(t, table.at(9).IsEmpty())
	assert.True(t, table.at(-1).IsEmpty())

	var sections []int
	table.each(func(section int, _ IndexSet) { sections = append(sections, section) })
	assert.Equal(t, []int{0, 2}, sections)
}

func TestItemIndex_Compare(t *testing.T) {
	assert.Negative(t, Item(0, 9).Compare(Item(1, 0)))
	assert.Positive(t, Item(1, 2).Compare(Item(1, 1)))
	assert.Zero(t, Item(3, 3).Compare(Item(3, 3)))
	assert.Equal(t, "(1,2)", Item(1, 2).String())
}
