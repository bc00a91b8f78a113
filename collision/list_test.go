package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slide/fixed"
)

func TestContactListGrowPolicy(t *testing.T) {
	l := NewContactList(2, OverflowGrow)
	for i := 0; i < 5; i++ {
		assert.True(t, l.Push(Contact{TouchDist: fixed.FromInt(i)}))
	}

	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 3, l.Overflowed())
	assert.Equal(t, 0, l.Dropped())
}

func TestContactListDropPolicy(t *testing.T) {
	l := NewContactList(2, OverflowDrop)
	for i := 0; i < 5; i++ {
		l.Push(Contact{TouchDist: fixed.FromInt(i)})
	}

	require.Equal(t, 2, l.Len())
	assert.Equal(t, fixed.FromInt(1), l.At(1).TouchDist)
	assert.Equal(t, 3, l.Overflowed())
	assert.Equal(t, 3, l.Dropped())

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Dropped())
	assert.Equal(t, 2, l.Capacity())
}

func TestContactListDefaultCapacity(t *testing.T) {
	l := NewContactList(0, OverflowGrow)
	assert.Equal(t, DefaultContactCap, l.Capacity())
	assert.Equal(t, OverflowGrow, l.Policy())
}

func TestContactListSortIsStable(t *testing.T) {
	l := NewContactList(8, OverflowGrow)
	l.Push(Contact{TouchDist: fixed.One, Cell: CellIndex{X: 0}})
	l.Push(Contact{TouchDist: 0, Cell: CellIndex{X: 1}})
	l.Push(Contact{TouchDist: fixed.One, Cell: CellIndex{X: 2}})
	l.Push(Contact{TouchDist: 0, Cell: CellIndex{X: 3}})

	l.SortByTouchDist()
	var order []int
	for _, c := range l.All() {
		order = append(order, c.Cell.X)
	}
	assert.Equal(t, []int{1, 3, 0, 2}, order)

	snapshot := l.Clone()
	l.Truncate(1)
	assert.Equal(t, 1, l.Len())
	assert.Len(t, snapshot, 4)

	l.Truncate(10)
	assert.Equal(t, 1, l.Len())
}

func TestParseOverflowPolicy(t *testing.T) {
	for in, want := range map[string]OverflowPolicy{"": OverflowGrow, "grow": OverflowGrow, "drop": OverflowDrop} {
		got, err := ParseOverflowPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
		if in != "" {
			assert.Equal(t, in, got.String())
		}
	}

	_, err := ParseOverflowPolicy("shrink")
	assert.Error(t, err)
}
