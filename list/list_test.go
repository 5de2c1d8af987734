package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants verifies that the cached length and end node agree with what is
// actually reachable from front.
func checkInvariants[T comparable](t *testing.T, l *LinkedList[T]) {
	t.Helper()
	count := 0
	var last *node[T]
	for n := l.front; n != nil; n = n.next {
		count++
		last = n
	}
	require.Equal(t, count, l.Len(), "length does not match reachable nodes")
	require.True(t, last == l.end, "end is not the last reachable node")
	if l.Len() == 0 {
		require.Nil(t, l.front)
		require.Nil(t, l.end)
	}
}

func endItem[T comparable](t *testing.T, l *LinkedList[T]) T {
	t.Helper()
	item, ok := l.Last()
	require.True(t, ok, "list has no end")
	return item
}

func TestAppendKeepsOrder(t *testing.T) {
	l := New[int]()
	for i := 0; i < 10; i++ {
		l.Append(i * 2)
		checkInvariants(t, l)
	}
	assert.Equal(t, 10, l.Len())
	assert.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, l.ToSlice())
	assert.Equal(t, 18, endItem(t, l))
}

func TestZeroValueIsUsable(t *testing.T) {
	var l LinkedList[string]
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "[]", l.String())
	l.Append("a")
	checkInvariants(t, &l)
	assert.Equal(t, []string{"a"}, l.ToSlice())
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial []int
		item    int
		index   int
		want    []int
		wantEnd int
	}{
		{"into empty", nil, 7, 0, []int{7}, 7},
		{"front", []int{1, 2, 3}, 0, 0, []int{0, 1, 2, 3}, 3},
		{"middle", []int{1, 2, 3}, 9, 1, []int{1, 9, 2, 3}, 3},
		{"before last", []int{1, 2, 3}, 9, 2, []int{1, 2, 9, 3}, 3},
		{"at length appends", []int{1, 2, 3}, 9, 3, []int{1, 2, 3, 9}, 9},
		{"past length appends", []int{1, 2, 3}, 9, 42, []int{1, 2, 3, 9}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.initial...)
			require.NoError(t, l.Insert(tt.item, tt.index))
			checkInvariants(t, l)
			assert.Equal(t, tt.want, l.ToSlice())
			assert.Equal(t, tt.wantEnd, endItem(t, l))
		})
	}
}

func TestInsertNegativeIndex(t *testing.T) {
	l := New(1, 2)
	err := l.Insert(5, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	checkInvariants(t, l)
	assert.Equal(t, []int{1, 2}, l.ToSlice())
}

func TestInsertAtZeroThenGet(t *testing.T) {
	l := New(4, 5, 6)
	require.NoError(t, l.Insert(3, 0))
	got, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestPop(t *testing.T) {
	tests := []struct {
		name     string
		initial  []int
		index    int
		wantItem int
		want     []int
	}{
		{"only item", []int{1}, 0, 1, []int{}},
		{"front", []int{1, 2, 3}, 0, 1, []int{2, 3}},
		{"middle", []int{1, 2, 3}, 1, 2, []int{1, 3}},
		{"last", []int{1, 2, 3}, 2, 3, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.initial...)
			before := l.Len()
			item, err := l.Pop(tt.index)
			require.NoError(t, err)
			checkInvariants(t, l)
			assert.Equal(t, tt.wantItem, item)
			assert.Equal(t, before-1, l.Len())
			assert.Equal(t, tt.want, l.ToSlice())
		})
	}
}

func TestPopOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		initial []int
		index   int
	}{
		{"empty list", nil, 0},
		{"negative", []int{1, 2}, -1},
		{"at length", []int{1, 2}, 2},
		{"past length", []int{1, 2}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.initial...)
			_, err := l.Pop(tt.index)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			checkInvariants(t, l)
			assert.Equal(t, len(tt.initial), l.Len())
		})
	}
}

func TestPopLast(t *testing.T) {
	l := New("a", "b")
	item, err := l.PopLast()
	require.NoError(t, err)
	assert.Equal(t, "b", item)
	item, err = l.PopLast()
	require.NoError(t, err)
	assert.Equal(t, "a", item)
	checkInvariants(t, l)

	_, err = l.PopLast()
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name    string
		initial []int
		value   int
		found   bool
		want    []int
	}{
		{"empty", nil, 1, false, []int{}},
		{"absent", []int{1, 2, 3}, 4, false, []int{1, 2, 3}},
		{"only item", []int{1}, 1, true, []int{}},
		{"front", []int{1, 2, 3}, 1, true, []int{2, 3}},
		{"middle", []int{1, 2, 3}, 2, true, []int{1, 3}},
		{"end", []int{1, 2, 3}, 3, true, []int{1, 2}},
		{"first occurrence only", []int{5, 1, 5, 1}, 1, true, []int{5, 5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.initial...)
			assert.Equal(t, tt.found, l.Remove(tt.value))
			checkInvariants(t, l)
			assert.Equal(t, tt.want, l.ToSlice())
		})
	}
}

func TestRemoveThenAppendUsesNewEnd(t *testing.T) {
	l := New(1, 2, 3)
	require.True(t, l.Remove(3))
	l.Append(4)
	checkInvariants(t, l)
	assert.Equal(t, []int{1, 2, 4}, l.ToSlice())

	require.True(t, l.Remove(1))
	require.True(t, l.Remove(2))
	require.True(t, l.Remove(4))
	checkInvariants(t, l)
	l.Append(5)
	checkInvariants(t, l)
	assert.Equal(t, []int{5}, l.ToSlice())
}

func TestGet(t *testing.T) {
	l := New(10.5, 20.5, 30.5)
	for i, want := range []float64{10.5, 20.5, 30.5} {
		got, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := l.Get(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = New[float64]().Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestContains(t *testing.T) {
	l := New("x", "y")
	assert.True(t, l.Contains("x"))
	assert.True(t, l.Contains("y"))
	assert.False(t, l.Contains("z"))
	assert.False(t, New[string]().Contains(""))
}

func TestMaximum(t *testing.T) {
	got, err := Maximum(New(3.5, -1.0, 7.25, 7.0))
	require.NoError(t, err)
	assert.Equal(t, 7.25, got)

	got, err = Maximum(New(-4.0))
	require.NoError(t, err)
	assert.Equal(t, -4.0, got)

	_, err = Maximum(New[float64]())
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestForEachStopsEarly(t *testing.T) {
	l := New(1, 2, 3, 4)
	var seen []int
	l.ForEach(func(index int, item int) bool {
		seen = append(seen, item)
		return index < 1
	})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestString(t *testing.T) {
	assert.Equal(t, "[1 2 3]", New(1, 2, 3).String())
}

func TestScenario(t *testing.T) {
	l := New(1, 2, 3)

	l.Append(50)
	checkInvariants(t, l)
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 50, endItem(t, l))

	require.True(t, l.Remove(1))
	checkInvariants(t, l)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 50, endItem(t, l))

	require.True(t, l.Remove(50))
	checkInvariants(t, l)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, endItem(t, l))

	_, err := l.Pop(1)
	require.NoError(t, err)
	checkInvariants(t, l)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, endItem(t, l))

	require.NoError(t, l.Insert(1, 0))
	require.NoError(t, l.Insert(100, 2))
	checkInvariants(t, l)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 100, endItem(t, l))

	_, err = l.Pop(l.Len() - 1)
	require.NoError(t, err)
	checkInvariants(t, l)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, endItem(t, l))

	_, err = l.PopLast()
	require.NoError(t, err)
	checkInvariants(t, l)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, endItem(t, l))
}
