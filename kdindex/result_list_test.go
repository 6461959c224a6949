package kdindex

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultListBasic(t *testing.T) {
	l := NewResultList[string, float64](3)
	require.Equal(t, 0, l.Len())
	require.Equal(t, 3, l.Cap())
	require.False(t, l.Full())

	require.True(t, l.Add("c", 3))
	require.True(t, l.Add("a", 1))
	require.True(t, l.Add("b", 2))
	require.True(t, l.Full())
	assert.Equal(t, []string{"a", "b", "c"}, l.Elements())
	assert.Equal(t, []float64{1, 2, 3}, l.Priorities())

	assert.Equal(t, "a", l.MinElement())
	assert.Equal(t, 1.0, l.MinPriority())
	assert.Equal(t, "c", l.MaxElement())
	assert.Equal(t, 3.0, l.MaxPriority())

	// Displaces the current maximum.
	require.True(t, l.Add("z", 0.5))
	assert.Equal(t, []string{"z", "a", "b"}, l.Elements())
	assert.Equal(t, []float64{0.5, 1, 2}, l.Priorities())
}

func TestResultListRejectsWhenFull(t *testing.T) {
	l := NewResultList[int, int](2)
	l.Add(1, 10)
	l.Add(2, 20)

	require.False(t, l.Add(3, 20))
	require.False(t, l.Add(4, 100))
	assert.Equal(t, []int{1, 2}, l.Elements())
	assert.Equal(t, []int{10, 20}, l.Priorities())
}

func TestResultListEqualPriorities(t *testing.T) {
	l := NewResultList[string, int](4)
	l.Add("first", 5)
	l.Add("low", 1)
	l.Add("second", 5)
	l.Add("third", 5)
	assert.Equal(t, []string{"low", "first", "second", "third"}, l.Elements())

	// Equal to the maximum, so rejected.
	require.False(t, l.Add("fourth", 5))
	require.True(t, l.Add("lower", 2))
	assert.Equal(t, []string{"low", "lower", "first", "second"}, l.Elements())
}

func TestResultListIterate(t *testing.T) {
	l := NewResultList[int, float32](5)
	for i := 5; i > 0; i-- {
		l.Add(i, float32(i))
	}
	var visited []int
	l.Iterate(func(e int, p float32) bool {
		assert.Equal(t, float32(e), p)
		visited = append(visited, e)
		return e < 3
	})
	assert.Equal(t, []int{1, 2, 3}, visited)
}

func TestResultListRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	for trial := 0; trial < 50; trial++ {
		capacity := r.Intn(20) + 1
		l := NewResultList[int, int](capacity)
		var all []int
		prevLen := 0
		for i := 0; i < 100; i++ {
			priority := r.Intn(50)
			all = append(all, priority)

			full := l.Full()
			var before []int
			if full {
				before = l.Priorities()
			}
			kept := l.Add(i, priority)
			if full && priority >= before[len(before)-1] {
				require.False(t, kept)
				require.Equal(t, before, l.Priorities())
			} else {
				require.True(t, kept)
			}

			priorities := l.Priorities()
			require.True(t, sort.IntsAreSorted(priorities), "unsorted: %v", priorities)
			require.LessOrEqual(t, l.Len(), capacity)
			require.GreaterOrEqual(t, l.Len(), prevLen)
			prevLen = l.Len()
		}
		sort.Ints(all)
		require.Equal(t, all[:capacity], l.Priorities())
	}
}

func TestResultListZeroCapacity(t *testing.T) {
	assert.Panics(t, func() {
		NewResultList[int, int](0)
	})
}

func BenchmarkResultListAdd(b *testing.B) {
	r := rand.New(rand.NewSource(0))
	priorities := make([]float64, 4096)
	for i := range priorities {
		priorities[i] = r.Float64()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := NewResultList[int, float64](16)
		for j, p := range priorities {
			l.Add(j, p)
		}
	}
}
