package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_Scenario(t *testing.T) {
	occ := Occupancy{
		"0-0": {"Alice"},
		"2-3": {},
	}

	res := Reconcile([]int{0, 5, 23}, occ)

	assert.Equal(t, []int{5, 23}, res.Available)
	assert.Equal(t, []int{0}, res.Conflicts)
}

func TestReconcile_IsPartition(t *testing.T) {
	occ := Occupancy{}
	for i := 0; i < NumSquares; i += 3 {
		occ[Key(i)] = []string{"p"}
	}
	var squares []int
	for i := 0; i < NumSquares; i++ {
		squares = append(squares, i)
	}

	res := Reconcile(squares, occ)

	assert.Len(t, res.Conflicts, 34)
	assert.Len(t, res.Available, 66)
	seen := map[int]int{}
	for _, sq := range res.Available {
		seen[sq]++
	}
	for _, sq := range res.Conflicts {
		seen[sq]++
		assert.Zero(t, sq%3)
	}
	for _, sq := range squares {
		assert.Equal(t, 1, seen[sq], "square %d", sq)
	}
}

func TestReconcile_Empty(t *testing.T) {
	res := Reconcile(nil, Occupancy{"0-0": {"a"}})
	assert.Empty(t, res.Available)
	assert.Empty(t, res.Conflicts)

	res = Reconcile([]int{42}, nil)
	assert.Equal(t, []int{42}, res.Available)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "0-0", Key(0))
	assert.Equal(t, "0-5", Key(5))
	assert.Equal(t, "2-3", Key(23))
	assert.Equal(t, "9-9", Key(99))
}
