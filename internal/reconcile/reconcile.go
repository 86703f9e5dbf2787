// Package reconcile checks a player's interrupted square claim against the live board.
//
// The check is a snapshot. A square reported as available can still be taken by
// someone else before the claim is written; the persistence layer must claim squares
// with an atomic "claim if unclaimed" write and is the only authority on ownership.
package reconcile

import (
	"fmt"
)

const (
	GridSize   = 10
	NumSquares = GridSize * GridSize
)

// Occupancy maps a "row-col" key to the current claimants of that square.
type Occupancy map[string][]string

// Key returns the occupancy key of square index i.
func Key(i int) string {
	return fmt.Sprintf("%d-%d", i/GridSize, i%GridSize)
}

// Taken reports whether square i has at least one claimant.
func (o Occupancy) Taken(i int) bool {
	return len(o[Key(i)]) > 0
}

// Result partitions the requested squares. Every input index lands in exactly one list,
// in input order.
type Result struct {
	Available []int `json:"available"`
	Conflicts []int `json:"conflicts"`
}

// Reconcile splits squares into those still free and those claimed since the selection
// was made. A key that is present with no claimants counts as free.
func Reconcile(squares []int, occ Occupancy) Result {
	res := Result{
		Available: make([]int, 0, len(squares)),
		Conflicts: make([]int, 0),
	}
	for _, sq := range squares {
		if occ.Taken(sq) {
			res.Conflicts = append(res.Conflicts, sq)
		} else {
			res.Available = append(res.Available, sq)
		}
	}
	return res
}
