package axis

import (
	"time"

	"github.com/google/uuid"
)

// LegacyCheckpoints is used when a caller does not name any checkpoints.
var LegacyCheckpoints = []string{"q1", "q2", "q3", "final"}

// Axes is the pair of permutations used for one checkpoint.
type Axes struct {
	Rows Permutation `json:"rows"`
	Cols Permutation `json:"cols"`
}

// AxisSet holds the axes of every checkpoint of one game start.
// A new game start or a host re-roll produces a new AxisSet; existing ones are never edited.
type AxisSet struct {
	ID          string          `json:"id"`
	Order       []string        `json:"order"`
	Checkpoints map[string]Axes `json:"checkpoints"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Get returns the axes for checkpoint.
func (s AxisSet) Get(checkpoint string) (Axes, bool) {
	a, ok := s.Checkpoints[checkpoint]
	return a, ok
}

// Keys returns the checkpoint keys in generation order.
func (s AxisSet) Keys() []string {
	return append([]string(nil), s.Order...)
}

// Winner returns the grid cell whose row digit matches the last digit of rowScore and
// whose column digit matches the last digit of colScore.
func (s AxisSet) Winner(checkpoint string, rowScore, colScore int) (row, col int, ok bool) {
	a, found := s.Checkpoints[checkpoint]
	if !found || rowScore < 0 || colScore < 0 {
		return 0, 0, false
	}
	row = a.Rows.IndexOf(rowScore % Size)
	col = a.Cols.IndexOf(colScore % Size)
	return row, col, row >= 0 && col >= 0
}

// Generator builds AxisSets.
type Generator struct {
	shuffler *Shuffler
	now      func() time.Time
}

func NewGenerator(shuffler *Shuffler) *Generator {
	if shuffler == nil {
		shuffler = NewShuffler(nil)
	}
	return &Generator{shuffler: shuffler, now: time.Now}
}

// Generate shuffles rows and columns independently for every checkpoint.
// Duplicate keys are generated once; an empty list falls back to LegacyCheckpoints.
func (g *Generator) Generate(checkpoints []string) AxisSet {
	if len(checkpoints) == 0 {
		checkpoints = LegacyCheckpoints
	}

	set := AxisSet{
		ID:          uuid.NewString(),
		Order:       make([]string, 0, len(checkpoints)),
		Checkpoints: make(map[string]Axes, len(checkpoints)),
		GeneratedAt: g.now().UTC(),
	}
	for _, key := range checkpoints {
		if _, dup := set.Checkpoints[key]; dup {
			continue
		}
		set.Order = append(set.Order, key)
		set.Checkpoints[key] = Axes{
			Rows: g.shuffler.Shuffle(),
			Cols: g.shuffler.Shuffle(),
		}
	}
	return set
}
