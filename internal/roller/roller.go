// Package roller resolves Bau Cua rounds with cryptographically secure dice.
package roller

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Dice is the number of dice thrown per round.
const Dice = 3

// ErrEntropyUnavailable means the secure random source could not be read.
// Rolls never fall back to a weaker generator.
var ErrEntropyUnavailable = errors.New("secure entropy source unavailable")

// Outcome holds the face index, 0 to 5, of each die.
type Outcome [Dice]int

func (o Outcome) Animals() [Dice]Animal {
	var out [Dice]Animal
	for i, v := range o {
		out[i] = Animal(v)
	}
	return out
}

// Count returns how many dice show a.
func (o Outcome) Count(a Animal) int {
	n := 0
	for _, v := range o {
		if Animal(v) == a {
			n++
		}
	}
	return n
}

// Roll is one resolved round.
type Roll struct {
	ID       string       `json:"id"`
	Outcome  Outcome      `json:"outcome"`
	Animals  [Dice]Animal `json:"animals"`
	RolledAt time.Time    `json:"rolled_at"`
}

// Roller draws outcomes from an entropy reader. It keeps no state between rolls.
type Roller struct {
	entropy io.Reader
	now     func() time.Time
}

// New returns a Roller reading from entropy; nil means crypto/rand.Reader.
func New(entropy io.Reader) *Roller {
	if entropy == nil {
		entropy = crand.Reader
	}
	return &Roller{entropy: entropy, now: time.Now}
}

// Outcome draws three 32-bit values and reduces each modulo 6.
func (r *Roller) Outcome() (Outcome, error) {
	var buf [4 * Dice]byte
	if _, err := io.ReadFull(r.entropy, buf[:]); err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}

	var o Outcome
	for i := range o {
		o[i] = int(binary.LittleEndian.Uint32(buf[4*i:]) % Faces)
	}
	return o, nil
}

// Roll resolves a round and stamps it with a fresh id.
func (r *Roller) Roll() (Roll, error) {
	o, err := r.Outcome()
	if err != nil {
		return Roll{}, err
	}
	return Roll{
		ID:       uuid.NewString(),
		Outcome:  o,
		Animals:  o.Animals(),
		RolledAt: r.now().UTC(),
	}, nil
}
