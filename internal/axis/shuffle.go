// Package axis assigns score digits to grid rows and columns.
package axis

// Size is the number of digits on one grid axis.
const Size = 10

// Digits is the fixed digit set every axis is a permutation of.
var Digits = [Size]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// Permutation maps a grid index to the score digit displayed at that index.
type Permutation [Size]int

// Valid reports whether p holds each digit exactly once and does not lead with 0.
func (p Permutation) Valid() bool {
	var seen [Size]bool
	for _, d := range p {
		if d < 0 || d >= Size || seen[d] {
			return false
		}
		seen[d] = true
	}
	return p[0] != 0
}

// Digit returns the digit displayed at grid index i.
func (p Permutation) Digit(i int) int {
	return p[i]
}

// IndexOf returns the grid index showing digit d, or -1.
func (p Permutation) IndexOf(d int) int {
	for i, v := range p {
		if v == d {
			return i
		}
	}
	return -1
}

// Shuffler produces axis permutations.
type Shuffler struct {
	src Source
}

// NewShuffler returns a Shuffler drawing from src; a nil src uses crypto/rand.
func NewShuffler(src Source) *Shuffler {
	if src == nil {
		src = NewCryptoSource()
	}
	return &Shuffler{src: src}
}

// Shuffle returns a uniformly shuffled copy of Digits, then moves a leading 0 to a
// random position in 1..9.
//
// The final swap makes the result slightly non-uniform: 0 never sits at index 0 and
// the digit it trades places with is over-represented there.
func (s *Shuffler) Shuffle() Permutation {
	p := Permutation(Digits)
	for i := Size - 1; i > 0; i-- {
		j := s.src.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	if p[0] == 0 {
		j := 1 + s.src.IntN(Size-1)
		p[0], p[j] = p[j], p[0]
	}
	return p
}
