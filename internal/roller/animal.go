package roller

import "strings"

// Animal is a face of a Bau Cua die. The numeric value is the outcome index.
type Animal int

const (
	Gourd Animal = iota
	Crab
	Shrimp
	Fish
	Rooster
	Deer
)

// Faces is the number of faces on each die.
const Faces = 6

var animalNames = [Faces]string{"gourd", "crab", "shrimp", "fish", "rooster", "deer"}

// Animals lists the die faces in outcome-index order.
var Animals = [Faces]Animal{Gourd, Crab, Shrimp, Fish, Rooster, Deer}

func (a Animal) String() string {
	if a < 0 || int(a) >= Faces {
		return "unknown"
	}
	return animalNames[a]
}

func (a Animal) Valid() bool {
	return a >= 0 && int(a) < Faces
}

func (a Animal) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAnimal accepts the English name or the Vietnamese name, with or without diacritics.
func ParseAnimal(s string) (Animal, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gourd", "bầu", "bau":
		return Gourd, true
	case "crab", "cua":
		return Crab, true
	case "shrimp", "tôm", "tom":
		return Shrimp, true
	case "fish", "cá", "ca":
		return Fish, true
	case "rooster", "gà", "ga":
		return Rooster, true
	case "deer", "nai":
		return Deer, true
	}
	return 0, false
}
