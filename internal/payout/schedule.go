package payout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Checkpoint is one scoring milestone of a schedule.
type Checkpoint struct {
	Key      string
	Label    string
	Fraction decimal.Decimal
	// Scored checkpoints get their own axis permutations on the board.
	Scored bool
}

// Schedule is the static payout configuration of a Category.
// Checkpoint fractions plus House always add up to exactly one.
type Schedule struct {
	Category    Category
	Checkpoints []Checkpoint
	House       decimal.Decimal
}

func (s Schedule) Keys() []string {
	keys := make([]string, len(s.Checkpoints))
	for i, cp := range s.Checkpoints {
		keys[i] = cp.Key
	}
	return keys
}

func (s Schedule) Labels() map[string]string {
	labels := make(map[string]string, len(s.Checkpoints))
	for _, cp := range s.Checkpoints {
		labels[cp.Key] = cp.Label
	}
	return labels
}

// ScoredKeys returns the keys of checkpoints that take part in score-based determination.
func (s Schedule) ScoredKeys() []string {
	var keys []string
	for _, cp := range s.Checkpoints {
		if cp.Scored {
			keys = append(keys, cp.Key)
		}
	}
	return keys
}

func (s Schedule) ScoredCount() int {
	return len(s.ScoredKeys())
}

// Fraction returns the share of the pot paid at key.
func (s Schedule) Fraction(key string) (decimal.Decimal, bool) {
	for _, cp := range s.Checkpoints {
		if cp.Key == key {
			return cp.Fraction, true
		}
	}
	return decimal.Zero, false
}

func cp(key, label, fraction string) Checkpoint {
	return Checkpoint{Key: key, Label: label, Fraction: decimal.RequireFromString(fraction), Scored: true}
}

var schedules = map[Category]Schedule{
	Football: {
		Category: Football,
		Checkpoints: []Checkpoint{
			cp("p1", "1st Quarter", "0.10"),
			cp("p2", "Halftime", "0.20"),
			cp("p3", "3rd Quarter", "0"),
			cp("final", "Final", "0.50"),
		},
		House: decimal.RequireFromString("0.20"),
	},
	Basketball: {
		Category: Basketball,
		Checkpoints: []Checkpoint{
			cp("p1", "1st Quarter", "0.20"),
			cp("p2", "Halftime", "0.25"),
			cp("p3", "3rd Quarter", "0.20"),
			cp("final", "Final", "0.35"),
		},
		House: decimal.Zero,
	},
	Soccer: {
		Category: Soccer,
		Checkpoints: []Checkpoint{
			cp("p1", "Halftime", "0.40"),
			cp("final", "Full Time", "0.60"),
		},
		House: decimal.Zero,
	},
	Default: {
		Category: Default,
		Checkpoints: []Checkpoint{
			cp("p1", "Period 1", "0.25"),
			cp("p2", "Period 2", "0.25"),
			cp("p3", "Period 3", "0.25"),
			cp("final", "Final", "0.25"),
		},
		House: decimal.Zero,
	},
}

// ScheduleFor returns the schedule of c. Unknown categories get the Default schedule.
// The returned value is a copy and may be modified by the caller.
func ScheduleFor(c Category) Schedule {
	var s Schedule
	switch c {
	case Football, Basketball, Soccer, Default:
		s = schedules[c]
	default:
		s = schedules[Default]
	}
	s.Checkpoints = append([]Checkpoint(nil), s.Checkpoints...)
	return s
}

var (
	ErrEmptySchedule    = errors.New("schedule has no checkpoints")
	ErrFractionSum      = errors.New("schedule fractions do not sum to 1")
	ErrNegativeFraction = errors.New("schedule fraction is negative")
	ErrDuplicateKey     = errors.New("schedule has a duplicate checkpoint key")
)

// Validate checks the static invariants of a schedule definition.
func Validate(s Schedule) error {
	if len(s.Checkpoints) == 0 {
		return fmt.Errorf("%s: %w", s.Category, ErrEmptySchedule)
	}
	if s.House.IsNegative() {
		return fmt.Errorf("%s house: %w", s.Category, ErrNegativeFraction)
	}
	seen := make(map[string]struct{}, len(s.Checkpoints))
	sum := s.House
	for _, c := range s.Checkpoints {
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("%s %q: %w", s.Category, c.Key, ErrDuplicateKey)
		}
		seen[c.Key] = struct{}{}
		if c.Fraction.IsNegative() {
			return fmt.Errorf("%s %q: %w", s.Category, c.Key, ErrNegativeFraction)
		}
		sum = sum.Add(c.Fraction)
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s sums to %s: %w", s.Category, sum, ErrFractionSum)
	}
	return nil
}

// ValidateAll validates the schedule of every Category.
func ValidateAll() error {
	var errs []error
	for _, c := range Categories {
		if err := Validate(ScheduleFor(c)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
