package payout

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxPot is the largest pot Calculate accepts; larger pots are capped so every
// Amount and the Total fit in an int64.
var MaxPot = decimal.NewFromInt(math.MaxInt64)

// Entry is the amount paid at one checkpoint.
type Entry struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Table is a PayoutTable: always rebuilt whole from a pot and a Category.
type Table struct {
	Category Category        `json:"category"`
	Pot      decimal.Decimal `json:"pot"`
	Entries  []Entry         `json:"entries"`
}

func (t Table) Get(key string) (int64, bool) {
	for _, e := range t.Entries {
		if e.Key == key {
			return e.Amount, true
		}
	}
	return 0, false
}

// Total is the sum of all entries. It never exceeds Pot.
func (t Table) Total() int64 {
	var total int64
	for _, e := range t.Entries {
		total += e.Amount
	}
	return total
}

// Residue is the part of the pot not paid at any checkpoint (house share plus rounding).
func (t Table) Residue() decimal.Decimal {
	return t.Pot.Sub(decimal.NewFromInt(t.Total()))
}

func (t Table) Map() map[string]int64 {
	m := make(map[string]int64, len(t.Entries))
	for _, e := range t.Entries {
		m[e.Key] = e.Amount
	}
	return m
}

// Calculate pays floor(pot × fraction) at every checkpoint of c's schedule.
// Negative pots count as zero and pots above MaxPot count as MaxPot.
// Rounding residue is not redistributed.
func Calculate(pot decimal.Decimal, c Category) Table {
	switch {
	case pot.IsNegative():
		pot = decimal.Zero
	case pot.GreaterThan(MaxPot):
		pot = MaxPot
	}

	s := ScheduleFor(c)
	t := Table{
		Category: s.Category,
		Pot:      pot,
		Entries:  make([]Entry, 0, len(s.Checkpoints)),
	}
	for _, cp := range s.Checkpoints {
		t.Entries = append(t.Entries, Entry{
			Key:    cp.Key,
			Label:  cp.Label,
			Amount: pot.Mul(cp.Fraction).Floor().IntPart(),
		})
	}
	return t
}

func CalculateInt(pot int64, c Category) Table {
	return Calculate(decimal.NewFromInt(pot), c)
}

var legacyCheckpoints = map[string]string{
	"q1":    "p1",
	"q2":    "p2",
	"q3":    "p3",
	"final": "final",
}

// MigrateLegacyCheckpoint maps the q1/q2/q3/final naming to p1/p2/p3/final.
// Anything else maps to "final".
func MigrateLegacyCheckpoint(old string) string {
	if key, ok := legacyCheckpoints[old]; ok {
		return key
	}
	return "final"
}

// IsLegacyCheckpoint reports whether key belongs to the legacy naming scheme.
func IsLegacyCheckpoint(key string) bool {
	_, ok := legacyCheckpoints[key]
	return ok
}
