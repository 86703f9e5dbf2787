package roller

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAnimal = errors.New("bet animal is not a die face")
	ErrInvalidStake  = errors.New("bet stake must be positive")
)

// Bet is a stake placed on one animal before the dice are thrown.
type Bet struct {
	Player string          `json:"player"`
	Animal Animal          `json:"animal"`
	Stake  decimal.Decimal `json:"stake"`
}

// Settlement is the result of one Bet against an Outcome.
type Settlement struct {
	Bet     Bet             `json:"bet"`
	Matches int             `json:"matches"`
	Payout  decimal.Decimal `json:"payout"` // returned to the player, stake included
	Net     decimal.Decimal `json:"net"`    // payout minus stake
}

// Validate checks a bet before it is accepted.
func (b Bet) Validate() error {
	if !b.Animal.Valid() {
		return fmt.Errorf("%d: %w", b.Animal, ErrInvalidAnimal)
	}
	if !b.Stake.IsPositive() {
		return fmt.Errorf("%s: %w", b.Stake, ErrInvalidStake)
	}
	return nil
}

// Settle pays each bet once per matching die on top of the returned stake.
// A bet with no matching die loses its stake.
func Settle(bets []Bet, o Outcome) ([]Settlement, error) {
	out := make([]Settlement, 0, len(bets))
	for i, b := range bets {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("bet %d: %w", i, err)
		}
		n := o.Count(b.Animal)
		payout := decimal.Zero
		if n > 0 {
			payout = b.Stake.Mul(decimal.NewFromInt(int64(n + 1)))
		}
		out = append(out, Settlement{
			Bet:     b,
			Matches: n,
			Payout:  payout,
			Net:     payout.Sub(b.Stake),
		})
	}
	return out, nil
}
