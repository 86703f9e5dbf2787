// Package engine wires axis generation, payouts, dice and selection reconciliation for
// the host and player actions of a squares game. It computes values and publishes them;
// writing game documents is left to whoever consumes the events.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fystack/squares-pool/internal/axis"
	"github.com/fystack/squares-pool/internal/events"
	"github.com/fystack/squares-pool/internal/payout"
	"github.com/fystack/squares-pool/internal/reconcile"
	"github.com/fystack/squares-pool/internal/roller"
	"github.com/shopspring/decimal"
)

type Engine struct {
	axes    *axis.Generator
	roller  *roller.Roller
	pending *reconcile.PendingStore
	sink    events.Sink
	log     *slog.Logger
}

type Options struct {
	Generator *axis.Generator
	Roller    *roller.Roller
	Pending   *reconcile.PendingStore
	Sink      events.Sink
	Logger    *slog.Logger
}

// New fills unset options with crypto-backed defaults, a discarding sink and slog's default.
// Pending has no default because it needs a store.
func New(opts Options) (*Engine, error) {
	if opts.Pending == nil {
		return nil, fmt.Errorf("engine: pending store not configured")
	}
	e := &Engine{
		axes:    opts.Generator,
		roller:  opts.Roller,
		pending: opts.Pending,
		sink:    opts.Sink,
		log:     opts.Logger,
	}
	if e.axes == nil {
		e.axes = axis.NewGenerator(nil)
	}
	if e.roller == nil {
		e.roller = roller.New(nil)
	}
	if e.sink == nil {
		e.sink = events.Discard
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e, nil
}

// AxesGenerated is the payload of an axes.generated event.
type AxesGenerated struct {
	League   string          `json:"league"`
	Category payout.Category `json:"category"`
	Axes     axis.AxisSet    `json:"axes"`
}

// StartGame generates a fresh AxisSet for the scored checkpoints of the league's sport.
// Calling it again for the same game is a re-roll and yields an unrelated AxisSet.
func (e *Engine) StartGame(ctx context.Context, gameID, league string) (axis.AxisSet, error) {
	if err := ctx.Err(); err != nil {
		return axis.AxisSet{}, err
	}
	category := payout.DetectSportType(league)
	schedule := payout.ScheduleFor(category)

	set := e.axes.Generate(schedule.ScoredKeys())
	e.log.Info("Axes generated",
		"game_id", gameID,
		"category", category.String(),
		"axis_set", set.ID,
		"checkpoints", len(set.Order),
	)

	if err := e.sink.Emit(events.TypeAxesGenerated, gameID, AxesGenerated{
		League:   league,
		Category: category,
		Axes:     set,
	}); err != nil {
		return set, fmt.Errorf("emit axes for game %s: %w", gameID, err)
	}
	return set, nil
}

// UpdatePot rebuilds the whole payout table for pot and the league's sport.
func (e *Engine) UpdatePot(ctx context.Context, gameID, league string, pot decimal.Decimal) (payout.Table, error) {
	if err := ctx.Err(); err != nil {
		return payout.Table{}, err
	}
	category := payout.DetectSportType(league)
	if category == payout.Default && league != "" {
		e.log.Debug("Unknown league, using default schedule", "game_id", gameID, "league", league)
	}

	table := payout.Calculate(pot, category)
	e.log.Info("Payouts computed",
		"game_id", gameID,
		"category", category.String(),
		"pot", table.Pot.String(),
		"paid", table.Total(),
		"residue", table.Residue().String(),
	)

	if err := e.sink.Emit(events.TypePayoutsComputed, gameID, table); err != nil {
		return table, fmt.Errorf("emit payouts for game %s: %w", gameID, err)
	}
	return table, nil
}

// RollRound resolves one Bau Cua round. A missing entropy source is returned as is.
func (e *Engine) RollRound(ctx context.Context, gameID string) (roller.Roll, error) {
	if err := ctx.Err(); err != nil {
		return roller.Roll{}, err
	}
	roll, err := e.roller.Roll()
	if err != nil {
		e.log.Error("Roll failed", "game_id", gameID, "err", err)
		return roller.Roll{}, err
	}
	e.log.Info("Round rolled", "game_id", gameID, "roll", roll.ID, "animals", roll.Animals)

	if err := e.sink.Emit(events.TypeRollResolved, gameID, roll); err != nil {
		return roll, fmt.Errorf("emit roll for game %s: %w", gameID, err)
	}
	return roll, nil
}

// SavePending remembers squares a signed-out player tried to claim.
func (e *Engine) SavePending(gameID string, squares []int) error {
	return e.pending.Save(gameID, squares)
}

// ResumeClaim reconciles and consumes the pending selection of gameID.
// The returned availability is advisory; the claim write must still be atomic.
func (e *Engine) ResumeClaim(ctx context.Context, gameID string, occ reconcile.Occupancy) (reconcile.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return reconcile.Result{}, false, err
	}
	res, ok := e.pending.Consume(gameID, occ)
	if !ok {
		return reconcile.Result{}, false, nil
	}
	e.log.Info("Pending selection reconciled",
		"game_id", gameID,
		"available", len(res.Available),
		"conflicts", len(res.Conflicts),
	)

	if err := e.sink.Emit(events.TypeSelectionReconciled, gameID, res); err != nil {
		return res, true, fmt.Errorf("emit reconciliation for game %s: %w", gameID, err)
	}
	return res, true, nil
}
