package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fystack/squares-pool/internal/kvstore"
)

const (
	DefaultExpiry    = 30 * time.Minute
	DefaultKeyPrefix = "pendingSquares_"

	// MaxClockSkew is how far in the future a record timestamp may lie before it is rejected.
	MaxClockSkew = time.Minute
)

var ErrInvalidSelection = errors.New("invalid pending selection")

// PendingSelection is a claim attempt saved while the player signs in.
type PendingSelection struct {
	GameID    string    `json:"gameId"`
	Squares   []int     `json:"squares"`
	CreatedAt time.Time `json:"timestamp"`
}

// storedSelection is decoded loosely so malformed records can be told apart from valid ones.
type storedSelection struct {
	GameID    string          `json:"gameId"`
	Squares   json.RawMessage `json:"squares"`
	CreatedAt time.Time       `json:"timestamp"`
}

// PendingStore keeps at most one PendingSelection per game in a KVStore.
// Every read failure is reported as "no pending selection".
type PendingStore struct {
	kv     kvstore.KVStore
	prefix string
	expiry time.Duration
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*PendingStore)

func WithExpiry(d time.Duration) Option {
	return func(p *PendingStore) {
		if d > 0 {
			p.expiry = d
		}
	}
}

func WithKeyPrefix(prefix string) Option {
	return func(p *PendingStore) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *PendingStore) { p.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *PendingStore) { p.log = l }
}

func NewPendingStore(kv kvstore.KVStore, opts ...Option) *PendingStore {
	p := &PendingStore{
		kv:     kv,
		prefix: DefaultKeyPrefix,
		expiry: DefaultExpiry,
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PendingStore) key(gameID string) string {
	return p.prefix + gameID
}

// Save records squares for gameID, replacing any earlier selection for that game.
func (p *PendingStore) Save(gameID string, squares []int) error {
	if gameID == "" {
		return fmt.Errorf("%w: empty game id", ErrInvalidSelection)
	}
	if len(squares) == 0 {
		return fmt.Errorf("%w: no squares", ErrInvalidSelection)
	}
	for _, sq := range squares {
		if sq < 0 || sq >= NumSquares {
			return fmt.Errorf("%w: square %d out of range", ErrInvalidSelection, sq)
		}
	}

	data, err := json.Marshal(PendingSelection{
		GameID:    gameID,
		Squares:   append([]int(nil), squares...),
		CreatedAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal pending selection: %w", err)
	}

	if ttl, ok := p.kv.(kvstore.TTLStore); ok {
		err = ttl.SetWithTTL(p.key(gameID), data, p.expiry)
	} else {
		err = p.kv.Set(p.key(gameID), data)
	}
	if err != nil {
		return fmt.Errorf("failed to store pending selection: %w", err)
	}
	return nil
}

// Load returns the live pending selection for gameID. Missing, unreadable, malformed,
// mismatched and expired records all yield false; expired records are also removed.
func (p *PendingStore) Load(gameID string) (PendingSelection, bool) {
	data, err := p.kv.Get(p.key(gameID))
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			p.log.Warn("Read pending selection failed", "game_id", gameID, "err", err)
		}
		return PendingSelection{}, false
	}

	sel, err := decodeSelection(data)
	if err != nil {
		p.log.Warn("Discarding malformed pending selection", "game_id", gameID, "err", err)
		return PendingSelection{}, false
	}
	if sel.GameID != gameID {
		p.log.Debug("Ignoring pending selection for another game", "game_id", gameID, "stored_game_id", sel.GameID)
		return PendingSelection{}, false
	}
	now := p.now()
	if sel.CreatedAt.After(now.Add(MaxClockSkew)) {
		p.log.Warn("Discarding future-dated pending selection", "game_id", gameID, "created_at", sel.CreatedAt)
		_ = p.Clear(gameID)
		return PendingSelection{}, false
	}
	if now.Sub(sel.CreatedAt) > p.expiry {
		p.log.Debug("Pending selection expired", "game_id", gameID, "created_at", sel.CreatedAt)
		_ = p.Clear(gameID)
		return PendingSelection{}, false
	}
	return sel, true
}

// Consume reconciles the pending selection of gameID against occ and removes it.
// It reports false when there was no live selection to reconcile, or when the
// record could not be removed and might otherwise be reconciled again.
func (p *PendingStore) Consume(gameID string, occ Occupancy) (Result, bool) {
	sel, ok := p.Load(gameID)
	if !ok {
		return Result{}, false
	}
	if err := p.Clear(gameID); err != nil {
		return Result{}, false
	}
	return Reconcile(sel.Squares, occ), true
}

// Clear removes the pending selection of gameID, if any. A missing record is not an error.
func (p *PendingStore) Clear(gameID string) error {
	if err := p.kv.Delete(p.key(gameID)); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		p.log.Warn("Remove pending selection failed", "game_id", gameID, "err", err)
		return fmt.Errorf("failed to remove pending selection: %w", err)
	}
	return nil
}

func decodeSelection(data []byte) (PendingSelection, error) {
	var raw storedSelection
	if err := json.Unmarshal(data, &raw); err != nil {
		return PendingSelection{}, err
	}
	if raw.GameID == "" {
		return PendingSelection{}, fmt.Errorf("%w: missing game id", ErrInvalidSelection)
	}
	if raw.CreatedAt.IsZero() {
		return PendingSelection{}, fmt.Errorf("%w: missing timestamp", ErrInvalidSelection)
	}

	var squares []int
	if err := json.Unmarshal(raw.Squares, &squares); err != nil || squares == nil {
		return PendingSelection{}, fmt.Errorf("%w: squares is not a list of indices", ErrInvalidSelection)
	}
	for _, sq := range squares {
		if sq < 0 || sq >= NumSquares {
			return PendingSelection{}, fmt.Errorf("%w: square %d out of range", ErrInvalidSelection, sq)
		}
	}
	return PendingSelection{GameID: raw.GameID, Squares: squares, CreatedAt: raw.CreatedAt}, nil
}
