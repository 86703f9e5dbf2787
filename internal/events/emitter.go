package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	TypeAxesGenerated       = "axes.generated"
	TypePayoutsComputed     = "payouts.computed"
	TypeRollResolved        = "baucua.rolled"
	TypeSelectionReconciled = "selection.reconciled"
)

type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	GameID    string `json:"game_id"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher is the subset of *nats.Conn the emitter needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Sink receives engine events. Emitter and Discard implement it.
type Sink interface {
	Emit(eventType, gameID string, data any) error
}

type Emitter struct {
	conn          Publisher
	closer        func()
	subjectPrefix string
	now           func() time.Time
}

func NewEmitter(natsURL, subjectPrefix string) (*Emitter, error) {
	conn, err := nats.Connect(natsURL, nats.Name("squares-engine"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	e := NewEmitterWithPublisher(conn, subjectPrefix)
	e.closer = conn.Close
	return e, nil
}

// NewEmitterWithPublisher wraps an existing connection; Close does not close it.
func NewEmitterWithPublisher(conn Publisher, subjectPrefix string) *Emitter {
	return &Emitter{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		now:           time.Now,
	}
}

// Subject returns the subject an event type is published on.
func (e *Emitter) Subject(eventType string) string {
	if e.subjectPrefix == "" {
		return eventType
	}
	return e.subjectPrefix + "." + eventType
}

func (e *Emitter) Emit(eventType, gameID string, data any) error {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GameID:    gameID,
		Data:      data,
		Timestamp: e.now().UnixMilli(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	if err := e.conn.Publish(e.Subject(eventType), payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (e *Emitter) Close() {
	if e.closer != nil {
		e.closer()
	}
}

type discard struct{}

// Discard drops every event. Used when NATS is disabled.
var Discard Sink = discard{}

func (discard) Emit(string, string, any) error { return nil }
