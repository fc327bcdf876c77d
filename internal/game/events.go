package game

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// EventChannel is the Redis pub/sub channel every game notification is
// published on. The websocket hub subscribes to it.
const EventChannel = "game_events"

type EventType string

const (
	EventGameCreated    EventType = "game_created"
	EventGameJoined     EventType = "game_joined"
	EventTurnFinished   EventType = "turn_finished"
	EventTimeoutStarted EventType = "timeout_started"
	EventDrawRejected   EventType = "draw_rejected"
	EventGameEnded      EventType = "game_ended"
	EventGameClosed     EventType = "game_closed"
	EventFundsWithdrawn EventType = "funds_withdrawn"
)

// Event is one state-transition notification. Seq is assigned from the
// registry's operation counter, so ordering events by Seq reproduces the
// total order the operations were applied in.
type Event struct {
	Seq    uint64                 `json:"seq"`
	Type   EventType              `json:"type"`
	GameID string                 `json:"game_id"`
	Fields map[string]interface{} `json:"fields,omitempty"`
	At     time.Time              `json:"at"`
}

// publish fans one event out to Redis, the event history table and the
// optional in-process hook. Called with the registry lock held, after the
// state transition has fully applied; none of the sinks can fail it.
func (r *GameRegistry) publish(evType EventType, gameID string, fields map[string]interface{}) {
	r.seq++
	ev := Event{
		Seq:    r.seq,
		Type:   evType,
		GameID: gameID,
		Fields: fields,
		At:     r.now(),
	}

	if r.rdb != nil {
		payload, err := json.Marshal(ev)
		if err == nil {
			if err := r.rdb.Publish(context.Background(), EventChannel, payload).Err(); err != nil {
				log.Printf("[EVENTS] Failed to publish %s for game %s: %v", evType, gameID, err)
			}
		}
	}

	if r.db != nil {
		fieldsJSON, _ := json.Marshal(fields)
		if _, err := r.db.Exec(
			`INSERT INTO game_events (seq, event_type, game_id, fields, created_at) VALUES ($1,$2,$3,$4,$5)`,
			ev.Seq, string(ev.Type), ev.GameID, fieldsJSON, ev.At); err != nil {
			log.Printf("[DB] Failed to insert game_event %s for game %s: %v", evType, gameID, err)
		}
	}

	if r.hook != nil {
		r.hook(ev)
	}
}
