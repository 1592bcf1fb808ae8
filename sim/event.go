// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sim

import (
	"encoding/json"
	"fmt"
)

// Event type tags, as written on the wire.
const (
	EventPitch        = "pitch"
	EventBattedBall   = "batted_ball"
	EventBaseRunning  = "base_running"
	EventSubstitution = "substitution"
	EventHandedness   = "handedness_adjustment"
	EventGameCalled   = "game_called"
)

// Event is the closed union of things that can happen in a game. Every
// implementation lives in this package; the state machine switches over the
// concrete types exhaustively.
type Event interface {
	EventType() string
}

func (p *Pitch) EventType() string                { return EventPitch }
func (b *BattedBall) EventType() string           { return EventBattedBall }
func (b *BaseRunning) EventType() string          { return EventBaseRunning }
func (s *Substitution) EventType() string         { return EventSubstitution }
func (h *HandednessAdjustment) EventType() string { return EventHandedness }
func (g *GameCalled) EventType() string           { return EventGameCalled }

// eventRecord is the serialized envelope for one event.
type eventRecord struct {
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// MarshalEvent serializes one event with its type tag.
func MarshalEvent(e Event) (json.RawMessage, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(eventRecord{EventType: e.EventType(), Payload: payload})
}

// UnmarshalEvent deserializes one tagged event record.
func UnmarshalEvent(raw json.RawMessage) (Event, error) {
	var rec eventRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("malformed event record: %w", err)
	}
	var e Event
	switch rec.EventType {
	case EventPitch:
		e = &Pitch{}
	case EventBattedBall:
		e = &BattedBall{}
	case EventBaseRunning:
		e = &BaseRunning{}
	case EventSubstitution:
		e = &Substitution{}
	case EventHandedness:
		e = &HandednessAdjustment{}
	case EventGameCalled:
		e = &GameCalled{}
	default:
		return nil, fmt.Errorf("unknown event type %q", rec.EventType)
	}
	if len(rec.Payload) > 0 {
		if err := json.Unmarshal(rec.Payload, e); err != nil {
			return nil, fmt.Errorf("event %s: %w", rec.EventType, err)
		}
	}
	return e, nil
}
