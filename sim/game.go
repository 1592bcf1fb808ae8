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

// Game represents a baseball game in enough detail to reconstruct it pitch by
// pitch. The initial rosters and the event list are the durable record; the
// status is derived by replay.
type Game struct {
	Metadata *Metadata
	// InitialRosters holds the lineups as they were before the first
	// pitch. The status gets clones so these stay pristine.
	InitialRosters map[string]*Roster
	Events         []Event
	Status         *GameStatus

	// Players, when set, accumulates pitcher workload as events apply.
	Players *Players

	eventNdx int
}

// NewGame builds a game from its parts and stands the status up at the top of
// the first inning.
func NewGame(md *Metadata, rosters map[string]*Roster, events []Event, players *Players) (*Game, error) {
	g := &Game{
		Metadata:       md,
		InitialRosters: rosters,
		Events:         events,
		Players:        players,
	}
	g.Reset()
	if g.Players != nil {
		if err := g.Players.Tabulate(CallPitcher(g.Status.HomePitcher(), md.GameDate)); err != nil {
			return nil, err
		}
		if err := g.Players.Tabulate(CallPitcher(g.Status.AwayPitcher(), md.GameDate)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func cloneRosters(rosters map[string]*Roster) map[string]*Roster {
	clones := make(map[string]*Roster, len(rosters))
	for team, r := range rosters {
		clones[team] = r.Clone()
	}
	return clones
}

// Reset rewinds the game to before the first pitch.
func (g *Game) Reset() {
	g.Status = NewGameStatus(cloneRosters(g.InitialRosters), g.Metadata.GameDate)
	g.eventNdx = 0
}

func (g *Game) String() string {
	return g.Status.String()
}

// NextEvent returns the next unapplied event, or nil at the end of the game.
func (g *Game) NextEvent() Event {
	if g.eventNdx >= len(g.Events) {
		return nil
	}
	return g.Events[g.eventNdx]
}

// ApplyNextEvent applies the next event and advances the replay cursor.
func (g *Game) ApplyNextEvent() error {
	e := g.NextEvent()
	if e == nil {
		return fmt.Errorf("game %s: no events left to apply", g.Metadata.ID)
	}
	if err := g.ApplyEvent(e); err != nil {
		return err
	}
	g.eventNdx++
	return nil
}

// ApplyEvent applies one event to the current status without touching the
// cursor.
func (g *Game) ApplyEvent(e Event) error {
	if err := g.Status.Apply(e); err != nil {
		return err
	}
	if g.Players != nil {
		return g.updatePitcher(e)
	}
	return nil
}

func (g *Game) updatePitcher(e Event) error {
	switch ev := e.(type) {
	case *Pitch:
		if ev.Outcome == PitchPickoff {
			return g.Players.Tabulate(PickoffThrow(g.Status.Pitcher, ""))
		}
		if ev.Threw {
			return g.Players.Tabulate(PitchThrown(g.Status.Pitcher))
		}
	case *Substitution:
		if ev.Fielding == PosPitcher {
			return g.Players.Tabulate(CallPitcher(ev.PlayerID, g.Metadata.GameDate))
		}
	}
	return nil
}

// VerifyEnding replays the game and reports whether it ends exactly at the
// last event: not a play earlier, not still running after, and with no half
// inning that counted more than three outs. The game is left rewound.
func (g *Game) VerifyEnding() (bool, error) {
	if err := g.fastForwardToPenultimate(); err != nil {
		return false, err
	}
	if g.Status.GameOver {
		g.Reset()
		return false, nil
	}
	if err := g.ApplyNextEvent(); err != nil {
		return false, err
	}
	over := g.Status.GameOver && !g.Status.ExcessOuts
	g.Reset()
	return over, nil
}

func (g *Game) fastForwardToPenultimate() error {
	if g.eventNdx > 0 {
		g.Reset()
	}
	for i := 0; i < len(g.Events)-1; i++ {
		if err := g.ApplyNextEvent(); err != nil {
			return err
		}
	}
	return nil
}

// gameRecord is the serialized shape of a game.
type gameRecord struct {
	Metadata *Metadata          `json:"metadata"`
	Rosters  map[string]*Roster `json:"rosters"`
	Events   []json.RawMessage  `json:"events"`
}

func (g *Game) MarshalJSON() ([]byte, error) {
	rec := gameRecord{
		Metadata: g.Metadata,
		Rosters:  g.InitialRosters,
		Events:   make([]json.RawMessage, 0, len(g.Events)),
	}
	for _, e := range g.Events {
		raw, err := MarshalEvent(e)
		if err != nil {
			return nil, err
		}
		rec.Events = append(rec.Events, raw)
	}
	return json.Marshal(rec)
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var rec gameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	events := make([]Event, 0, len(rec.Events))
	for _, raw := range rec.Events {
		e, err := UnmarshalEvent(raw)
		if err != nil {
			return err
		}
		events = append(events, e)
	}
	g.Metadata = rec.Metadata
	if g.Metadata == nil {
		g.Metadata = &Metadata{}
	}
	g.InitialRosters = rec.Rosters
	g.Events = events
	g.Reset()
	return nil
}
