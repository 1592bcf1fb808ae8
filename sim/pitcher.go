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

import "time"

const gameDateLayout = "2006/01/02"

// Pitcher tracks the in-game and between-game workload of one pitcher.
// Pitcher effectiveness degrades with workload, so models downstream want
// pitch counts per game and per at bat, and days of rest between outings.
type Pitcher struct {
	ID string `json:"id"`

	// The -1s keep callers from mistaking an uninitialized pitcher for a
	// fresh one.
	PitchCountGame    int `json:"pitchCountGame"`
	PickoffCountGame  int `json:"pickoffCountGame"`
	PitchCountAtBat   int `json:"pitchCountAtBat"`
	PickoffCountAtBat int `json:"pickoffCountAtBat"`

	LastGameDate      time.Time `json:"lastGameDate"`
	DaysSinceLastGame int       `json:"daysSinceLastGame"`
	PitchesAtLastGame int       `json:"pitchesAtLastGame"`
}

func NewPitcher(id string) *Pitcher {
	return &Pitcher{
		ID:                id,
		PitchCountGame:    -1,
		PickoffCountGame:  -1,
		PitchCountAtBat:   -1,
		PickoffCountAtBat: -1,
		LastGameDate:      time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Call puts the pitcher on the mound. Starters are called at the beginning of
// the game. The date is Retrosheet's YYYY/MM/DD spelling.
func (p *Pitcher) Call(gameDate string) error {
	date, err := time.Parse(gameDateLayout, gameDate)
	if err != nil {
		return err
	}
	p.PitchesAtLastGame = p.PitchCountGame
	p.DaysSinceLastGame = int(date.Sub(p.LastGameDate).Hours() / 24)
	p.LastGameDate = date
	p.PitchCountGame = 0
	p.PickoffCountGame = 0
	p.NextBatter()
	return nil
}

func (p *Pitcher) NextBatter() {
	p.PitchCountAtBat = 0
	p.PickoffCountAtBat = 0
}

func (p *Pitcher) Pitch() {
	p.PitchCountAtBat++
	p.PitchCountGame++
}

func (p *Pitcher) Pickoff() {
	p.PickoffCountAtBat++
	p.PickoffCountGame++
}

// Players is a pool of player state keyed by Retrosheet ID. New pitchers are
// inserted on first reference so a season of games can be replayed through a
// single pool.
type Players struct {
	Pitchers map[string]*Pitcher `json:"pitchers"`
}

func NewPlayers() *Players {
	return &Players{Pitchers: make(map[string]*Pitcher)}
}

func (pl *Players) pitcher(id string) *Pitcher {
	p, ok := pl.Pitchers[id]
	if !ok {
		p = NewPitcher(id)
		pl.Pitchers[id] = p
	}
	return p
}

// Tabulate updates player state from one box score event.
func (pl *Players) Tabulate(e BoxScoreEvent) error {
	switch e.Name {
	case BoxCallPitcher:
		return pl.pitcher(e.Pitcher).Call(e.Date)
	case BoxPlateAppearance:
		if !e.Decrement {
			pl.pitcher(e.Pitcher).NextBatter()
		}
	case BoxPitch:
		pl.pitcher(e.Pitcher).Pitch()
	case BoxPickoff:
		pl.pitcher(e.Pitcher).Pickoff()
	}
	return nil
}
