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
	"fmt"
	"strconv"
)

// Fielding positions, by longstanding baseball convention. Index 0 of a
// fielding array is left open so positions 1-9 line up with the scorecard
// numbers; 10-12 are the designated hitter, pinch hitter, and pinch runner.
const (
	PosPitcher         = 1
	PosCatcher         = 2
	PosFirstBase       = 3
	PosSecondBase      = 4
	PosThirdBase       = 5
	PosShortstop       = 6
	PosLeftField       = 7
	PosCenterField     = 8
	PosRightField      = 9
	PosDesignatedHit   = 10
	PosPinchHitter     = 11
	PosPinchRunner     = 12
	numFieldingSlots   = 13
	numBattingSlots    = 10
	battingOrderLength = 9
)

// Roster represents one team's lineup and player availability during a game.
// All slots hold Retrosheet player IDs; "" means empty.
type Roster struct {
	// Batting is the batting order. The length is 10 to accommodate the
	// designated hitter rule: in DH games Batting[9] is the pitcher, in
	// non-DH games it is empty.
	Batting [numBattingSlots]string `json:"batting"`
	// Fielding holds the current fielder at each position code.
	Fielding [numFieldingSlots]string `json:"fielding"`
	// Bench is the fielders (non-pitchers) who have not played yet.
	Bench []string `json:"bench,omitempty"`
	// Bullpen is the pitchers who have not played yet.
	Bullpen []string `json:"bullpen,omitempty"`
	// Relieved is the players who have been removed from the game.
	Relieved []string `json:"relieved,omitempty"`
	HomeTeam bool     `json:"homeTeam"`
	// CurrentBattingIndex is the batting-order slot of the batter currently
	// at the plate. The home team starts at 8 because NextBatter runs before
	// the first home batter is assigned.
	CurrentBattingIndex int `json:"currentBattingIndex"`
}

// NewRoster creates an empty roster for one side.
func NewRoster(homeTeam bool) *Roster {
	r := &Roster{HomeTeam: homeTeam}
	if homeTeam {
		r.CurrentBattingIndex = 8
	}
	return r
}

// RosterFromRows builds a roster from the "start" rows of a Retrosheet event
// file. Each row carries player id, team indicator, batting slot (1-indexed,
// 0 meaning none), and fielding position code.
func RosterFromRows(rows [][]string) (*Roster, error) {
	const (
		playerNdx   = 1
		teamNdx     = 3
		battingNdx  = 4
		fieldingNdx = 5
	)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no roster rows")
	}
	r := NewRoster(rows[0][teamNdx] == "1")
	for _, row := range rows {
		if len(row) <= fieldingNdx {
			return nil, fmt.Errorf("short roster row: %v", row)
		}
		batting, err := strconv.Atoi(row[battingNdx])
		if err != nil {
			return nil, fmt.Errorf("bad batting slot in %v: %w", row, err)
		}
		fielding, err := strconv.Atoi(row[fieldingNdx])
		if err != nil {
			return nil, fmt.Errorf("bad fielding position in %v: %w", row, err)
		}
		if batting < 0 || batting > numBattingSlots || fielding < 0 || fielding >= numFieldingSlots {
			return nil, fmt.Errorf("roster row out of range: %v", row)
		}
		if batting > 0 {
			r.Batting[batting-1] = row[playerNdx]
		}
		r.Fielding[fielding] = row[playerNdx]
	}
	return r, nil
}

// CurrentBatter returns the ID of the batter currently at the plate.
func (r *Roster) CurrentBatter() string {
	return r.Batting[r.CurrentBattingIndex]
}

// CurrentPitcher returns the ID of the pitcher currently on the mound.
func (r *Roster) CurrentPitcher() string {
	return r.Fielding[PosPitcher]
}

// NextBatter brings the next batter up to the plate. The DH slot never
// participates in the wrap.
func (r *Roster) NextBatter() {
	r.CurrentBattingIndex = (r.CurrentBattingIndex + 1) % battingOrderLength
}

// Substitute applies a substitution to the lineup and returns the ID of the
// player that was replaced.
//
// Retrosheet substitution semantics allow a player already in the batting
// order to take a fielding position without being treated as replaced (e.g. a
// pinch hitter staying in the game), which is why the batting-slot replacement
// is conditional while the fielding update is not.
func (r *Roster) Substitute(sub Substitution) string {
	var oldPlayer string
	if sub.Batting >= 0 {
		oldPlayer = r.Batting[sub.Batting]
	}
	if sub.PlayerID != oldPlayer {
		r.relievePlayer(sub, oldPlayer)
		if sub.Batting >= 0 {
			r.Batting[sub.Batting] = sub.PlayerID
		}
	}
	r.substituteFielding(sub, oldPlayer)
	return oldPlayer
}

func (r *Roster) relievePlayer(sub Substitution, oldPlayer string) {
	if oldPlayer != "" {
		r.Relieved = append(r.Relieved, oldPlayer)
	}
	if i := index(r.Bench, sub.PlayerID); i >= 0 {
		r.Bench = append(r.Bench[:i], r.Bench[i+1:]...)
	} else if i := index(r.Bullpen, sub.PlayerID); i >= 0 {
		r.Bullpen = append(r.Bullpen[:i], r.Bullpen[i+1:]...)
	}
}

func (r *Roster) substituteFielding(sub Substitution, oldPlayer string) {
	// The old player leaves whatever position they held, not just the slot
	// being filled; the same record drives both lists independently.
	for i, fielder := range r.Fielding {
		if fielder != "" && fielder == oldPlayer {
			r.Fielding[i] = ""
		}
	}
	if sub.Fielding > 0 && sub.Fielding < numFieldingSlots {
		r.Fielding[sub.Fielding] = sub.PlayerID
	}
}

// Clone returns a deep copy of the roster. Replay mutates rosters, so a game
// keeps its initial rosters pristine and replays against copies.
func (r *Roster) Clone() *Roster {
	c := *r
	c.Bench = append([]string(nil), r.Bench...)
	c.Bullpen = append([]string(nil), r.Bullpen...)
	c.Relieved = append([]string(nil), r.Relieved...)
	return &c
}

func index(list []string, want string) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return -1
}
