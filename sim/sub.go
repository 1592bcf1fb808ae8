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

// Team sides.
const (
	Home = "home"
	Away = "away"
)

// Substitution represents a player entering the game.
type Substitution struct {
	// PlayerID is the Retrosheet ID of the player entering the game.
	PlayerID string `json:"playerId"`
	// Team is "home" or "away".
	Team string `json:"team"`
	// Batting is the 0-indexed batting order slot, or -1 for none.
	Batting int `json:"batting"`
	// Fielding is the fielding position code of the entering player.
	Fielding int `json:"fielding"`
}

// SubstitutionFromRow parses a "sub" row from a Retrosheet event file.
func SubstitutionFromRow(row []string) (Substitution, error) {
	const (
		playerNdx   = 1
		teamNdx     = 3
		battingNdx  = 4
		fieldingNdx = 5
	)
	if len(row) <= fieldingNdx {
		return Substitution{}, fmt.Errorf("short sub row: %v", row)
	}
	batting, err := strconv.Atoi(row[battingNdx])
	if err != nil {
		return Substitution{}, fmt.Errorf("bad batting slot in %v: %w", row, err)
	}
	fielding, err := strconv.Atoi(row[fieldingNdx])
	if err != nil {
		return Substitution{}, fmt.Errorf("bad fielding position in %v: %w", row, err)
	}
	team := Away
	if row[teamNdx] == "1" {
		team = Home
	}
	return Substitution{
		PlayerID: row[playerNdx],
		Team:     team,
		Batting:  batting - 1,
		Fielding: fielding,
	}, nil
}

// HandednessAdjustment represents an unexpected change in handedness from a
// pitcher or batter. It has no effect on game state.
type HandednessAdjustment struct {
	// Handedness is the new handedness, "R" or "L".
	Handedness string `json:"handedness"`
	// Position is "batter" or "pitcher".
	Position string `json:"position"`
}

// HandednessFromRow parses a "badj" or "padj" row.
func HandednessFromRow(row []string) (HandednessAdjustment, error) {
	const (
		positionNdx   = 0
		handednessNdx = 2
	)
	if len(row) <= handednessNdx {
		return HandednessAdjustment{}, fmt.Errorf("short adjustment row: %v", row)
	}
	position := "pitcher"
	if row[positionNdx] == "badj" {
		position = "batter"
	}
	return HandednessAdjustment{Handedness: row[handednessNdx], Position: position}, nil
}
