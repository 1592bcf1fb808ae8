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
)

// GameStatus is the live state of a baseball game. It is a pure function of
// the events applied to it, so replaying the same event list always lands on
// the same status.
type GameStatus struct {
	Rosters      map[string]*Roster `json:"rosters"`
	Inning       int                `json:"inning"`
	TeamAtBat    string             `json:"teamAtBat"`
	TeamFielding string             `json:"teamFielding"`
	Score        map[string]int     `json:"score"`
	Outs         int                `json:"outs"`
	Bases        Bases              `json:"bases"`
	Balls        int                `json:"balls"`
	Strikes      int                `json:"strikes"`
	GameOver     bool               `json:"gameOver"`
	Batter       string             `json:"batter"`
	Pitcher      string             `json:"pitcher"`
	// GameDate duplicates the metadata date so box score events can carry
	// one without reaching outside the status.
	GameDate string `json:"gameDate"`
	// ExcessOuts flags a half inning that ran past three outs. That never
	// happens on correctly parsed data, so it doubles as a parser check.
	ExcessOuts bool `json:"excessOuts"`
	// LastBatterCharged records, per team, whether the batter who just
	// finished was charged with a plate appearance. An inning ending on a
	// caught stealing leaves the batter's turn intact.
	LastBatterCharged map[string]bool `json:"lastBatterCharged"`

	eventBuffer []BoxScoreEvent
}

// NewGameStatus sets up the top of the first inning. The rosters belong to
// the status afterwards; pass clones if the originals must stay pristine.
func NewGameStatus(rosters map[string]*Roster, gameDate string) *GameStatus {
	s := &GameStatus{
		Rosters:           rosters,
		Inning:            1,
		TeamAtBat:         Away,
		TeamFielding:      Home,
		Score:             map[string]int{Home: 0, Away: 0},
		GameDate:          gameDate,
		LastBatterCharged: map[string]bool{Home: true, Away: true},
	}
	s.updatePlateMatchup()
	s.buffer(CallPitcher(s.Pitcher, s.GameDate))
	s.buffer(CallPitcher(s.Rosters[Away].CurrentPitcher(), s.GameDate))
	s.buffer(PlateAppearance(s.Pitcher, s.Batter, false))
	return s
}

func (s *GameStatus) String() string {
	return fmt.Sprintf("Inning: %d         At Bat:  %s\n", s.Inning, s.TeamAtBat) +
		fmt.Sprintf("Score:  %d-%d\n", s.Score[Away], s.Score[Home]) +
		fmt.Sprintf("Outs:   %d         Count:   %d-%d\n", s.Outs, s.Balls, s.Strikes) +
		fmt.Sprintf("Batter: %s  Pitcher: %s\n", s.Batter, s.Pitcher) +
		fmt.Sprintf("Bases:  %v\n", s.Bases.Runners) +
		fmt.Sprintf("Game Over: %t", s.GameOver)
}

// Apply advances the game state by one event.
func (s *GameStatus) Apply(e Event) error {
	switch ev := e.(type) {
	case *Pitch:
		return s.applyPitch(ev)
	case *BattedBall:
		s.applyBattedBall(ev)
	case *BaseRunning:
		s.applyBaseRunning(ev)
	case *Substitution:
		s.applySubstitution(*ev)
	case *HandednessAdjustment:
		// Handedness has no effect on game state.
	case *GameCalled:
		s.GameOver = true
	default:
		return fmt.Errorf("unknown event type %T", e)
	}
	return nil
}

func (s *GameStatus) applySubstitution(sub Substitution) {
	old := s.Rosters[sub.Team].Substitute(sub)
	if sub.Fielding == PosPitcher {
		s.buffer(CallPitcher(sub.PlayerID, s.GameDate))
	}
	if old != sub.PlayerID {
		s.Bases.Substitute(old, sub.PlayerID)
	}
	s.updatePlateMatchup()
}

func (s *GameStatus) applyBattedBall(b *BattedBall) {
	s.updateBases(b.Advances)
	if b.Advances.Batter != StillActive {
		s.nextBatter()
	}
}

func (s *GameStatus) applyBaseRunning(b *BaseRunning) {
	s.updateBases(b.Advances)
	if b.Advances.Batter == StillActive {
		s.updateBatter()
	} else {
		s.nextBatter()
	}
}

func (s *GameStatus) applyPitch(p *Pitch) error {
	switch p.Outcome {
	case PitchFoul:
		s.buffer(PitchThrown(s.Pitcher))
		if s.Strikes < 2 {
			s.Strikes++
		}
	case PitchStrike:
		s.buffer(PitchThrown(s.Pitcher))
		s.Strikes++
	case PitchFoulBunt:
		s.buffer(PitchThrown(s.Pitcher))
		s.Strikes++
	case PitchBall:
		s.buffer(PitchThrown(s.Pitcher))
		s.Balls++
	case PitchHitByPitch:
		s.buffer(PitchThrown(s.Pitcher))
		s.buffer(HitByPitch(s.Pitcher, s.Batter))
		s.Score[s.TeamAtBat] += s.Bases.Walk(s.Batter)
		s.GameOver = s.homeTeamWon()
		s.nextBatter()
	case PitchBalk:
		s.buffer(BalkCalled(s.Pitcher))
		s.Score[s.TeamAtBat] += s.Bases.Balk()
		s.GameOver = s.homeTeamWon()
	case PitchContact:
		// The interesting information is in the batted ball event that
		// immediately follows.
		s.buffer(PitchThrown(s.Pitcher))
	case PitchPickoff:
		// Any interesting outcome will be in a base running event that
		// immediately follows.
		runner := s.Bases.Runners[p.Destination]
		s.buffer(PickoffThrow(s.Pitcher, runner))
	default:
		return fmt.Errorf("unknown pitch outcome %q", p.Outcome)
	}
	if !p.PlayOnPitch {
		s.updateBatter()
	}
	return nil
}

// Getter methods

// BasesVector returns a 0/1 occupancy vector, first base first.
func (s *GameStatus) BasesVector() [3]int {
	return s.Bases.Occupied()
}

func (s *GameStatus) HomePitcher() string {
	return s.Rosters[Home].CurrentPitcher()
}

func (s *GameStatus) AwayPitcher() string {
	return s.Rosters[Away].CurrentPitcher()
}

// ClearEventBuffer returns the buffered box score events and empties the
// buffer.
func (s *GameStatus) ClearEventBuffer() []BoxScoreEvent {
	events := s.eventBuffer
	s.eventBuffer = nil
	return events
}

// Support methods

func (s *GameStatus) buffer(e BoxScoreEvent) {
	s.eventBuffer = append(s.eventBuffer, e)
}

func (s *GameStatus) updatePlateMatchup() {
	s.Batter = s.Rosters[s.TeamAtBat].CurrentBatter()
	s.Pitcher = s.Rosters[s.TeamFielding].CurrentPitcher()
}

func (s *GameStatus) updateBatter() {
	switch {
	case s.Strikes == 3:
		s.strikeout()
	case s.Balls == 4:
		s.walk()
	case s.isHalfInningOver():
		// Three outs made by the runners, not the batter. The batter
		// keeps the turn and is not charged with a plate appearance.
		s.buffer(PlateAppearance(s.Pitcher, s.Batter, true))
		s.LastBatterCharged[s.TeamAtBat] = false
		s.nextBatter()
	}
}

func (s *GameStatus) strikeout() {
	s.buffer(Strikeout(s.Pitcher, s.Batter))
	s.Outs++
	s.nextBatter()
}

func (s *GameStatus) walk() {
	s.buffer(Walked(s.Pitcher, s.Batter))
	s.Score[s.TeamAtBat] += s.Bases.Walk(s.Batter)
	s.GameOver = s.homeTeamWon()
	s.nextBatter()
}

func (s *GameStatus) updateBases(adv Advances) {
	runs, outs := s.Bases.Hit(s.Batter, adv)
	s.Score[s.TeamAtBat] += runs
	s.Outs += outs
	s.GameOver = s.homeTeamWon()
}

func (s *GameStatus) nextBatter() {
	s.Balls = 0
	s.Strikes = 0

	if s.isHalfInningOver() {
		s.switchSides()
	}
	if s.LastBatterCharged[s.TeamAtBat] {
		s.Rosters[s.TeamAtBat].NextBatter()
	} else {
		s.LastBatterCharged[s.TeamAtBat] = true
	}
	s.updatePlateMatchup()
	s.buffer(PlateAppearance(s.Pitcher, s.Batter, false))
}

func (s *GameStatus) switchSides() {
	s.TeamAtBat, s.TeamFielding = s.TeamFielding, s.TeamAtBat
	s.Bases.SwitchSides()
	s.updatePlateMatchup()

	s.Outs = 0
	if s.TeamAtBat == Away {
		s.Inning++
	}
	s.GameOver = s.homeTeamWon() || s.awayTeamWon()
}

func (s *GameStatus) isHalfInningOver() bool {
	if s.Outs > 3 {
		s.ExcessOuts = true
	}
	return s.Outs >= 3
}

func (s *GameStatus) homeTeamWon() bool {
	return s.Inning >= 9 && s.TeamAtBat == Home && s.Score[Home] > s.Score[Away]
}

func (s *GameStatus) awayTeamWon() bool {
	return s.Inning > 9 && s.TeamAtBat == Away && s.Score[Away] > s.Score[Home]
}
