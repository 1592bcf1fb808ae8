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
	"testing"
)

const testGameDate = "2010/04/05"

func newTestStatus(t *testing.T) *GameStatus {
	t.Helper()
	return NewGameStatus(testRosters(t), testGameDate)
}

func applyPitches(t *testing.T, s *GameStatus, codes ...string) {
	t.Helper()
	for _, code := range codes {
		p, err := PitchFromCode(code)
		if err != nil {
			t.Fatalf("PitchFromCode(%q) failed: %v", code, err)
		}
		if err := s.Apply(p); err != nil {
			t.Fatalf("Apply(%q) failed: %v", code, err)
		}
	}
}

func TestStatusInitial(t *testing.T) {
	s := newTestStatus(t)
	if s.Inning != 1 || s.TeamAtBat != Away || s.TeamFielding != Home {
		t.Errorf("initial state: inning %d, at bat %s, fielding %s", s.Inning, s.TeamAtBat, s.TeamFielding)
	}
	if s.Batter != "awa1" || s.Pitcher != "hom1" {
		t.Errorf("plate matchup = %s vs %s, want awa1 vs hom1", s.Batter, s.Pitcher)
	}
	events := s.ClearEventBuffer()
	if len(events) != 3 {
		t.Fatalf("got %d initial events, want 3", len(events))
	}
	if events[0].Name != BoxCallPitcher || events[0].Pitcher != "hom1" || events[0].Date != testGameDate {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1].Name != BoxCallPitcher || events[1].Pitcher != "awa1" {
		t.Errorf("events[1] = %+v", events[1])
	}
	if events[2].Name != BoxPlateAppearance || events[2].Pitcher != "hom1" || events[2].Batter != "awa1" {
		t.Errorf("events[2] = %+v", events[2])
	}
}

func TestStatusStrikeout(t *testing.T) {
	s := newTestStatus(t)
	s.ClearEventBuffer()
	applyPitches(t, s, "C", "S", "2", "S")
	if s.Outs != 1 {
		t.Errorf("Outs = %d, want 1", s.Outs)
	}
	if s.Batter != "awa2" {
		t.Errorf("Batter = %q, want awa2", s.Batter)
	}
	events := s.ClearEventBuffer()
	wantNames := []string{BoxPitch, BoxPitch, BoxPickoff, BoxPitch, BoxStrikeout, BoxPlateAppearance}
	if len(events) != len(wantNames) {
		t.Fatalf("got %d events, want %d", len(events), len(wantNames))
	}
	for i, name := range wantNames {
		if events[i].Name != name {
			t.Errorf("events[%d].Name = %q, want %q", i, events[i].Name, name)
		}
		if events[i].Pitcher != "hom1" {
			t.Errorf("events[%d].Pitcher = %q, want hom1", i, events[i].Pitcher)
		}
	}
	if events[4].Batter != "awa1" {
		t.Errorf("strikeout batter = %q, want awa1", events[4].Batter)
	}
	if events[5].Batter != "awa2" {
		t.Errorf("next plate appearance batter = %q, want awa2", events[5].Batter)
	}
}

func TestStatusWalk(t *testing.T) {
	s := newTestStatus(t)
	applyPitches(t, s, "B", "B", "B", "B")
	if got := s.Bases.Runners[First]; got != "awa1" {
		t.Errorf("runner on first = %q, want awa1", got)
	}
	if s.Batter != "awa2" {
		t.Errorf("Batter = %q, want awa2", s.Batter)
	}
	if s.Balls != 0 || s.Strikes != 0 {
		t.Errorf("count = %d-%d, want 0-0", s.Balls, s.Strikes)
	}
}

func TestStatusFoulCapsAtTwoStrikes(t *testing.T) {
	s := newTestStatus(t)
	applyPitches(t, s, "B", "C", "B", "F", "B", "F")
	if s.Balls != 3 || s.Strikes != 2 {
		t.Errorf("count = %d-%d, want 3-2", s.Balls, s.Strikes)
	}
	// One more foul still doesn't strike the batter out.
	applyPitches(t, s, "F")
	if s.Strikes != 2 || s.Batter != "awa1" {
		t.Errorf("after extra foul: strikes %d, batter %q", s.Strikes, s.Batter)
	}
	// A foul bunt with two strikes would.
	applyPitches(t, s, "L")
	if s.Outs != 1 || s.Batter != "awa2" {
		t.Errorf("foul bunt: outs %d, batter %q", s.Outs, s.Batter)
	}
}

func TestStatusStrikeoutOnFullCount(t *testing.T) {
	s := newTestStatus(t)
	applyPitches(t, s, "B", "C", "B", "F", "B", "F", "S")
	if s.Outs != 1 {
		t.Errorf("Outs = %d, want 1", s.Outs)
	}
	if got := s.Bases.Runners[First]; got != "" {
		t.Errorf("runner on first = %q, want none", got)
	}
	if s.Balls != 0 || s.Strikes != 0 {
		t.Errorf("count = %d-%d, want 0-0", s.Balls, s.Strikes)
	}
}

func TestStatusSideSwitch(t *testing.T) {
	s := newTestStatus(t)
	for i := 0; i < 3; i++ {
		applyPitches(t, s, "C", "C", "C")
	}
	if s.TeamAtBat != Home || s.TeamFielding != Away {
		t.Errorf("at bat %s, fielding %s; want home batting", s.TeamAtBat, s.TeamFielding)
	}
	if s.Outs != 0 || s.Inning != 1 {
		t.Errorf("outs %d, inning %d; want 0 outs, inning 1", s.Outs, s.Inning)
	}
	if s.Batter != "hom1" || s.Pitcher != "awa1" {
		t.Errorf("matchup %s vs %s, want hom1 vs awa1", s.Batter, s.Pitcher)
	}
	// Three more half-inning strikeout sets: top of the second.
	for i := 0; i < 3; i++ {
		applyPitches(t, s, "C", "C", "C")
	}
	if s.Inning != 2 || s.TeamAtBat != Away {
		t.Errorf("inning %d, at bat %s; want inning 2, away", s.Inning, s.TeamAtBat)
	}
}

func TestStatusBattedBall(t *testing.T) {
	s := newTestStatus(t)
	applyPitches(t, s, "X")
	play := BattedBallFromText("S7", NeverAdvance)
	if err := s.Apply(play); err != nil {
		t.Fatalf("Apply batted ball failed: %v", err)
	}
	if got := s.Bases.Runners[First]; got != "awa1" {
		t.Errorf("runner on first = %q, want awa1", got)
	}
	if s.Batter != "awa2" {
		t.Errorf("Batter = %q, want awa2", s.Batter)
	}
}

func TestStatusInningEndingCaughtStealing(t *testing.T) {
	s := newTestStatus(t)
	// Walk the leadoff batter, record two outs, then have the runner erased
	// stealing to end the inning mid-count.
	applyPitches(t, s, "B", "B", "B", "B")
	play := BattedBallFromText("8", NeverAdvance)
	if err := s.Apply(play); err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(BattedBallFromText("8", NeverAdvance)); err != nil {
		t.Fatal(err)
	}
	interrupted := s.Batter
	applyPitches(t, s, "B", ">C")
	running := BaseRunningFromText("CS2(26)", NeverAdvance)
	if err := s.Apply(running); err != nil {
		t.Fatal(err)
	}
	if s.TeamAtBat != Home {
		t.Fatalf("inning should have ended, at bat %s", s.TeamAtBat)
	}
	// The interrupted batter leads off the next inning for their team.
	for i := 0; i < 3; i++ {
		applyPitches(t, s, "C", "C", "C")
	}
	if s.Batter != interrupted {
		t.Errorf("leadoff batter = %q, want %q", s.Batter, interrupted)
	}
}

func TestStatusWalkOff(t *testing.T) {
	s := newTestStatus(t)
	s.Inning = 9
	s.TeamAtBat = Home
	s.TeamFielding = Away
	s.Score[Away] = 3
	s.Score[Home] = 3
	s.updatePlateMatchup()
	s.Bases.Runners[Third] = "hom5"
	play := BattedBallFromText("S8", NeverAdvance)
	play.Advances.Runners[Third] = HomePlate
	if err := s.Apply(play); err != nil {
		t.Fatal(err)
	}
	if !s.GameOver {
		t.Error("home team scoring the lead run in the ninth should end the game")
	}
	if s.Score[Home] != 4 {
		t.Errorf("home score = %d, want 4", s.Score[Home])
	}
}

func TestStatusNoEarlyWalkOff(t *testing.T) {
	s := newTestStatus(t)
	s.Inning = 8
	s.TeamAtBat = Home
	s.TeamFielding = Away
	s.Score[Away] = 0
	s.updatePlateMatchup()
	s.Bases.Runners[Third] = "hom5"
	play := BattedBallFromText("S8", NeverAdvance)
	play.Advances.Runners[Third] = HomePlate
	if err := s.Apply(play); err != nil {
		t.Fatal(err)
	}
	if s.GameOver {
		t.Error("a lead in the eighth does not end the game")
	}
}

func TestStatusExcessOuts(t *testing.T) {
	s := newTestStatus(t)
	s.Outs = 2
	play := BattedBallFromText("64(1)3", NeverAdvance)
	s.Bases.Runners[First] = "awa1"
	if err := s.Apply(play); err != nil {
		t.Fatal(err)
	}
	if !s.ExcessOuts {
		t.Error("four outs in a half inning should set ExcessOuts")
	}
}

func TestStatusSubstitution(t *testing.T) {
	s := newTestStatus(t)
	s.Rosters[Home].Bullpen = []string{"relief"}
	sub := Substitution{PlayerID: "relief", Team: Home, Batting: 0, Fielding: PosPitcher}
	s.ClearEventBuffer()
	if err := s.Apply(&sub); err != nil {
		t.Fatal(err)
	}
	if s.Pitcher != "relief" {
		t.Errorf("Pitcher = %q, want relief", s.Pitcher)
	}
	events := s.ClearEventBuffer()
	if len(events) != 1 || events[0].Name != BoxCallPitcher || events[0].Pitcher != "relief" {
		t.Errorf("events = %+v, want a single call_pitcher", events)
	}
}

func TestStatusPinchRunner(t *testing.T) {
	s := newTestStatus(t)
	applyPitches(t, s, "B", "B", "B", "B")
	s.Rosters[Away].Bench = []string{"speedy"}
	sub := Substitution{PlayerID: "speedy", Team: Away, Batting: 0, Fielding: PosPinchRunner}
	if err := s.Apply(&sub); err != nil {
		t.Fatal(err)
	}
	if got := s.Bases.Runners[First]; got != "speedy" {
		t.Errorf("runner on first = %q, want speedy", got)
	}
}

func TestStatusBalk(t *testing.T) {
	s := newTestStatus(t)
	applyPitches(t, s, "B", "B", "B", "B")
	if err := s.Apply(NewBalk()); err != nil {
		t.Fatal(err)
	}
	if got := s.Bases.Runners[Second]; got != "awa1" {
		t.Errorf("runner on second = %q, want awa1", got)
	}
	// The batter's count is unaffected.
	if s.Balls != 0 || s.Strikes != 0 || s.Batter != "awa2" {
		t.Errorf("count %d-%d batter %q", s.Balls, s.Strikes, s.Batter)
	}
}
