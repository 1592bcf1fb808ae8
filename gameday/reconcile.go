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

package gameday

import (
	"fmt"
	"log"
	"strconv"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ttbt-io/playlog/sim"
)

// AttachTelemetry lines the telemetry at-bats up against the game's pitch
// events and attaches a telemetry record to each over-the-plate pitch. When
// the telemetry records a pitch the play-by-play account missed, a
// synthesized pitch event is inserted into the game, and the game is
// re-verified; a game whose replay no longer ends at the right event after
// reconciliation is a hard failure.
//
// At-bats that cannot be reconciled get empty placeholder records instead of
// real telemetry. A game whose at-bat structure cannot be aligned at all
// keeps no telemetry.
func AttachTelemetry(g *sim.Game, atBats []*AtBat) error {
	if len(atBats) == 0 {
		return nil
	}
	groups, err := pitchGroups(g)
	if err != nil {
		return err
	}
	groups, atBats, ok := repairAtBatCounts(groups, atBats)
	if !ok {
		log.Printf("game %s: telemetry at-bats cannot be aligned, dropping telemetry", g.Metadata.ID)
		return nil
	}
	inserts := make(map[*sim.Pitch][]*sim.Pitch)
	for i := range groups {
		reconcileAtBat(groups[i], atBats[i].Pitches, inserts)
	}
	if len(inserts) == 0 {
		return nil
	}
	rebuilt := make([]sim.Event, 0, len(g.Events)+len(inserts))
	for _, e := range g.Events {
		if p, ok := e.(*sim.Pitch); ok {
			rebuilt = append(rebuilt, toEvents(inserts[p])...)
		}
		rebuilt = append(rebuilt, e)
	}
	g.Events = rebuilt
	over, err := g.VerifyEnding()
	if err != nil {
		return fmt.Errorf("game %s: replay failed after telemetry reconciliation: %w", g.Metadata.ID, err)
	}
	if !over {
		return fmt.Errorf("game %s: replay no longer ends at the last event after telemetry reconciliation", g.Metadata.ID)
	}
	return nil
}

func toEvents(pitches []*sim.Pitch) []sim.Event {
	events := make([]sim.Event, len(pitches))
	for i, p := range pitches {
		events[i] = p
	}
	return events
}

// pitchGroups replays the game and collects its over-the-plate pitch events,
// grouped by plate appearance. The box score event stream marks the plate
// appearance boundaries.
func pitchGroups(g *sim.Game) ([][]*sim.Pitch, error) {
	g.Reset()
	defer g.Reset()
	g.Status.ClearEventBuffer()

	var groups [][]*sim.Pitch
	var current []*sim.Pitch
	for {
		e := g.NextEvent()
		if e == nil {
			break
		}
		if p, ok := e.(*sim.Pitch); ok && p.OverPlate() {
			current = append(current, p)
		}
		if err := g.ApplyNextEvent(); err != nil {
			return nil, fmt.Errorf("game %s: %w", g.Metadata.ID, err)
		}
		for _, b := range g.Status.ClearEventBuffer() {
			if b.Name == sim.BoxPlateAppearance && !b.Decrement {
				groups = append(groups, current)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// repairAtBatCounts reconciles the number of plate appearances on the two
// sides. The play-by-play account is authoritative: when it has more at-bats
// than the telemetry, either an at-bat went unrecorded (an empty telemetry
// at-bat is inserted at the divergence) or the telemetry recorded one
// continuous at-bat that the play-by-play split in two, around an
// interruption (the two authoritative groups are merged). Excess telemetry
// at-bats are a trailing artifact and are discarded.
func repairAtBatCounts(groups [][]*sim.Pitch, atBats []*AtBat) ([][]*sim.Pitch, []*AtBat, bool) {
	for len(groups) > len(atBats) {
		var repaired bool
		groups, atBats, repaired = repairOnce(groups, atBats)
		if !repaired {
			return groups, atBats, false
		}
	}
	if len(atBats) > len(groups) {
		atBats = atBats[:len(groups)]
	}
	return groups, atBats, true
}

func repairOnce(groups [][]*sim.Pitch, atBats []*AtBat) ([][]*sim.Pitch, []*AtBat, bool) {
	m := difflib.NewMatcher(pitchCounts(groups), atBatCounts(atBats))
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'd':
			// An authoritative at-bat with no telemetry counterpart.
			atBats = append(atBats[:op.J1], append([]*AtBat{{}}, atBats[op.J1:]...)...)
			return groups, atBats, true
		case 'r':
			if op.I2-op.I1 == 2 && op.J2-op.J1 == 1 &&
				len(groups[op.I1])+len(groups[op.I1+1]) == len(atBats[op.J1].Pitches) {
				merged := append(groups[op.I1], groups[op.I1+1]...)
				groups = append(groups[:op.I1], append([][]*sim.Pitch{merged}, groups[op.I1+2:]...)...)
				return groups, atBats, true
			}
			// One-for-one count differences are the per-at-bat zipper's
			// business; anything else here is not repairable.
		}
	}
	return groups, atBats, false
}

func pitchCounts(groups [][]*sim.Pitch) []string {
	counts := make([]string, len(groups))
	for i, g := range groups {
		counts[i] = strconv.Itoa(len(g))
	}
	return counts
}

func atBatCounts(atBats []*AtBat) []string {
	counts := make([]string, len(atBats))
	for i, ab := range atBats {
		counts[i] = strconv.Itoa(len(ab.Pitches))
	}
	return counts
}

// reconcileAtBat attaches telemetry to the pitches of a single plate
// appearance. Equal-length sides zip positionally. Sides that differ by one
// are repaired at the single index where their simplified pitch codes
// diverge, provided the remainder of the longer side matches the shorter
// side shifted by one. Anything else leaves the whole at-bat telemetry-free.
func reconcileAtBat(pitches []*sim.Pitch, telemetry []*Pitch, inserts map[*sim.Pitch][]*sim.Pitch) {
	switch {
	case len(pitches) == len(telemetry):
		for i, p := range pitches {
			p.Fx = telemetry[i].Fx
		}
	case len(pitches) == len(telemetry)+1 && len(telemetry) > 0:
		// The telemetry missed one pitch; that pitch gets a placeholder.
		d, ok := divergence(pitchCodes(pitches), telemetryCodes(telemetry))
		if !ok {
			degrade(pitches)
			return
		}
		for i, p := range pitches {
			switch {
			case i < d:
				p.Fx = telemetry[i].Fx
			case i == d:
				p.Fx = &sim.PitchFx{Empty: true}
			default:
				p.Fx = telemetry[i-1].Fx
			}
		}
	case len(telemetry) == len(pitches)+1 && len(pitches) > 0:
		// The telemetry recorded a pitch the play-by-play account missed;
		// synthesize it from the telemetry's own outcome code. A trailing
		// extra record has no pitch to insert before, so the at-bat is left
		// unreconciled instead.
		d, ok := divergence(telemetryCodes(telemetry), pitchCodes(pitches))
		if !ok || d == len(pitches) {
			degrade(pitches)
			return
		}
		synth, err := sim.PitchFromCode(telemetry[d].Code())
		if err != nil {
			degrade(pitches)
			return
		}
		synth.Synthesized = true
		synth.Fx = telemetry[d].Fx
		inserts[pitches[d]] = append(inserts[pitches[d]], synth)
		for i, p := range pitches {
			if i < d {
				p.Fx = telemetry[i].Fx
			} else {
				p.Fx = telemetry[i+1].Fx
			}
		}
	default:
		degrade(pitches)
	}
}

// divergence finds the first index at which the two code sequences differ,
// where longer has exactly one more element than shorter. It reports false
// when the remainder of longer doesn't match shorter shifted by one.
func divergence(longer, shorter []string) (int, bool) {
	d := len(shorter)
	for i := range shorter {
		if longer[i] != shorter[i] {
			d = i
			break
		}
	}
	for i := d; i < len(shorter); i++ {
		if longer[i+1] != shorter[i] {
			return 0, false
		}
	}
	return d, true
}

func pitchCodes(pitches []*sim.Pitch) []string {
	codes := make([]string, len(pitches))
	for i, p := range pitches {
		codes[i] = p.Code()
	}
	return codes
}

func telemetryCodes(telemetry []*Pitch) []string {
	codes := make([]string, len(telemetry))
	for i, p := range telemetry {
		codes[i] = p.Code()
	}
	return codes
}

func degrade(pitches []*sim.Pitch) {
	for _, p := range pitches {
		p.Fx = &sim.PitchFx{Empty: true}
	}
}
