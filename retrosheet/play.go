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

package retrosheet

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ttbt-io/playlog/sim"
)

// The complete set of legal Retrosheet pitch codes: an optional modifier
// followed by the basic descriptor.
var pitchCodeRe = regexp.MustCompile(`[*+>]?[123BCFHIKLMOPQRSTUVXY]`)

// parsePlayRow turns one play row into its events: zero or more pitches
// followed by at most one play.
func parsePlayRow(row []string, mode sim.AdvanceMode) ([]sim.Event, error) {
	if len(row) <= playNdx {
		return nil, fmt.Errorf("short play row: %v", row)
	}
	var events []sim.Event
	for _, code := range pitchCodeRe.FindAllString(row[pitchesNdx], -1) {
		p, err := sim.PitchFromCode(code)
		if err != nil {
			return nil, fmt.Errorf("play row %v: %w", row, err)
		}
		events = append(events, p)
	}
	// "!" marks an exceptional play; it carries no information.
	playText := strings.ReplaceAll(row[playNdx], "!", "")
	playEvent, err := parsePlayText(playText, mode)
	if err != nil {
		return nil, fmt.Errorf("play row %v: %w", row, err)
	}
	if playEvent != nil {
		// Tag the pitch that triggered the play. Useful when the play is
		// base running: we'd like to know a pitch led to a stolen base.
		if len(events) > 0 {
			if p, ok := events[len(events)-1].(*sim.Pitch); ok {
				p.PlayOnPitch = true
			}
		}
		events = append(events, playEvent)
	}
	return events, nil
}

var (
	// Labels that don't correspond to a game event: they restate the
	// outcome already carried by the final pitch (strikeout, walk, hit by
	// pitch, no play).
	nonEventRe = regexp.MustCompile(`^(?:HP|K(?:[1-4]+|\+E2)?|NP|I?W)$`)
	balkRe     = regexp.MustCompile(`^BK$`)
	// Hit location modifiers: optional bunt marker, trajectory, fielder
	// code or legal fielder pair, distance modifiers, foul marker.
	hitLocationRe = regexp.MustCompile(`^B?[PFLG](?:[1-9]|13|15|23|25|34|56|78|89)?L?(?:[SMD]|MS|MD|XD)?[-+F]?$`)
	// Home run locations usually don't follow the pattern of other hits.
	homeRunLocationRe = regexp.MustCompile(`^(?:7|8|9|78|89)[-+]?$`)
	hitModifierSignRe = regexp.MustCompile(`[-+]`)
	arcOnlyRe         = regexp.MustCompile(`^B?[PLFG][-+]?$`)
	errorModifierRe   = regexp.MustCompile(`^E[1-9]$`)
	advanceErrorRe    = regexp.MustCompile(`E[1-9]$`)
	// Modifiers are split on slashes, except slashes inside parentheses.
	modifierSplitRe = regexp.MustCompile(`(?:[^/(]|\([^)]*\))+`)
)

// playTextParser parses the description field of a play row. The field has
// three pieces: the description (what happened), slash-separated modifiers
// (most commonly the trajectory of a batted ball), and dot-separated advances
// (what happened to the runners).
type playTextParser struct {
	description string
	modifiers   []string
	advances    string
	mode        sim.AdvanceMode
}

// parsePlayText parses a play description into at most one event. A nil
// event with a nil error means the description carried no new information.
func parsePlayText(text string, mode sim.AdvanceMode) (sim.Event, error) {
	pieces := strings.Split(text, ".")
	splits := modifierSplitRe.FindAllString(pieces[0], -1)
	if len(splits) == 0 {
		return nil, fmt.Errorf("empty play description %q", text)
	}
	p := &playTextParser{description: splits[0], modifiers: splits[1:], mode: mode}
	if len(pieces) > 1 {
		p.advances = pieces[1]
	}
	return p.parse()
}

func (p *playTextParser) parse() (sim.Event, error) {
	if nonEventRe.MatchString(p.description) {
		return p.parseNonEvent()
	}
	if balkRe.MatchString(p.description) {
		return sim.NewBalk(), nil
	}
	return p.parseFullPlay()
}

// parseNonEvent handles the occasional advance attached to a non-event; a
// dummy base running play carries the advance information.
func (p *playTextParser) parseNonEvent() (sim.Event, error) {
	if p.advances == "" || !p.interestingAdvances() {
		return nil, nil
	}
	play := sim.BaseRunningFromText("OA", p.mode)
	if m := advanceErrorRe.FindString(p.advances); m != "" {
		play.AddError(int(m[1] - '0'))
	}
	if err := play.Advances.AddAnnotations(p.advances); err != nil {
		return nil, err
	}
	return play, nil
}

// interestingAdvances reports whether the advance text on a non-event play
// changes the state of the game.
func (p *playTextParser) interestingAdvances() bool {
	return strings.Contains(p.advances, "E") || p.description == "K23" ||
		strings.Contains(p.advances, "X") || strings.Contains(p.description, "E")
}

func (p *playTextParser) parseFullPlay() (sim.Event, error) {
	// Try the description as a batted ball first, then as base running.
	if bb := sim.BattedBallFromText(p.description, p.mode); bb != nil {
		for _, m := range p.modifiers {
			if err := p.applyBattedBallModifier(bb, m); err != nil {
				return nil, err
			}
		}
		if err := p.applyAdvances(&bb.Play); err != nil {
			return nil, err
		}
		return bb, nil
	}
	br := sim.BaseRunningFromText(p.description, p.mode)
	if br == nil {
		return nil, fmt.Errorf("unparseable play description %q", p.description)
	}
	for _, m := range p.modifiers {
		if errorModifierRe.MatchString(m) {
			br.AddError(int(m[1] - '0'))
		}
	}
	if err := p.applyAdvances(&br.Play); err != nil {
		return nil, err
	}
	return br, nil
}

// applyBattedBallModifier folds one play modifier into the batted ball. Only
// errors and hit locations matter; the rest of the sizeable modifier
// vocabulary is ignored.
func (p *playTextParser) applyBattedBallModifier(bb *sim.BattedBall, modifier string) error {
	switch {
	case errorModifierRe.MatchString(modifier):
		bb.AddError(int(modifier[1] - '0'))
	case homeRunLocationRe.MatchString(modifier):
		location := hitModifierSignRe.ReplaceAllString(modifier, "")
		loc, err := sim.HitLocationFromRetrosheet(location, "", "", false)
		if err != nil {
			return err
		}
		bb.HitLocation = loc
	case hitLocationRe.MatchString(modifier) && modifier != "FL":
		// A bare arc refines the location guessed from the fielders; a
		// full location replaces it.
		if arcOnlyRe.MatchString(modifier) {
			if bb.HitLocation != nil {
				bb.HitLocation.AddArc(modifier)
			}
			return nil
		}
		loc, err := sim.HitLocationFromModifier(modifier)
		if err != nil {
			return err
		}
		bb.HitLocation = loc
	}
	return nil
}

func (p *playTextParser) applyAdvances(play *sim.Play) error {
	if p.advances == "" {
		return nil
	}
	return play.Advances.AddAnnotations(p.advances)
}
