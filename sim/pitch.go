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
	"strings"
)

// Pitch outcome categories.
const (
	PitchBall       = "ball"
	PitchStrike     = "strike"
	PitchFoul       = "foul"
	PitchFoulBunt   = "foul_bunt"
	PitchHitByPitch = "hit_by_pitch"
	PitchContact    = "contact"
	PitchPickoff    = "pickoff"
	PitchBalk       = "balk"
)

// Pitch represents a single action by the pitcher.
//
// The set of actions a pitcher can take is broader than throwing a pitch over
// the plate: pickoffs and balks are folded in here too, as are pickoffs thrown
// by the catcher, even though the pitcher isn't the one throwing.
type Pitch struct {
	// Outcome is one of the Pitch* categories above.
	Outcome string `json:"outcome"`
	// Threw is whether the ball was actually thrown. False for balks, or
	// called balls when the pitcher goes to his mouth.
	Threw bool `json:"threw"`
	// Swung is whether the batter swung at the pitch.
	Swung bool `json:"swung,omitempty"`
	// Bunted is whether the batter's swing was a bunt.
	Bunted bool `json:"bunted,omitempty"`
	// RanOnPlay is whether a runner on base was going on the play.
	RanOnPlay bool `json:"ranOnPlay,omitempty"`
	// Blocked is whether the pitch was blocked by the catcher.
	Blocked bool `json:"blocked,omitempty"`
	// Pitchout is whether the pitch was a pitchout.
	Pitchout bool `json:"pitchout,omitempty"`
	// ThrownByCatcher is whether the pickoff was thrown by the catcher.
	ThrownByCatcher bool `json:"thrownByCatcher,omitempty"`
	// Intentional is whether a ball was deemed intentional.
	Intentional bool `json:"intentional,omitempty"`
	// Destination is HomePlate for normal pitches; other values are pickoff
	// targets.
	Destination Base `json:"destination"`
	// PlayOnPitch is whether a play followed this pitch. Necessarily true
	// when Outcome is contact, but also set for base running plays.
	PlayOnPitch bool `json:"playOnPitch,omitempty"`
	// Synthesized marks a pitch recovered from telemetry rather than the
	// play-by-play record.
	Synthesized bool `json:"synthesized,omitempty"`
	// Fx is the telemetry attached to the pitch, if any.
	Fx *PitchFx `json:"pitchFx,omitempty"`
}

// PitchFromCode parses the one- or two-character Retrosheet pitch code. If
// the code is two characters, the first is a modifier (blocked, catcher
// pickoff, runner going); the last character is always the basic descriptor.
func PitchFromCode(code string) (*Pitch, error) {
	if code == "" {
		return nil, fmt.Errorf("empty pitch code")
	}
	last := code[len(code)-1]
	outcome, err := pitchOutcome(last)
	if err != nil {
		return nil, err
	}
	destination := HomePlate
	if last >= '1' && last <= '3' {
		destination = Base(last - '1')
	}
	return &Pitch{
		Outcome:         outcome,
		Threw:           last != 'V',
		Swung:           strings.IndexByte("FKLMOQRSTX", last) >= 0,
		Bunted:          strings.IndexByte("LMO", last) >= 0,
		Pitchout:        strings.IndexByte("PQRY", last) >= 0,
		RanOnPlay:       code[0] == '>',
		Blocked:         code[0] == '*',
		ThrownByCatcher: code[0] == '+',
		Intentional:     last == 'I',
		Destination:     destination,
	}, nil
}

func pitchOutcome(c byte) (string, error) {
	switch {
	case strings.IndexByte("BIPV", c) >= 0:
		return PitchBall, nil
	case strings.IndexByte("CKMOQST", c) >= 0:
		return PitchStrike, nil
	case c == 'L':
		return PitchFoulBunt, nil
	case c == 'F' || c == 'R':
		return PitchFoul, nil
	case c == 'H':
		return PitchHitByPitch, nil
	case c == 'X':
		return PitchContact, nil
	case c >= '1' && c <= '3':
		return PitchPickoff, nil
	}
	return "", fmt.Errorf("unexpected pitch code %q", string(c))
}

// NewBalk returns a balk. Balks are coded in Retrosheet as plays instead of
// pitches, but they behave like a pitch that was never thrown.
func NewBalk() *Pitch {
	return &Pitch{Outcome: PitchBalk, Threw: false, Destination: HomePlate}
}

// Code returns a simplified one-character Retrosheet-style description of the
// pitch. It is not guaranteed to round-trip the original representation --
// modifiers and foul tips are ignored -- but it is stable enough for
// debugging and for lining pitches up against telemetry.
func (p *Pitch) Code() string {
	switch {
	case p.Pitchout:
		if p.Swung {
			return "Q"
		}
		return "P"
	case p.Outcome == PitchFoulBunt:
		return "L"
	case p.Outcome == PitchFoul:
		return "F"
	case p.Outcome == PitchBall:
		return "B"
	case p.Outcome == PitchHitByPitch:
		return "H"
	case p.Outcome == PitchContact:
		return "X"
	case p.Outcome == PitchStrike:
		if p.Bunted {
			return "M"
		}
		if p.Swung {
			return "S"
		}
		return "C"
	}
	return "?"
}

// OverPlate reports whether the pitch was actually thrown over the plate.
func (p *Pitch) OverPlate() bool {
	return p.Destination == HomePlate && p.Outcome != PitchBalk
}

// Clone returns a copy of the pitch. The telemetry record is shared; it is
// never mutated after it is attached.
func (p *Pitch) Clone() *Pitch {
	c := *p
	return &c
}

// PitchFx is the telemetry record associated with a pitch: ~20 numeric
// attributes describing the flight of the ball. It has no behavior of its
// own. Fields mirror the GameDay attribute names on the wire.
type PitchFx struct {
	StartSpeed       float64 `json:"startSpeed"`
	EndSpeed         float64 `json:"endSpeed"`
	StrikeZoneTop    float64 `json:"strikeZoneTop"`
	StrikeZoneBottom float64 `json:"strikeZoneBottom"`
	DeltaX           float64 `json:"deltaX"`
	DeltaZ           float64 `json:"deltaZ"`
	PlateX           float64 `json:"plateX"`
	PlateZ           float64 `json:"plateZ"`
	StartX           float64 `json:"startX"`
	StartY           float64 `json:"startY"`
	StartZ           float64 `json:"startZ"`
	VelocityX        float64 `json:"velocityX"`
	VelocityY        float64 `json:"velocityY"`
	VelocityZ        float64 `json:"velocityZ"`
	AccelX           float64 `json:"accelX"`
	AccelY           float64 `json:"accelY"`
	AccelZ           float64 `json:"accelZ"`
	BreakY           float64 `json:"breakY"`
	BreakAngle       float64 `json:"breakAngle"`
	BreakLength      float64 `json:"breakLength"`
	SpinDirection    float64 `json:"spinDirection"`
	SpinRate         float64 `json:"spinRate"`
	// Empty marks a placeholder attached to a pitch the telemetry source
	// did not record.
	Empty bool `json:"empty,omitempty"`
}
