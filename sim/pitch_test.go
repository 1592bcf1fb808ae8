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

import "testing"

func TestPitchFromCode(t *testing.T) {
	tests := []struct {
		code string
		want Pitch
	}{
		{"B", Pitch{Outcome: PitchBall, Threw: true, Destination: HomePlate}},
		{"C", Pitch{Outcome: PitchStrike, Threw: true, Destination: HomePlate}},
		{"S", Pitch{Outcome: PitchStrike, Threw: true, Swung: true, Destination: HomePlate}},
		{"F", Pitch{Outcome: PitchFoul, Threw: true, Swung: true, Destination: HomePlate}},
		{"L", Pitch{Outcome: PitchFoulBunt, Threw: true, Swung: true, Bunted: true, Destination: HomePlate}},
		{"M", Pitch{Outcome: PitchStrike, Threw: true, Swung: true, Bunted: true, Destination: HomePlate}},
		{"H", Pitch{Outcome: PitchHitByPitch, Threw: true, Destination: HomePlate}},
		{"X", Pitch{Outcome: PitchContact, Threw: true, Swung: true, Destination: HomePlate}},
		{"I", Pitch{Outcome: PitchBall, Threw: true, Intentional: true, Destination: HomePlate}},
		{"V", Pitch{Outcome: PitchBall, Threw: false, Destination: HomePlate}},
		{"P", Pitch{Outcome: PitchBall, Threw: true, Pitchout: true, Destination: HomePlate}},
		{"Q", Pitch{Outcome: PitchStrike, Threw: true, Swung: true, Pitchout: true, Destination: HomePlate}},
		{"1", Pitch{Outcome: PitchPickoff, Threw: true, Destination: First}},
		{"2", Pitch{Outcome: PitchPickoff, Threw: true, Destination: Second}},
		{"*B", Pitch{Outcome: PitchBall, Threw: true, Blocked: true, Destination: HomePlate}},
		{">S", Pitch{Outcome: PitchStrike, Threw: true, Swung: true, RanOnPlay: true, Destination: HomePlate}},
		{"+2", Pitch{Outcome: PitchPickoff, Threw: true, ThrownByCatcher: true, Destination: Second}},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			got, err := PitchFromCode(tc.code)
			if err != nil {
				t.Fatalf("PitchFromCode(%q) failed: %v", tc.code, err)
			}
			if *got != tc.want {
				t.Errorf("PitchFromCode(%q) = %+v, want %+v", tc.code, *got, tc.want)
			}
		})
	}
}

func TestPitchFromCodeUnknown(t *testing.T) {
	for _, code := range []string{"", "Z", "9"} {
		if _, err := PitchFromCode(code); err == nil {
			t.Errorf("PitchFromCode(%q) succeeded, want error", code)
		}
	}
}

func TestPitchCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B", "B"},
		{"I", "B"},
		{"C", "C"},
		{"S", "S"},
		{"K", "S"},
		{"F", "F"},
		{"R", "F"},
		{"L", "L"},
		{"M", "M"},
		{"O", "M"},
		{"X", "X"},
		{"H", "H"},
		{"P", "P"},
		{"Q", "Q"},
	}
	for _, tc := range tests {
		p, err := PitchFromCode(tc.in)
		if err != nil {
			t.Fatalf("PitchFromCode(%q) failed: %v", tc.in, err)
		}
		if got := p.Code(); got != tc.want {
			t.Errorf("Code() of %q = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPitchOverPlate(t *testing.T) {
	normal, _ := PitchFromCode("B")
	if !normal.OverPlate() {
		t.Error("a called ball should be over the plate")
	}
	pickoff, _ := PitchFromCode("1")
	if pickoff.OverPlate() {
		t.Error("a pickoff throw is not over the plate")
	}
	if NewBalk().OverPlate() {
		t.Error("a balk is not over the plate")
	}
}
