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

func TestHitLocationFromModifier(t *testing.T) {
	arcFly := ArcFly
	arcGround := ArcGround
	arcPop := ArcPop
	tests := []struct {
		text string
		want HitLocation
	}{
		{"F8", HitLocation{Angle: 0, Depth: 7, Arc: &arcFly}},
		{"G6M", HitLocation{Angle: -0.5, Depth: 4, Arc: &arcGround}},
		// Angle modifiers flip sign on the left side of the field.
		{"F7L", HitLocation{Angle: -3, Depth: 7, Arc: &arcFly}},
		{"F9L", HitLocation{Angle: 3, Depth: 7, Arc: &arcFly}},
		{"F89XD", HitLocation{Angle: 1, Depth: 9, Arc: &arcFly}},
		{"G+4", HitLocation{Angle: 1, Depth: 4, Arc: &arcGround}},
		{"BG25S", HitLocation{Angle: -1, Depth: 0, Arc: &arcGround, Bunt: true}},
		{"P2F", HitLocation{Angle: 0, Depth: 0, Arc: &arcPop}},
		{"G", HitLocation{Angle: 0, Depth: 0, Arc: &arcGround}},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			got, err := HitLocationFromModifier(tc.text)
			if err != nil {
				t.Fatalf("HitLocationFromModifier(%q) failed: %v", tc.text, err)
			}
			if got.Angle != tc.want.Angle || got.Depth != tc.want.Depth || got.Bunt != tc.want.Bunt {
				t.Errorf("HitLocationFromModifier(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
			if got.Arc == nil || *got.Arc != *tc.want.Arc {
				t.Errorf("Arc = %v, want %d", got.Arc, *tc.want.Arc)
			}
		})
	}
}

func TestHitLocationUnknownParts(t *testing.T) {
	if _, err := HitLocationFromRetrosheet("99", "", "", false); err == nil {
		t.Error("unknown location code should fail")
	}
	if _, err := HitLocationFromRetrosheet("8", "Z", "", false); err == nil {
		t.Error("unknown modifier should fail")
	}
	if _, err := HitLocationFromRetrosheet("8", "", "Z", false); err == nil {
		t.Error("unknown arc should fail")
	}
}

func TestAddArc(t *testing.T) {
	loc, err := HitLocationFromRetrosheet("8", "", "", false)
	if err != nil {
		t.Fatalf("HitLocationFromRetrosheet failed: %v", err)
	}
	if loc.Arc != nil {
		t.Fatal("arc should start unknown")
	}
	loc.AddArc("G+")
	if loc.Arc == nil || *loc.Arc != ArcGround {
		t.Errorf("Arc = %v, want ground", loc.Arc)
	}
	loc.AddArc("BP")
	if !loc.Bunt || *loc.Arc != ArcPop {
		t.Errorf("after BP: bunt %t, arc %v", loc.Bunt, loc.Arc)
	}
}
