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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testInningsXML = `<?xml version="1.0" encoding="UTF-8"?>
<game atBat="pmol" deck="jmor">
  <inning num="1" away="min" home="ana" next="Y">
    <top>
      <atbat num="1" b="1" s="2" o="1" batter="span001" pitcher="wean001" event="Strikeout">
        <pitch des="Called Strike" id="3" type="S" start_speed="91.4" end_speed="84.1"
               sz_top="3.42" sz_bot="1.58" px="0.23" pz="2.15" spin_rate="2210.5"/>
        <pitch des="Ball" id="4" type="B" start_speed="92.0"/>
        <po des="Pickoff Attempt 1B"/>
        <pitch des="Swinging Strike" id="5" type="S" start_speed="84.9"/>
        <pitch des="Foul Tip" id="6" type="S" start_speed="85.2"/>
      </atbat>
      <atbat num="2" b="0" s="0" o="2" batter="hudo001" pitcher="wean001" event="Groundout">
        <pitch des="In play, out(s)" id="9" type="X" start_speed="90.1"/>
      </atbat>
    </top>
    <bottom>
      <action des="Mound visit." event="Game Advisory"/>
      <atbat num="3" b="0" s="1" o="0" batter="aybe001" pitcher="bakes001" event="Single">
        <pitch des="Foul" id="12" type="S" start_speed="88.8"/>
        <pitch des="In play, no out" id="13" type="X" start_speed="89.3"/>
      </atbat>
    </bottom>
  </inning>
  <inning num="2" away="min" home="ana" next="Y">
    <top>
      <atbat num="4" b="4" s="0" o="0" batter="mauj001" pitcher="wean001" event="Walk">
        <pitch des="Ball In Dirt" id="17" type="B" start_speed="86.0"/>
      </atbat>
    </top>
  </inning>
</game>`

func TestReadAtBats(t *testing.T) {
	atBats, err := ReadAtBats(strings.NewReader(testInningsXML))
	if err != nil {
		t.Fatalf("ReadAtBats failed: %v", err)
	}
	if len(atBats) != 4 {
		t.Fatalf("got %d at-bats, want 4", len(atBats))
	}
	for i, want := range []int{1, 2, 3, 4} {
		if atBats[i].Num != want {
			t.Errorf("atBats[%d].Num = %d, want %d", i, atBats[i].Num, want)
		}
	}
	if got := atBats[0].Batter; got != "span001" {
		t.Errorf("first batter = %q", got)
	}

	first := atBats[0].Pitches
	if len(first) != 4 {
		t.Fatalf("first at-bat has %d pitches, want 4", len(first))
	}
	wantCodes := []string{"C", "B", "S", "S"}
	for i, p := range first {
		if p.Code() != wantCodes[i] {
			t.Errorf("pitch %d code = %q, want %q", i, p.Code(), wantCodes[i])
		}
	}
	fx := first[0].Fx
	if fx.StartSpeed != 91.4 || fx.EndSpeed != 84.1 || fx.SpinRate != 2210.5 {
		t.Errorf("first pitch fx = %+v", fx)
	}
	if fx.StrikeZoneTop != 3.42 || fx.PlateX != 0.23 || fx.PlateZ != 2.15 {
		t.Errorf("first pitch fx = %+v", fx)
	}
	// Attributes absent from the record parse as zero.
	if first[1].Fx.SpinRate != 0 {
		t.Errorf("second pitch spin rate = %v, want 0", first[1].Fx.SpinRate)
	}

	if got := atBats[2].Pitches[1].Code(); got != "X" {
		t.Errorf("bottom-half contact pitch code = %q, want X", got)
	}
}

func TestReadAtBatsBadXML(t *testing.T) {
	if _, err := ReadAtBats(strings.NewReader("<game><inning")); err == nil {
		t.Error("truncated document should fail to parse")
	}
}

func TestPitchCodeUnknownDescription(t *testing.T) {
	p := &Pitch{Des: "Totally New Description"}
	if got := p.Code(); got != "" {
		t.Errorf("Code() = %q, want empty", got)
	}
}

func TestFileName(t *testing.T) {
	got := FileName("data", "ANA201004050")
	want := filepath.Join("data", "gameday", "pitches", "2010", "ANA201004050.xml")
	if got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
	if got := FileName("data", "x"); got != "" {
		t.Errorf("FileName on a malformed id = %q, want empty", got)
	}
}

func TestLoadAtBats(t *testing.T) {
	root := t.TempDir()
	if atBats, err := LoadAtBats(root, "ANA201004050"); err != nil || atBats != nil {
		t.Errorf("missing telemetry file: got %v, %v, want no at-bats and no error", atBats, err)
	}

	name := FileName(root, "ANA201004050")
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(testInningsXML), 0o644); err != nil {
		t.Fatal(err)
	}
	atBats, err := LoadAtBats(root, "ANA201004050")
	if err != nil {
		t.Fatalf("LoadAtBats failed: %v", err)
	}
	if len(atBats) != 4 {
		t.Errorf("got %d at-bats, want 4", len(atBats))
	}
}
