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

package gamestore

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/ttbt-io/playlog/sim"
)

func testGame(t *testing.T, id string) *sim.Game {
	t.Helper()
	rosters := make(map[string]*sim.Roster)
	for team, prefix := range map[string]string{sim.Home: "hom", sim.Away: "awa"} {
		indicator := "0"
		if team == sim.Home {
			indicator = "1"
		}
		var rows [][]string
		for i := 1; i <= 9; i++ {
			rows = append(rows, []string{"start", fmt.Sprintf("%s%d", prefix, i),
				"Player", indicator, fmt.Sprint(i), fmt.Sprint(i)})
		}
		r, err := sim.RosterFromRows(rows)
		if err != nil {
			t.Fatalf("RosterFromRows failed: %v", err)
		}
		rosters[team] = r
	}
	md := &sim.Metadata{ID: id, HomeTeam: "ANA", AwayTeam: "MIN", GameDate: "2010/04/05"}
	var events []sim.Event
	for _, code := range []string{"B", "C", "S"} {
		p, err := sim.PitchFromCode(code)
		if err != nil {
			t.Fatalf("PitchFromCode failed: %v", err)
		}
		events = append(events, p)
	}
	g, err := sim.NewGame(md, rosters, events, nil)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

func TestSaveLoadGame(t *testing.T) {
	s := New(t.TempDir())
	g := testGame(t, "ANA201004050")
	if err := s.SaveGame(g); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	loaded, err := s.LoadGame("ANA201004050")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Metadata, g.Metadata) {
		t.Errorf("metadata = %+v, want %+v", loaded.Metadata, g.Metadata)
	}
	if !reflect.DeepEqual(loaded.Events, g.Events) {
		t.Errorf("events = %+v, want %+v", loaded.Events, g.Events)
	}
	if !reflect.DeepEqual(loaded.InitialRosters, g.InitialRosters) {
		t.Error("rosters did not round-trip")
	}

	// Second load comes from the cache and gives the same result.
	again, err := s.LoadGame("ANA201004050")
	if err != nil {
		t.Fatalf("cached LoadGame failed: %v", err)
	}
	if !reflect.DeepEqual(again.Metadata, g.Metadata) {
		t.Errorf("cached metadata = %+v", again.Metadata)
	}
}

func TestLoadGameColdCache(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.SaveGame(testGame(t, "ANA201004050")); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	// A fresh store reads from disk.
	fresh := New(dir)
	g, err := fresh.LoadGame("ANA201004050")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if g.Metadata.ID != "ANA201004050" {
		t.Errorf("ID = %q", g.Metadata.ID)
	}
}

func TestLoadGameMissing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LoadGame("ANA209912310"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestSaveGameWithoutID(t *testing.T) {
	s := New(t.TempDir())
	g := testGame(t, "ANA201004050")
	g.Metadata.ID = ""
	if err := s.SaveGame(g); err == nil {
		t.Error("a game without an id should not save")
	}
}

func TestListGameIDs(t *testing.T) {
	s := New(t.TempDir())
	ids, err := s.ListGameIDs()
	if err != nil || ids != nil {
		t.Errorf("empty store: got %v, %v", ids, err)
	}

	for _, id := range []string{"MIN201005010", "ANA201004050", "ANA201004060"} {
		if err := s.SaveGame(testGame(t, id)); err != nil {
			t.Fatalf("SaveGame failed: %v", err)
		}
	}
	ids, err = s.ListGameIDs()
	if err != nil {
		t.Fatalf("ListGameIDs failed: %v", err)
	}
	want := []string{"ANA201004050", "ANA201004060", "MIN201005010"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestListAllGames(t *testing.T) {
	s := New(t.TempDir())
	for _, id := range []string{"ANA201004050", "ANA201004060"} {
		if err := s.SaveGame(testGame(t, id)); err != nil {
			t.Fatalf("SaveGame failed: %v", err)
		}
	}
	var ids []string
	for g, err := range s.ListAllGames() {
		if err != nil {
			t.Fatalf("ListAllGames failed: %v", err)
		}
		ids = append(ids, g.Metadata.ID)
	}
	if !reflect.DeepEqual(ids, []string{"ANA201004050", "ANA201004060"}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	m := NewManifest([]string{"2010ANA.EVA"})
	if _, err := uuid.Parse(m.RunID); err != nil {
		t.Fatalf("RunID %q is not a UUID: %v", m.RunID, err)
	}
	m.AddGame("ANA201004050")
	m.AddFailure("ANA201004060", errors.New("replay does not end at the last event"))
	if err := s.SaveManifest(m); err != nil {
		t.Fatalf("SaveManifest failed: %v", err)
	}

	loaded, err := s.LoadManifest(m.RunID)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.GameIDs, []string{"ANA201004050"}) {
		t.Errorf("GameIDs = %v", loaded.GameIDs)
	}
	if len(loaded.Failures) != 1 || loaded.Failures[0].GameID != "ANA201004060" {
		t.Errorf("Failures = %+v", loaded.Failures)
	}

	ids, err := s.ListManifestIDs()
	if err != nil {
		t.Fatalf("ListManifestIDs failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{m.RunID}) {
		t.Errorf("manifest ids = %v, want %v", ids, []string{m.RunID})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LoadManifest(uuid.New().String()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
