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

// Package gamestore persists parsed games to disk as JSON, one file per
// game, with an in-memory cache in front of the reads.
package gamestore

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"iter"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c2FmZQ/storage"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ttbt-io/playlog/sim"
)

const cacheSize = 512

// The storage library gob-encodes saved games; every concrete sim.Event
// implementation must be registered for the interface values to round-trip.
func init() {
	gob.Register(&sim.Pitch{})
	gob.Register(&sim.BattedBall{})
	gob.Register(&sim.BaseRunning{})
	gob.Register(&sim.Substitution{})
	gob.Register(&sim.HandednessAdjustment{})
	gob.Register(&sim.GameCalled{})
}

// Store manages game persistence under a data directory. Games live in
// games/, one JSON file per game, named by the URL-escaped game id. Import
// manifests live in manifests/.
type Store struct {
	DataDir string

	storage *storage.Storage
	cache   *lru.Cache[string, []byte]
}

// New creates a store rooted at dataDir.
func New(dataDir string) *Store {
	cache, _ := lru.New[string, []byte](cacheSize)
	return &Store{
		DataDir: dataDir,
		storage: storage.New(dataDir, nil),
		cache:   cache,
	}
}

func gameFileName(gameID string) string {
	return filepath.Join("games", url.PathEscape(gameID)+".json")
}

// SaveGame saves one game atomically and keeps the cache warm.
func (s *Store) SaveGame(g *sim.Game) error {
	if g.Metadata == nil || g.Metadata.ID == "" {
		return fmt.Errorf("game has no id")
	}
	id := g.Metadata.ID
	if err := s.storage.SaveDataFile(gameFileName(id), g); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	if jsonBytes, err := json.Marshal(g); err == nil {
		s.cache.Add(id, jsonBytes)
	}
	return nil
}

// LoadGame loads a game by id. A game that isn't in the store returns
// os.ErrNotExist.
func (s *Store) LoadGame(gameID string) (*sim.Game, error) {
	if jsonBytes, ok := s.cache.Get(gameID); ok {
		g := &sim.Game{}
		if err := json.Unmarshal(jsonBytes, g); err == nil {
			return g, nil
		}
		s.cache.Remove(gameID)
	}

	g := &sim.Game{}
	if err := s.storage.ReadDataFile(gameFileName(gameID), g); err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	if jsonBytes, err := json.Marshal(g); err == nil {
		s.cache.Add(gameID, jsonBytes)
	}
	return g, nil
}

// ListGameIDs returns the ids of every stored game, sorted.
func (s *Store) ListGameIDs() ([]string, error) {
	files, err := os.ReadDir(filepath.Join(s.DataDir, "games"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read games directory: %w", err)
	}
	var ids []string
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		id, err := url.PathUnescape(strings.TrimSuffix(file.Name(), ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListAllGames iterates over every stored game. Games that fail to load are
// logged and skipped.
func (s *Store) ListAllGames() iter.Seq2[*sim.Game, error] {
	return func(yield func(*sim.Game, error) bool) {
		ids, err := s.ListGameIDs()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, id := range ids {
			g, err := s.LoadGame(id)
			if err != nil {
				log.Printf("Warning: could not load game %s: %v", id, err)
				continue
			}
			if !yield(g, nil) {
				return
			}
		}
	}
}
