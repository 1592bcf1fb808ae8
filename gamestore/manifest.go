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
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Failure records one game that could not be imported.
type Failure struct {
	GameID string `json:"gameId"`
	Error  string `json:"error"`
}

// Manifest records the outcome of one import run: which source files were
// read, which games were stored, and which failed.
type Manifest struct {
	RunID       string    `json:"runId"`
	CreatedAt   time.Time `json:"createdAt"`
	SourceFiles []string  `json:"sourceFiles,omitempty"`
	GameIDs     []string  `json:"gameIds,omitempty"`
	Failures    []Failure `json:"failures,omitempty"`
}

// NewManifest starts a manifest for an import run over the given source
// files, stamped with a fresh run id.
func NewManifest(sourceFiles []string) *Manifest {
	return &Manifest{
		RunID:       uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		SourceFiles: sourceFiles,
	}
}

// AddGame records a stored game.
func (m *Manifest) AddGame(gameID string) {
	m.GameIDs = append(m.GameIDs, gameID)
}

// AddFailure records a game that failed to import.
func (m *Manifest) AddFailure(gameID string, err error) {
	m.Failures = append(m.Failures, Failure{GameID: gameID, Error: err.Error()})
}

func manifestFileName(runID string) string {
	return filepath.Join("manifests", url.PathEscape(runID)+".json")
}

// SaveManifest saves an import manifest.
func (s *Store) SaveManifest(m *Manifest) error {
	if m.RunID == "" {
		return fmt.Errorf("manifest has no run id")
	}
	if err := s.storage.SaveDataFile(manifestFileName(m.RunID), m); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

// LoadManifest loads an import manifest by run id.
func (s *Store) LoadManifest(runID string) (*Manifest, error) {
	m := &Manifest{}
	if err := s.storage.ReadDataFile(manifestFileName(runID), m); err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	return m, nil
}

// ListManifestIDs returns the run ids of every stored manifest, sorted.
func (s *Store) ListManifestIDs() ([]string, error) {
	files, err := os.ReadDir(filepath.Join(s.DataDir, "manifests"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read manifests directory: %w", err)
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
