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

// Package retrosheet parses Retrosheet event files into replayable games.
//
// A Retrosheet event file is a CSV holding a season's worth of game records
// for one team. Each record is a sequence of typed rows: an id row, info and
// start rows, then play/sub/com rows carrying the pitch-by-pitch account.
// The encoding is stateful and occasionally inconsistent, so parsing is a
// pipeline: split the file into games, clean each game's rows into a
// state-independent form, parse rows into events, then verify the result by
// replaying it.
package retrosheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ttbt-io/playlog/sim"
)

// Failure describes one game that could not be parsed and verified.
type Failure struct {
	GameID string
	Err    error
}

// FileParser parses complete Retrosheet event files.
type FileParser struct {
	// ErrorOnFailure makes ParseFile fail outright on the first game that
	// cannot be verified. When false, failing games are logged, reported
	// in the failure list, and skipped.
	ErrorOnFailure bool
}

// ParseFile parses every game record in the named event file.
func (p *FileParser) ParseFile(path string) ([]*sim.Game, []Failure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	games, failures, err := p.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return games, failures, nil
}

// Parse parses every game record read from r.
func (p *FileParser) Parse(r io.Reader) ([]*sim.Game, []Failure, error) {
	records, err := SplitGames(r)
	if err != nil {
		return nil, nil, err
	}
	var games []*sim.Game
	var failures []Failure
	for _, rows := range records {
		g, err := ParseGame(rows)
		if err != nil {
			if p.ErrorOnFailure {
				return nil, nil, err
			}
			id := gameID(rows)
			log.Printf("game %s failed to parse: %v", id, err)
			failures = append(failures, Failure{GameID: id, Err: err})
			continue
		}
		games = append(games, g)
	}
	return games, failures, nil
}

// SplitGames splits an event file into its constituent game records. A game
// record always starts with an id row.
func SplitGames(r io.Reader) ([][][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var games [][][]string
	var current [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		if row[0] == "id" {
			if len(current) > 0 {
				games = append(games, current)
			}
			current = [][]string{row}
		} else if len(current) > 0 {
			current = append(current, row)
		}
	}
	if len(current) > 0 {
		games = append(games, current)
	}
	return games, nil
}

func gameID(rows [][]string) string {
	if len(rows) > 0 && len(rows[0]) > 1 && rows[0][0] == "id" {
		return rows[0][1]
	}
	return "unknown"
}
