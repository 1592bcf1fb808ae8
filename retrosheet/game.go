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

	"github.com/ttbt-io/playlog/sim"
)

// rowClasses maps Retrosheet row types to the parser's row partitions. Rows
// of any other type (version, data, ...) carry nothing the replay needs.
var rowClasses = map[string]string{
	"id": "metadata", "info": "metadata",
	"start": "roster",
	"play":  "event", "sub": "event", "badj": "event", "padj": "event", "com": "event",
}

// gameParser parses a single game record.
type gameParser struct {
	metadataRows [][]string
	rosterRows   [][]string
	eventRows    [][]string
}

// advanceModes is the order in which ambiguous-advance interpretations are
// tried. The semantics of advances in Retrosheet records aren't consistent
// enough to pick one interpretation up front, but a wrong interpretation
// produces a wrong count of outs, which always produces a wrong conclusion
// about when the game ends. So each interpretation is tried in turn and the
// first one whose replay ends the game exactly at the last event wins.
var advanceModes = []sim.AdvanceMode{sim.OutIfNewDestination, sim.AlwaysAdvance, sim.NeverAdvance}

// ParseGame parses one game record, trying each advance interpretation until
// the replay verifies. The returned error carries the game id.
func ParseGame(rows [][]string) (*sim.Game, error) {
	p := newGameParser(rows)
	var lastErr error
	for _, mode := range advanceModes {
		g, err := p.attempt(mode)
		if err != nil {
			lastErr = err
			continue
		}
		over, err := g.VerifyEnding()
		if err != nil {
			lastErr = err
			continue
		}
		if over {
			return g, nil
		}
		lastErr = fmt.Errorf("replay does not end at the last event")
	}
	return nil, fmt.Errorf("game %s: %w", gameID(rows), lastErr)
}

func newGameParser(rows [][]string) *gameParser {
	p := &gameParser{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch rowClasses[row[0]] {
		case "metadata":
			p.metadataRows = append(p.metadataRows, row)
		case "roster":
			p.rosterRows = append(p.rosterRows, row)
		case "event":
			p.eventRows = append(p.eventRows, row)
		}
	}
	return p
}

func (p *gameParser) attempt(mode sim.AdvanceMode) (*sim.Game, error) {
	md, err := sim.MetadataFromRows(p.metadataRows)
	if err != nil {
		return nil, err
	}
	rosters, err := p.parseRosters()
	if err != nil {
		return nil, err
	}
	events, err := newEventParser(p.eventRows, mode).parse()
	if err != nil {
		return nil, err
	}
	return sim.NewGame(md, rosters, events, nil)
}

func (p *gameParser) parseRosters() (map[string]*sim.Roster, error) {
	const teamNdx = 3
	split := map[string][][]string{}
	for _, row := range p.rosterRows {
		if len(row) <= teamNdx {
			return nil, fmt.Errorf("short roster row: %v", row)
		}
		team := sim.Away
		if row[teamNdx] == "1" {
			team = sim.Home
		}
		split[team] = append(split[team], row)
	}
	rosters := make(map[string]*sim.Roster, 2)
	for _, team := range []string{sim.Home, sim.Away} {
		r, err := sim.RosterFromRows(split[team])
		if err != nil {
			return nil, fmt.Errorf("%s roster: %w", team, err)
		}
		rosters[team] = r
	}
	return rosters, nil
}
