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
	"strings"

	"github.com/ttbt-io/playlog/sim"
)

// Column indices within Retrosheet event rows.
const (
	eventTypeNdx = 0
	subNdx       = 1
	commentNdx   = 1
	batterNdx    = 3
	pitchesNdx   = 5
	playNdx      = 6
)

// eventParser turns the event rows of one game into a flat event list.
//
// Raw Retrosheet play rows are stateful: when a plate appearance is
// interrupted (base running play, substitution), the next row repeats every
// pitch thrown since the appearance began. Most of this parser is cleaning
// that state dependence away so each row can be parsed on its own.
type eventParser struct {
	rows [][]string
	mode sim.AdvanceMode

	// Row-cleaning state.
	currentBatter  string
	currentPitches string
	midPlateSub    bool
	currentSubs    []string
}

func newEventParser(rows [][]string, mode sim.AdvanceMode) *eventParser {
	p := &eventParser{mode: mode}
	// Rows get rewritten during cleaning; the caller's rows stay intact so
	// another advance interpretation can retry from scratch.
	p.rows = make([][]string, len(rows))
	for i, row := range rows {
		p.rows[i] = append([]string(nil), row...)
	}
	p.cleanRows()
	return p
}

// cleanRows translates the rows into a state-independent format.
func (p *eventParser) cleanRows() {
	for _, row := range p.rows {
		p.removeReview(row)
	}
	p.removeDuplicates()
	for _, row := range p.rows {
		p.cleanRow(row)
	}
}

// removeReview rewrites a play row that records an umpire review of the
// previous play: pitches ending in N with an OA play. The N pseudo-pitch is
// dropped and the play relabeled a no-play.
func (p *eventParser) removeReview(row []string) {
	if row[eventTypeNdx] != "play" || len(row) <= playNdx {
		return
	}
	pitches := row[pitchesNdx]
	if len(pitches) > 0 && pitches[len(pitches)-1] == 'N' && strings.HasPrefix(row[playNdx], "OA") {
		row[pitchesNdx] = pitches[:len(pitches)-1]
		row[playNdx] = "NP" + row[playNdx][2:]
	}
}

// removeDuplicates drops play rows that literally repeat the previous play
// row: same batter, same non-empty pitches, both no-plays.
func (p *eventParser) removeDuplicates() {
	lastPlayNdx := -1
	var kept [][]string
	for ndx, row := range p.rows {
		if lastPlayNdx >= 0 && isDuplicatePlay(p.rows[lastPlayNdx], row) {
			continue
		}
		if row[eventTypeNdx] == "play" {
			lastPlayNdx = ndx
		}
		kept = append(kept, row)
	}
	p.rows = kept
}

func isDuplicatePlay(last, current []string) bool {
	if len(last) <= playNdx || len(current) <= playNdx {
		return false
	}
	return last[eventTypeNdx] == "play" && current[eventTypeNdx] == "play" &&
		last[pitchesNdx] == current[pitchesNdx] && current[pitchesNdx] != "" &&
		last[batterNdx] == current[batterNdx] &&
		last[playNdx] == "NP" && current[playNdx] == "NP"
}

// cleanRow rewrites one row in place so it can be parsed independently.
func (p *eventParser) cleanRow(row []string) {
	if row[eventTypeNdx] == "play" && len(row) <= playNdx {
		return
	}
	if p.isDuplicateSub(row) {
		row[pitchesNdx] = ""
	}
	freshMidPlateSub := p.checkForMidPlateSub(row)

	// Keep a running list of substitutions during a mid-plate sub.
	if p.midPlateSub && row[eventTypeNdx] == "sub" {
		p.currentSubs = append(p.currentSubs, row[subNdx])
	}

	if row[eventTypeNdx] == "play" && row[pitchesNdx] != "" {
		originalPitches := row[pitchesNdx]
		if p.midPlateSub && !freshMidPlateSub && row[playNdx] != "NP" {
			p.handleMidPlateSub(row)
		}
		// A repeated batter means repeated pitches; strip them.
		if row[batterNdx] == p.currentBatter {
			row[pitchesNdx] = p.cleanPitches(row[pitchesNdx])
		}
		p.currentBatter = row[batterNdx]
		p.currentPitches = originalPitches
	}
}

// isDuplicateSub reports whether a play row duplicates the previous play row
// around a substitution.
func (p *eventParser) isDuplicateSub(row []string) bool {
	return row[eventTypeNdx] == "play" &&
		row[batterNdx] == p.currentBatter &&
		row[pitchesNdx] == p.currentPitches &&
		len(row[pitchesNdx]) > 0
}

// checkForMidPlateSub reports whether row starts a mid-plate-appearance
// substitution span.
//
// Mid-plate substitutions confound the simple repeated-batter check for
// multi-row plate appearances, since the batter changes mid-count.
func (p *eventParser) checkForMidPlateSub(row []string) bool {
	if p.midPlateSub {
		return false
	}
	// All mid-plate substitutions are no-play records.
	if row[eventTypeNdx] == "play" && row[playNdx] == "NP" {
		// After a non-pitch event, the sub repeats the batter without
		// pitches; after a pitch, the no-play row carries the pitches.
		postEventSub := row[batterNdx] == p.currentBatter && row[pitchesNdx] == ""
		postPitchSub := len(row[pitchesNdx]) > 0
		p.midPlateSub = postEventSub || postPitchSub
	} else {
		p.midPlateSub = false
	}
	return p.midPlateSub
}

// handleMidPlateSub fixes up the row carrying the relief batter's portion of
// a split plate appearance.
func (p *eventParser) handleMidPlateSub(row []string) {
	for _, s := range p.currentSubs {
		if row[batterNdx] == s {
			// Force the batter identity so the repeated-pitch stripping
			// kicks in for the new batter.
			p.currentBatter = row[batterNdx]
			break
		}
	}
	p.midPlateSub = false
	p.currentSubs = nil
}

// cleanPitches strips the pitches already seen in the previous row of the
// same plate appearance. Dots are no-play filler and don't count.
func (p *eventParser) cleanPitches(newPitches string) string {
	if newPitches == "" {
		return newPitches
	}
	seen := strings.ReplaceAll(p.currentPitches, ".", "")
	cleaned := strings.ReplaceAll(newPitches, ".", "")
	if len(seen) >= len(cleaned) {
		return ""
	}
	return cleaned[len(seen):]
}

// parse converts the cleaned rows into events.
func (p *eventParser) parse() ([]sim.Event, error) {
	var events []sim.Event
	for _, row := range p.rows {
		switch row[eventTypeNdx] {
		case "play":
			playEvents, err := parsePlayRow(row, p.mode)
			if err != nil {
				return nil, err
			}
			events = append(events, playEvents...)
		case "sub":
			s, err := sim.SubstitutionFromRow(row)
			if err != nil {
				return nil, err
			}
			events = append(events, &s)
		case "badj", "padj":
			adj, err := sim.HandednessFromRow(row)
			if err != nil {
				return nil, err
			}
			events = append(events, &adj)
		case "com":
			if e := parseComment(row); e != nil {
				events = append(events, e)
			}
		default:
			return nil, fmt.Errorf("unknown event row type %q", row[eventTypeNdx])
		}
	}
	return events, nil
}

// parseComment inspects a comment row for the exotic events that are only
// recorded as comments.
func parseComment(row []string) sim.Event {
	if len(row) <= commentNdx {
		return nil
	}
	comment := strings.ToLower(row[commentNdx])
	// Games called early are marked by comments that almost invariably
	// start with "game".
	if strings.HasPrefix(comment, "$game") || strings.HasPrefix(comment, "game") {
		if e := sim.GameCalledFromComment(row[commentNdx]); e != nil {
			return e
		}
		return nil
	}
	// Once in a blue moon a batter walks on three balls. That is always
	// marked with a comment; the fix is a fictitious fourth ball.
	threeBallWalk := (strings.HasPrefix(comment, "$walk") &&
		(strings.Contains(comment, "3") || strings.Contains(comment, "three"))) ||
		strings.Contains(comment, "3 balls") ||
		strings.Contains(comment, "three balls")
	if threeBallWalk {
		p, err := sim.PitchFromCode("B")
		if err != nil {
			return nil
		}
		return p
	}
	return nil
}
