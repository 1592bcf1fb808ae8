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
	"regexp"
	"strconv"
)

// Arc classifications, highest flight first.
const (
	ArcPop    = 2
	ArcFly    = 1
	ArcLine   = 0
	ArcGround = -1
)

// HitLocation represents where a batted ball was hit.
type HitLocation struct {
	// Angle of the ball's path: 0 toward center field, right positive.
	Angle float64 `json:"angle"`
	// Depth of the ball's path: 0 at home plate, larger farther away.
	Depth float64 `json:"depth"`
	// Arc is the vertical trajectory (ArcPop..ArcGround), nil when unknown.
	Arc *int `json:"arc"`
	// Bunt is whether the hit was a bunt.
	Bunt bool `json:"bunt,omitempty"`
}

// arcClasses maps both the Retrosheet single-letter trajectory codes and the
// spelled-out guesses the grammar produces.
var arcClasses = map[string]int{
	"P": ArcPop,
	"F": ArcFly, "fly": ArcFly,
	"L": ArcLine, "line": ArcLine,
	"G": ArcGround, "ground": ArcGround,
}

// locationGrid maps a fielder position code (or a legal pair of adjacent
// positions) to a coarse angle/depth pair.
var locationGrid = map[int][2]float64{
	2: {0, 0}, 25: {-1, 1}, 23: {1, 1},
	1: {0, 2}, 15: {-1, 2}, 13: {1, 2},
	5: {-3, 4}, 56: {-2, 4}, 6: {-1, 4}, 46: {0, 4}, 4: {1, 4}, 34: {2, 4}, 3: {3, 4},
	7: {-2, 7}, 78: {-1, 7}, 8: {0, 7}, 89: {1, 7}, 9: {2, 7},
	0: {0, 0},
}

// locationModifiers maps the Retrosheet distance/lateral modifier to an
// angle/depth adjustment. The angle component flips sign on the left side of
// the field so "L" always means toward the foul line.
var locationModifiers = map[string][2]float64{
	"": {0, 0},
	"S": {0, -1}, "D": {0, 1}, "XD": {0, 2},
	"M": {-0.5, 0}, "L": {1, 0},
	"LS": {1, -1}, "LD": {1, 1}, "LXD": {1, 2}, "MD": {-0.5, 1},
}

var (
	locationDigitsRe = regexp.MustCompile(`[1-9]+`)
	arcSignRe        = regexp.MustCompile(`[+-]`)
)

// HitLocationFromRetrosheet builds a hit location from its parts: a location
// code ("0" when unknown), a distance modifier, an arc name ("" for none),
// and a bunt flag.
func HitLocationFromRetrosheet(location, modifier, arc string, bunt bool) (*HitLocation, error) {
	code, err := strconv.Atoi(location)
	if err != nil {
		return nil, fmt.Errorf("bad hit location %q: %w", location, err)
	}
	grid, ok := locationGrid[code]
	if !ok {
		return nil, fmt.Errorf("unknown hit location %q", location)
	}
	adjust, ok := locationModifiers[modifier]
	if !ok {
		return nil, fmt.Errorf("unknown hit location modifier %q", modifier)
	}
	if grid[0] < 0 {
		adjust[0] *= -1
	}
	loc := &HitLocation{Angle: grid[0] + adjust[0], Depth: grid[1] + adjust[1], Bunt: bunt}
	if arc != "" {
		class, ok := arcClasses[arc]
		if !ok {
			return nil, fmt.Errorf("unknown arc %q", arc)
		}
		loc.Arc = &class
	}
	return loc, nil
}

// HitLocationFromModifier parses a full hit-location modifier token, e.g.
// "BG25S" (bunt, ground, in front of the plate, shallow).
func HitLocationFromModifier(text string) (*HitLocation, error) {
	text = arcSignRe.ReplaceAllString(text, "")
	bunt := len(text) > 0 && text[0] == 'B'
	if bunt {
		text = text[1:]
	}
	if text == "" {
		return nil, fmt.Errorf("empty hit location modifier")
	}
	arc := string(text[0])
	text = text[1:]
	location := locationDigitsRe.FindString(text)
	if location == "" {
		location = "0"
	}
	text = locationDigitsRe.ReplaceAllString(text, "")
	// A trailing F means the ball landed foul; not tracked.
	if len(text) > 0 && text[len(text)-1] == 'F' {
		text = text[:len(text)-1]
	}
	return HitLocationFromRetrosheet(location, text, arc, bunt)
}

// AddArc fills in trajectory information from a bare arc modifier like "G+"
// or "BP".
func (h *HitLocation) AddArc(arc string) {
	if arc == "" {
		return
	}
	if arc[0] == 'B' {
		h.Bunt = true
		arc = arc[1:]
	}
	if arc == "" {
		return
	}
	if class, ok := arcClasses[string(arc[0])]; ok {
		c := class
		h.Arc = &c
	}
}
