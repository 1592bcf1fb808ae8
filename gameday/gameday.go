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

// Package gameday reads MLB GameDay telemetry trees and reconciles them with
// replayable game records. GameDay and Retrosheet describe the same games
// from independent sources, and they disagree often enough that attaching
// telemetry to pitches is an alignment problem, not a simple zip.
package gameday

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ttbt-io/playlog/sim"
)

// Pitch is one pitch as recorded by the GameDay telemetry system.
type Pitch struct {
	ID  int
	Des string
	Fx  *sim.PitchFx
}

// desCodes maps the GameDay textual pitch description to the simplified
// one-character code used to line pitches up against the play-by-play record.
var desCodes = map[string]string{
	"Ball":                      "B",
	"Ball In Dirt":              "B",
	"Intent Ball":               "B",
	"Automatic Ball":            "B",
	"Pitchout":                  "P",
	"Swinging Pitchout":         "Q",
	"Foul Pitchout":             "Q",
	"Called Strike":             "C",
	"Automatic Strike":          "C",
	"Swinging Strike":           "S",
	"Swinging Strike (Blocked)": "S",
	"Foul Tip":                  "S",
	"Missed Bunt":               "M",
	"Foul":                      "F",
	"Foul (Runner Going)":       "F",
	"Foul Bunt":                 "L",
	"Hit By Pitch":              "H",
	"In play, no out":           "X",
	"In play, out(s)":           "X",
	"In play, run(s)":           "X",
}

// Code returns the simplified one-character code for the pitch, or "" when
// the description isn't part of the known vocabulary.
func (p *Pitch) Code() string {
	return desCodes[p.Des]
}

// AtBat is one plate appearance as recorded by GameDay.
type AtBat struct {
	Num     int
	Batter  string
	Pitches []*Pitch
}

// The subset of the inning_all.xml tree the reconciliation needs. Everything
// else (actions, pickoff throws, runner elements) is skipped by the decoder.

type gameTree struct {
	XMLName xml.Name    `xml:"game"`
	Innings []inningXML `xml:"inning"`
}

type inningXML struct {
	Top    []atBatXML `xml:"top>atbat"`
	Bottom []atBatXML `xml:"bottom>atbat"`
}

type atBatXML struct {
	Num     int        `xml:"num,attr"`
	Batter  string     `xml:"batter,attr"`
	Pitches []pitchXML `xml:"pitch"`
}

type pitchXML struct {
	ID  int    `xml:"id,attr"`
	Des string `xml:"des,attr"`

	StartSpeed       float64 `xml:"start_speed,attr"`
	EndSpeed         float64 `xml:"end_speed,attr"`
	StrikeZoneTop    float64 `xml:"sz_top,attr"`
	StrikeZoneBottom float64 `xml:"sz_bot,attr"`
	DeltaX           float64 `xml:"pfx_x,attr"`
	DeltaZ           float64 `xml:"pfx_z,attr"`
	PlateX           float64 `xml:"px,attr"`
	PlateZ           float64 `xml:"pz,attr"`
	StartX           float64 `xml:"x0,attr"`
	StartY           float64 `xml:"y0,attr"`
	StartZ           float64 `xml:"z0,attr"`
	VelocityX        float64 `xml:"vx0,attr"`
	VelocityY        float64 `xml:"vy0,attr"`
	VelocityZ        float64 `xml:"vz0,attr"`
	AccelX           float64 `xml:"ax,attr"`
	AccelY           float64 `xml:"ay,attr"`
	AccelZ           float64 `xml:"az,attr"`
	BreakY           float64 `xml:"break_y,attr"`
	BreakAngle       float64 `xml:"break_angle,attr"`
	BreakLength      float64 `xml:"break_length,attr"`
	SpinDirection    float64 `xml:"spin_dir,attr"`
	SpinRate         float64 `xml:"spin_rate,attr"`
}

func (p *pitchXML) fx() *sim.PitchFx {
	return &sim.PitchFx{
		StartSpeed:       p.StartSpeed,
		EndSpeed:         p.EndSpeed,
		StrikeZoneTop:    p.StrikeZoneTop,
		StrikeZoneBottom: p.StrikeZoneBottom,
		DeltaX:           p.DeltaX,
		DeltaZ:           p.DeltaZ,
		PlateX:           p.PlateX,
		PlateZ:           p.PlateZ,
		StartX:           p.StartX,
		StartY:           p.StartY,
		StartZ:           p.StartZ,
		VelocityX:        p.VelocityX,
		VelocityY:        p.VelocityY,
		VelocityZ:        p.VelocityZ,
		AccelX:           p.AccelX,
		AccelY:           p.AccelY,
		AccelZ:           p.AccelZ,
		BreakY:           p.BreakY,
		BreakAngle:       p.BreakAngle,
		BreakLength:      p.BreakLength,
		SpinDirection:    p.SpinDirection,
		SpinRate:         p.SpinRate,
	}
}

// ReadAtBats parses an inning_all.xml document into its at-bats, in game
// order: each inning's top half followed by its bottom half.
func ReadAtBats(r io.Reader) ([]*AtBat, error) {
	var tree gameTree
	if err := xml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("gameday tree: %w", err)
	}
	var atBats []*AtBat
	for _, inning := range tree.Innings {
		for _, half := range [][]atBatXML{inning.Top, inning.Bottom} {
			for _, ab := range half {
				atBat := &AtBat{Num: ab.Num, Batter: ab.Batter}
				for i := range ab.Pitches {
					p := &ab.Pitches[i]
					atBat.Pitches = append(atBat.Pitches, &Pitch{ID: p.ID, Des: p.Des, Fx: p.fx()})
				}
				atBats = append(atBats, atBat)
			}
		}
	}
	return atBats, nil
}

// FileName returns the path of the telemetry file for a game under the data
// root. The layout mirrors the GameDay download tree: one file per game,
// partitioned by year.
func FileName(dataRoot, gameID string) string {
	if len(gameID) < 7 {
		return ""
	}
	year := gameID[3:7]
	return filepath.Join(dataRoot, "gameday", "pitches", year, gameID+".xml")
}

// LoadAtBats reads the telemetry file for a game. A game with no telemetry
// file on disk has no telemetry; that is not an error.
func LoadAtBats(dataRoot, gameID string) ([]*AtBat, error) {
	name := FileName(dataRoot, gameID)
	if name == "" {
		return nil, fmt.Errorf("malformed game id %q", gameID)
	}
	f, err := os.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	atBats, err := ReadAtBats(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return atBats, nil
}
