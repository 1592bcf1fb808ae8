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
	"strings"
)

// Metadata holds everything about a game that isn't part of the play-by-play:
// identifiers, teams, officials, and ambient conditions.
type Metadata struct {
	ID                  string `json:"id"`
	HomeTeam            string `json:"homeTeam,omitempty"`
	AwayTeam            string `json:"awayTeam,omitempty"`
	Location            string `json:"location,omitempty"`
	GameDate            string `json:"gameDate,omitempty"` // YYYY/MM/DD
	GameNumber          int    `json:"gameNumber"`
	StartTime           string `json:"startTime,omitempty"`
	UseDesignatedHitter bool   `json:"useDesignatedHitter"`
	HomePlateUmpire     string `json:"homePlateUmpire,omitempty"`
	FirstBaseUmpire     string `json:"firstBaseUmpire,omitempty"`
	SecondBaseUmpire    string `json:"secondBaseUmpire,omitempty"`
	ThirdBaseUmpire     string `json:"thirdBaseUmpire,omitempty"`
	Temperature         int    `json:"temperature,omitempty"`
	WindDirection       string `json:"windDirection,omitempty"`
	WindSpeed           int    `json:"windSpeed,omitempty"`
	FieldCondition      string `json:"fieldCondition,omitempty"`
	Precipitation       string `json:"precipitation,omitempty"`
	SkyCondition        string `json:"skyCondition,omitempty"`
	Attendance          int    `json:"attendance,omitempty"`
}

var metadataIntRe = regexp.MustCompile(`[0-9]+`)

// parseInfoInt pulls the first run of digits out of a Retrosheet info value.
// Values like "unknown" or "" coerce to zero.
func parseInfoInt(value string) int {
	m := metadataIntRe.FindString(value)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// MetadataFromRows constructs game metadata from the id and info rows of a
// Retrosheet event file. The id row is always the first row of a game.
func MetadataFromRows(rows [][]string) (*Metadata, error) {
	if len(rows) == 0 || len(rows[0]) < 2 || rows[0][0] != "id" {
		return nil, fmt.Errorf("metadata rows must start with an id row")
	}
	md := &Metadata{ID: rows[0][1]}
	for _, row := range rows[1:] {
		if len(row) < 3 || row[0] != "info" {
			continue
		}
		value := row[2]
		switch row[1] {
		case "hometeam":
			md.HomeTeam = value
		case "visteam":
			md.AwayTeam = value
		case "site":
			md.Location = value
		case "date":
			md.GameDate = value
		case "number":
			md.GameNumber = parseInfoInt(value)
		case "starttime":
			md.StartTime = value
		case "usedh":
			md.UseDesignatedHitter = strings.EqualFold(value, "true")
		case "umphome":
			md.HomePlateUmpire = value
		case "ump1b":
			md.FirstBaseUmpire = value
		case "ump2b":
			md.SecondBaseUmpire = value
		case "ump3b":
			md.ThirdBaseUmpire = value
		case "temp":
			md.Temperature = parseInfoInt(value)
		case "winddir":
			md.WindDirection = value
		case "windspeed":
			md.WindSpeed = parseInfoInt(value)
		case "fieldcond":
			md.FieldCondition = value
		case "precip":
			md.Precipitation = value
		case "sky":
			md.SkyCondition = value
		case "attendance":
			md.Attendance = parseInfoInt(value)
		}
	}
	return md, nil
}

// YearMonthDay splits the game date into its components. The date is kept in
// Retrosheet's YYYY/MM/DD spelling so the components are fixed-width slices.
func (md *Metadata) YearMonthDay() (year, month, day string) {
	d := md.GameDate
	if len(d) < 10 {
		return "", "", ""
	}
	return d[0:4], d[5:7], d[8:10]
}

// GamedayID returns the MLB GameDay identifier for the game, e.g.
// gid_2010_04_05_atlmlb_chnmlb_1. Single games are numbered 1 even though
// Retrosheet numbers them 0.
func (md *Metadata) GamedayID() string {
	year, month, day := md.YearMonthDay()
	away := strings.ToLower(md.AwayTeam) + "mlb"
	home := strings.ToLower(md.HomeTeam) + "mlb"
	number := "1"
	if md.GameNumber > 0 {
		number = strconv.Itoa(md.GameNumber)
	}
	return strings.Join([]string{"gid", year, month, day, away, home, number}, "_")
}

// GamedayURL returns the root URL of the MLB GameDay data for the game.
func (md *Metadata) GamedayURL() string {
	year, month, day := md.YearMonthDay()
	return fmt.Sprintf("http://gd2.mlb.com/components/game/mlb/year_%s/month_%s/day_%s/%s",
		year, month, day, md.GamedayID())
}
