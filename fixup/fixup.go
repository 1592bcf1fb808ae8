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

// Package fixup edits source data files in place. A handful of game records
// contain events strange enough that correcting the data is simpler and
// safer than teaching the parsers to cope with them.
package fixup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ttbt-io/playlog/gameday"
)

// retrosheetFileName finds the event file holding a game under the data
// root. Game ids are TTTYYYYMMDDN; event files are partitioned by year and
// named for the home team.
func retrosheetFileName(dataRoot, gameID string) (string, error) {
	if len(gameID) < 7 {
		return "", fmt.Errorf("malformed game id %q", gameID)
	}
	team := gameID[:3]
	year := gameID[3:7]
	pattern := filepath.Join(dataRoot, "retrosheet", year, year+team+".EV*")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", err
	}
	return matches[0], nil
}

// ReplaceLine replaces a single line within one game's span of its Retrosheet
// event file. It reports whether a replacement was made. The old and new
// lines are given without line endings; the event files use DOS endings.
func ReplaceLine(dataRoot, gameID, oldLine, newLine string) (bool, error) {
	name, err := retrosheetFileName(dataRoot, gameID)
	if err != nil || name == "" {
		return false, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return false, err
	}

	lines := strings.Split(string(data), "\r\n")
	idLine := "id," + gameID
	inGame := false
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, "id,") {
			inGame = line == idLine
		}
		if inGame && !replaced && line == oldLine {
			lines[i] = newLine
			replaced = true
		}
	}
	if !replaced {
		return false, nil
	}
	if err := os.WriteFile(name, []byte(strings.Join(lines, "\r\n")), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// RemovePitch removes a specific pitch, by its GameDay id, from a game's
// telemetry file. It reports whether the pitch was found and removed.
func RemovePitch(dataRoot, gameID string, pitchID int) (bool, error) {
	return removeGameDayElement(dataRoot, gameID, "pitch", "id", fmt.Sprint(pitchID))
}

// RemoveAtBat removes a whole at-bat, by its GameDay number, from a game's
// telemetry file. It reports whether the at-bat was found and removed.
func RemoveAtBat(dataRoot, gameID string, atBatNum int) (bool, error) {
	return removeGameDayElement(dataRoot, gameID, "atbat", "num", fmt.Sprint(atBatNum))
}

// removeGameDayElement rewrites a GameDay XML file with the first element
// matching the name and attribute dropped, children included.
func removeGameDayElement(dataRoot, gameID, element, attr, value string) (bool, error) {
	name := gameday.FileName(dataRoot, gameID)
	if name == "" {
		return false, fmt.Errorf("malformed game id %q", gameID)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	filtered, removed, err := dropElement(data, element, attr, value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	if !removed {
		return false, nil
	}
	if err := os.WriteFile(name, filtered, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func dropElement(data []byte, element, attr, value string) ([]byte, bool, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var out bytes.Buffer
	encoder := xml.NewEncoder(&out)

	removed := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if start, ok := tok.(xml.StartElement); ok && !removed &&
			start.Name.Local == element && hasAttr(start, attr, value) {
			if err := decoder.Skip(); err != nil {
				return nil, false, err
			}
			removed = true
			continue
		}
		if err := encoder.EncodeToken(tok); err != nil {
			return nil, false, err
		}
	}
	if err := encoder.Flush(); err != nil {
		return nil, false, err
	}
	return out.Bytes(), removed, nil
}

func hasAttr(start xml.StartElement, name, value string) bool {
	for _, a := range start.Attr {
		if a.Name.Local == name && a.Value == value {
			return true
		}
	}
	return false
}
