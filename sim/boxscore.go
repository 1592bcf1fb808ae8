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

// Box score event names.
const (
	BoxCallPitcher     = "call_pitcher"
	BoxPlateAppearance = "plate_appearance"
	BoxPitch           = "pitch"
	BoxPickoff         = "pickoff"
	BoxHitByPitch      = "hit_by_pitch"
	BoxBalk            = "balk"
	BoxStrikeout       = "strikeout"
	BoxWalk            = "walk"
)

// BoxScoreEvent is a summary-level event emitted by the game state machine.
// Traditional performance metrics (ERA, batting average, pitch counts) are
// counts of these rather than counts of raw game events, so the state machine
// produces them as a side channel while it replays a game.
type BoxScoreEvent struct {
	Name     string   `json:"name"`
	Pitcher  string   `json:"pitcher,omitempty"`
	Batter   string   `json:"batter,omitempty"`
	Runner   string   `json:"runner,omitempty"`
	Fielders []string `json:"fielders,omitempty"`
	Date     string   `json:"date,omitempty"`
	// Decrement cancels a previously emitted event of the same kind. Plate
	// appearances are easier to occasionally take back than to emit only
	// when warranted.
	Decrement bool `json:"decrement,omitempty"`
}

// CallPitcher records a pitcher being called to the mound, including the
// starters at the beginning of a game.
func CallPitcher(pitcher, date string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxCallPitcher, Pitcher: pitcher, Date: date}
}

func PlateAppearance(pitcher, batter string, decrement bool) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxPlateAppearance, Pitcher: pitcher, Batter: batter, Decrement: decrement}
}

func PitchThrown(pitcher string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxPitch, Pitcher: pitcher}
}

func PickoffThrow(pitcher, runner string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxPickoff, Pitcher: pitcher, Runner: runner}
}

func HitByPitch(pitcher, batter string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxHitByPitch, Pitcher: pitcher, Batter: batter}
}

func BalkCalled(pitcher string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxBalk, Pitcher: pitcher}
}

func Strikeout(pitcher, batter string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxStrikeout, Pitcher: pitcher, Batter: batter}
}

func Walked(pitcher, batter string) BoxScoreEvent {
	return BoxScoreEvent{Name: BoxWalk, Pitcher: pitcher, Batter: batter}
}
