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
	"strings"
)

// AdvanceMode is the strategy for interpreting ambiguous Retrosheet advance
// annotations. An advance tagged with an error modifier doesn't say whether
// the runner ended up safe or out; the parser tries each strategy in turn and
// keeps the first one whose replay ends the game at the right moment.
type AdvanceMode int

const (
	// NeverAdvance: a runner marked out is out.
	NeverAdvance AdvanceMode = iota
	// OutIfNewDestination: a runner marked out is out only if the ending
	// base differs from the starting base -- 2X2 is safe, 2X3 is out.
	OutIfNewDestination
	// AlwaysAdvance: a runner marked out still advances.
	AlwaysAdvance
)

// Advances represents the base transitions on a hit or base running play.
type Advances struct {
	// Batter is the destination of the batter.
	Batter Base `json:"batter"`
	// Runners holds the destinations of the runners starting at first,
	// second, and third base, respectively.
	Runners [3]Base `json:"runners"`
	// Mode is the error-interpretation strategy in effect when the advance
	// annotations were parsed. The stored destinations are already resolved
	// under it, so it isn't serialized.
	Mode AdvanceMode `json:"-"`
}

// NewAdvances returns an Advances with nobody moving.
func NewAdvances() Advances {
	return Advances{Batter: NoAdvance, Runners: [3]Base{NoAdvance, NoAdvance, NoAdvance}}
}

var runMarkerRe = regexp.MustCompile(`\([NU]R\)`)

// AddAnnotations merges the trailing advance annotations of a play record
// ("B-1;2X3(E5)" and the like) into a.
func (a *Advances) AddAnnotations(text string) error {
	for _, advance := range strings.Split(text, ";") {
		if err := a.parseAdvance(advance); err != nil {
			return err
		}
	}
	return nil
}

func (a *Advances) parseAdvance(advance string) error {
	const (
		runnerNdx      = 0
		successNdx     = 1
		destinationNdx = 2
	)
	if len(advance) <= destinationNdx {
		return fmt.Errorf("short advance %q", advance)
	}
	destination, err := parseDestination(advance[destinationNdx])
	if err != nil {
		return fmt.Errorf("advance %q: %w", advance, err)
	}
	switch c := advance[runnerNdx]; {
	case c == 'B':
		a.Batter = a.resolveDestination(advance, destination, a.Batter)
	case c >= '1' && c <= '3':
		runner := Base(c - '1')
		a.Runners[runner] = a.resolveDestination(advance, destination, NoAdvance)
	default:
		return fmt.Errorf("advance %q: unknown runner %q", advance, string(c))
	}
	return nil
}

func parseDestination(c byte) (Base, error) {
	switch c {
	case '1', '2', '3':
		return Base(c - '1'), nil
	case 'H':
		return HomePlate, nil
	}
	return NoAdvance, fmt.Errorf("unknown destination %q", string(c))
}

// resolveDestination applies the error-interpretation strategy. A "(UR)" or
// "(NR)" marker means the run definitely counted, so the runner advanced no
// matter what the out marker says.
func (a *Advances) resolveDestination(advance string, destination, current Base) Base {
	const successNdx = 1
	isNewDestination := current != NoAdvance && current != StillActive && current != Out &&
		destination != current
	knownRun := runMarkerRe.MatchString(advance)

	var errorAdvance bool
	switch a.Mode {
	case NeverAdvance:
		errorAdvance = knownRun
	case OutIfNewDestination:
		errorAdvance = knownRun || (strings.Contains(advance, "E") && !isNewDestination)
	default: // AlwaysAdvance
		errorAdvance = knownRun || strings.Contains(advance, "E")
	}
	if advance[successNdx] == 'X' && !errorAdvance {
		return Out
	}
	return destination
}

// Play holds the parts shared by batted-ball and base-running plays.
type Play struct {
	// Advances is the base running transition of the play.
	Advances Advances `json:"advances"`
	// Fielders is the fielders who participated, in chronological order.
	// The order encodes the throw sequence, but is only stored.
	Fielders []int `json:"fielders,omitempty"`
	// Errors is the fielders charged with errors on the play.
	Errors []int `json:"errors,omitempty"`
}

// AddError records an error on fielder, once.
func (p *Play) AddError(fielder int) {
	for _, f := range p.Errors {
		if f == fielder {
			return
		}
	}
	p.Errors = append(p.Errors, fielder)
}

// BattedBall represents a play triggered by the batter making contact.
type BattedBall struct {
	Play
	// HitLocation is where the ball was hit, when known.
	HitLocation *HitLocation `json:"hitLocation,omitempty"`
	// Interference is whether the batter reached on catcher's interference.
	Interference bool `json:"interference,omitempty"`
}

// BaseRunning represents a play triggered by a base running event.
type BaseRunning struct {
	Play
}

// The batted-ball description patterns, tried strictly in order: several
// deliberately overlap (a bare fielder sequence vs. one with a parenthesized
// runner vs. a double-play form), and the first match wins.
var battedBallPatterns = []struct {
	re    *regexp.Regexp
	parse func(text string) *BattedBall
}{
	{regexp.MustCompile(`^(S|D|T|HR?|DGR)[1-9]*$`), parseBaseHit},
	{regexp.MustCompile(`^[1-9]*?E[1-9]$`), parseBaseOnError},
	{regexp.MustCompile(`^FLE[1-9]$`), parseFoulBallError},
	{regexp.MustCompile(`^C$`), parseInterference},
	{regexp.MustCompile(`^FC[1-9]?$`), parseFieldersChoice},
	{regexp.MustCompile(`^[1-9]+\([1-3]\)$`), parseForceOut},
	{regexp.MustCompile(`^[1-9]+$`), parseSingleOut},
	{regexp.MustCompile(`^(?:[1-9]+\([1-3]\)[1-9]|[1-9]+\(B\)(?:[1-9]+\([1-3]\))?(?:[1-9]+\([1-3]\))?$)`), parseMultipleOut},
}

// BattedBallFromText parses a Retrosheet batted-ball description. It returns
// nil when no pattern matches, which is not an error by itself: verification
// decides later whether the record was understood well enough.
func BattedBallFromText(text string, mode AdvanceMode) *BattedBall {
	for _, p := range battedBallPatterns {
		if p.re.MatchString(text) {
			play := p.parse(text)
			if play != nil {
				play.Advances.Mode = mode
			}
			return play
		}
	}
	return nil
}

var (
	runnerParenRe      = regexp.MustCompile(`\([B1-3]\)`)
	fielderRe          = regexp.MustCompile(`[1-9]`)
	errorFielderRe     = regexp.MustCompile(`E[1-9]`)
	groundDoublePlayRe = regexp.MustCompile(`^[1-9]+\([1-3]\)[1-9]$`)
)

func parseBaseHit(text string) *BattedBall {
	batter := map[byte]Base{'S': First, 'D': Second, 'T': Third, 'H': HomePlate}[text[0]]
	fielders := playFielders(text)
	adv := NewAdvances()
	adv.Batter = batter
	return &BattedBall{
		Play:        Play{Advances: adv, Fielders: fielders},
		HitLocation: hitLocationFromFielders(fielders, ""),
	}
}

func parseBaseOnError(text string) *BattedBall {
	fielders := playFielders(text)
	var errors []int
	for _, m := range errorFielderRe.FindAllString(text, -1) {
		errors = append(errors, int(m[1]-'0'))
	}
	adv := NewAdvances()
	adv.Batter = First
	return &BattedBall{
		Play:        Play{Advances: adv, Fielders: fielders, Errors: errors},
		HitLocation: hitLocationFromFielders(fielders, ""),
	}
}

func parseFoulBallError(text string) *BattedBall {
	const fielderNdx = 3
	fielders := []int{int(text[fielderNdx] - '0')}
	adv := NewAdvances()
	adv.Batter = StillActive
	// The fielder is by definition the one charged with the error.
	return &BattedBall{Play: Play{Advances: adv, Fielders: fielders, Errors: fielders}}
}

func parseInterference(text string) *BattedBall {
	// All we know is that the batter is on first; modifiers fill in the rest.
	adv := NewAdvances()
	adv.Batter = First
	return &BattedBall{Play: Play{Advances: adv}, Interference: true}
}

func parseFieldersChoice(text string) *BattedBall {
	const fielderNdx = 2
	var fielders []int
	if len(text) > fielderNdx {
		fielders = []int{int(text[fielderNdx] - '0')}
	}
	adv := NewAdvances()
	adv.Batter = First
	return &BattedBall{
		Play:        Play{Advances: adv, Fielders: fielders},
		HitLocation: hitLocationFromFielders(fielders, "ground"),
	}
}

func parseForceOut(text string) *BattedBall {
	fielders := playFielders(text)
	adv := NewAdvances()
	adv.Batter = First
	adv.Runners = playOuts(text)
	return &BattedBall{
		Play:        Play{Advances: adv, Fielders: fielders},
		HitLocation: hitLocationFromFielders(fielders, "ground"),
	}
}

func parseSingleOut(text string) *BattedBall {
	var fielders []int
	for i := 0; i < len(text); i++ {
		fielders = append(fielders, int(text[i]-'0'))
	}
	// A single fielder means the ball was caught (probably a fly); a chain of
	// fielders means an assisted out (probably a grounder).
	arc := "ground"
	if len(fielders) == 1 {
		arc = "fly"
	}
	adv := NewAdvances()
	adv.Batter = Out
	return &BattedBall{
		Play:        Play{Advances: adv, Fielders: fielders},
		HitLocation: hitLocationFromFielders(fielders, arc),
	}
}

func parseMultipleOut(text string) *BattedBall {
	fielders := playFielders(text)
	adv := NewAdvances()
	adv.Runners = playOuts(text)
	arc := "line"
	if groundDoublePlayRe.MatchString(text) {
		arc = "ground"
	}
	if strings.Contains(text, "B") || text[len(text)-1] != ')' {
		adv.Batter = Out
	} else {
		adv.Batter = First
	}
	return &BattedBall{
		Play:        Play{Advances: adv, Fielders: fielders},
		HitLocation: hitLocationFromFielders(fielders, arc),
	}
}

// playFielders extracts the fielder chain, skipping parenthesized runners.
func playFielders(text string) []int {
	stripped := runnerParenRe.ReplaceAllString(text, "")
	var fielders []int
	for _, m := range fielderRe.FindAllString(stripped, -1) {
		fielders = append(fielders, int(m[0]-'0'))
	}
	return fielders
}

// playOuts extracts the runners put out, from the "(1)" style annotations.
func playOuts(text string) [3]Base {
	runners := [3]Base{NoAdvance, NoAdvance, NoAdvance}
	for _, m := range runnerParenRe.FindAllString(text, -1) {
		if c := m[1]; c >= '1' && c <= '3' {
			runners[c-'1'] = Out
		}
	}
	return runners
}

func hitLocationFromFielders(fielders []int, arc string) *HitLocation {
	if len(fielders) == 0 {
		return nil
	}
	loc, err := HitLocationFromRetrosheet(fmt.Sprintf("%d", fielders[0]), "", arc, false)
	if err != nil {
		return nil
	}
	return loc
}

// A running play can be prefixed with the pitch outcome that triggered it
// (strikeout or walk), e.g. "K+SB2".
const runningPreamble = `(?:(?:K(?:25?3)?|I?W)\+)?`

var (
	runningPreambleRe = regexp.MustCompile(`^` + runningPreamble)
	stealFieldersRe   = regexp.MustCompile(`\((?:E?[1-9](?:/TH)?)+\)`)
	stealFielderRe    = regexp.MustCompile(`E?[1-9]`)
	stealBaseRe       = regexp.MustCompile(`[1-3H]`)
)

// Same contract as the batted-ball table: first match wins, order matters.
// "PO1(...)" must be tried after "POCS2(...)".
var baseRunningPatterns = []struct {
	re    *regexp.Regexp
	parse func(text string) *BaseRunning
}{
	{regexp.MustCompile(`^` + runningPreamble + `(?:DI|OA|PB|WP)$`), parseGenericRunning},
	{regexp.MustCompile(`^` + runningPreamble + `(?:PO)?CS[23H]\((?:E?[1-9](?:/TH)?)+\)(?:\(UR\))?$`), parseCaughtStealing},
	{regexp.MustCompile(`^` + runningPreamble + `PO[1-3]\((?:E?[1-9](?:/TH)?)+\)$`), parsePickedOff},
	{regexp.MustCompile(`^` + runningPreamble + `SB[23H](?:\(UR\))?(?:;SB[23H])*$`), parseStolenBase},
}

// BaseRunningFromText parses a Retrosheet base-running description. It
// returns nil when no pattern matches.
func BaseRunningFromText(text string, mode AdvanceMode) *BaseRunning {
	for _, p := range baseRunningPatterns {
		if p.re.MatchString(text) {
			play := p.parse(text)
			if play != nil {
				play.Advances.Mode = mode
			}
			return play
		}
	}
	return nil
}

// stolenBaseStart maps the base a runner was stealing to the base they
// started from.
func stolenBaseStart(c byte) (Base, bool) {
	switch c {
	case '2':
		return First, true
	case '3':
		return Second, true
	case 'H':
		return Third, true
	}
	return NoAdvance, false
}

func parseGenericRunning(text string) *BaseRunning {
	// Defensive indifference and friends: the details all come from the
	// explicit advance annotations.
	adv := NewAdvances()
	adv.Batter = StillActive
	return &BaseRunning{Play{Advances: adv}}
}

func parseCaughtStealing(text string) *BaseRunning {
	text = runningPreambleRe.ReplaceAllString(text, "")
	fielders, errors := stealFielders(text)
	adv := NewAdvances()
	adv.Batter = StillActive
	// Caught stealing references the runner by the base they were headed to.
	target := stealBaseRe.FindString(text)
	start, ok := stolenBaseStart(target[0])
	if !ok {
		return nil
	}
	if len(errors) == 0 {
		adv.Runners[start] = Out
	} else {
		adv.Runners[start] = start + 1
	}
	return &BaseRunning{Play{Advances: adv, Fielders: fielders, Errors: errors}}
}

func parsePickedOff(text string) *BaseRunning {
	text = runningPreambleRe.ReplaceAllString(text, "")
	fielders, errors := stealFielders(text)
	adv := NewAdvances()
	adv.Batter = StillActive
	if len(errors) == 0 {
		// Unlike caught stealing, a pickoff references the runner by the
		// base they started from.
		start := stealBaseRe.FindString(text)
		adv.Runners[start[0]-'1'] = Out
	}
	return &BaseRunning{Play{Advances: adv, Fielders: fielders, Errors: errors}}
}

func parseStolenBase(text string) *BaseRunning {
	text = runningPreambleRe.ReplaceAllString(text, "")
	adv := NewAdvances()
	adv.Batter = StillActive
	for _, stolen := range strings.Split(text, ";") {
		const targetNdx = 2
		if len(stolen) <= targetNdx {
			return nil
		}
		start, ok := stolenBaseStart(stolen[targetNdx])
		if !ok {
			return nil
		}
		adv.Runners[start] = start + 1
	}
	return &BaseRunning{Play{Advances: adv}}
}

func stealFielders(text string) (fielders, errors []int) {
	group := stealFieldersRe.FindString(text)
	for _, m := range stealFielderRe.FindAllString(group, -1) {
		fielder := int(m[len(m)-1] - '0')
		fielders = append(fielders, fielder)
		if m[0] == 'E' {
			errors = append(errors, fielder)
		}
	}
	return fielders, errors
}

// GameCalled is the event recording that an umpire ended the game early
// (weather, darkness, or otherwise).
type GameCalled struct{}

// GameCalledFromComment inspects a comment row and returns a GameCalled event
// if the comment describes the game being ended early, or nil.
func GameCalledFromComment(comment string) *GameCalled {
	comment = strings.ToLower(comment)
	if strings.Contains(comment, "called") || strings.Contains(comment, "stopped") ||
		strings.Contains(comment, " ended") {
		return &GameCalled{}
	}
	return nil
}
