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

// Base is the destination of a batter or runner after a play.
//
// First, Second, and Third line up with their indices in Bases.Runners.
// HomePlate is 3 to preserve the natural ordering of homer > triple; Out and
// StillActive were assigned their values so that the whole enum sorts from bad
// to good from the batter's perspective. Code elsewhere compares destinations
// ordinally, so the values are load-bearing.
type Base int

const (
	// NoAdvance marks a runner the play says nothing about.
	NoAdvance Base = -3
	// Out means the runner or batter was put out.
	Out Base = -2
	// StillActive means the plate appearance is not over.
	StillActive Base = -1
	First       Base = 0
	Second      Base = 1
	Third       Base = 2
	HomePlate   Base = 3
)

// Bases tracks the runners on base within a game. Each slot holds a
// Retrosheet player ID, or "" when the base is empty.
type Bases struct {
	Runners [3]string `json:"runners"`
}

// Hit updates the bases to reflect a hit or base running play. It returns the
// number of runs scored and outs made.
func (b *Bases) Hit(batter string, adv Advances) (runs, outs int) {
	// Walk the bases in reverse order so an advancing runner never clobbers
	// the runner ahead of them.
	for base := Third; base >= First; base-- {
		r, o := b.moveBaseRunner(base, adv.Runners[base], false)
		runs, outs = runs+r, outs+o
	}
	// Second pass for the (extremely rare) retrograde moves.
	for base := Third; base >= First; base-- {
		r, o := b.moveBaseRunner(base, adv.Runners[base], true)
		runs, outs = runs+r, outs+o
	}
	r, o := b.moveRunner(batter, adv.Batter)
	return runs + r, outs + o
}

// moveBaseRunner moves the runner on start to end. Retrograde moves are
// processed iff reverse is true.
func (b *Bases) moveBaseRunner(start, end Base, reverse bool) (runs, outs int) {
	runner := b.Runners[start]
	retrograde := end >= First && end < start
	if runner == "" || end == NoAdvance || retrograde != reverse {
		return 0, 0
	}
	b.Runners[start] = ""
	return b.moveRunner(runner, end)
}

func (b *Bases) moveRunner(runner string, end Base) (runs, outs int) {
	switch end {
	case HomePlate:
		return 1, 0
	case Out:
		return 0, 1
	case StillActive, NoAdvance:
		return 0, 0
	default:
		b.Runners[end] = runner
		return 0, 0
	}
}

// Walk updates the bases to reflect a walk (or hit by pitch). It returns the
// number of runs forced in.
func (b *Bases) Walk(batter string) int {
	return b.attemptAdvance(batter, First)
}

func (b *Bases) attemptAdvance(runner string, end Base) int {
	// If the destination base is occupied, the runner there is forced ahead.
	if b.Runners[end] != "" {
		return b.forceAdvance(runner, end)
	}
	b.Runners[end] = runner
	return 0
}

func (b *Bases) forceAdvance(runner string, end Base) int {
	if end == Third {
		// Forcing a runner off third always scores a run.
		b.Runners[end] = runner
		return 1
	}
	displaced := b.Runners[end]
	b.Runners[end] = runner
	return b.attemptAdvance(displaced, end+1)
}

// Balk advances every runner one base. The batter stays at the plate, so no
// batter argument is needed. Returns the number of runs forced in.
func (b *Bases) Balk() int {
	runs := 0
	for base := Third; base >= First; base-- {
		r, _ := b.moveBaseRunner(base, base+1, false)
		runs += r
	}
	return runs
}

// Substitute relabels the base occupied by oldPlayer, if any, without changing
// which bases are occupied. Used for pinch runners.
func (b *Bases) Substitute(oldPlayer, newPlayer string) {
	for base := First; base <= Third; base++ {
		if b.Runners[base] == oldPlayer {
			b.Runners[base] = newPlayer
		}
	}
}

// SwitchSides clears the bases at the end of a half-inning.
func (b *Bases) SwitchSides() {
	b.Runners = [3]string{}
}

// Occupied returns a 0/1 vector of base occupancy, first base first.
func (b *Bases) Occupied() [3]int {
	var v [3]int
	for i, runner := range b.Runners {
		if runner != "" {
			v[i] = 1
		}
	}
	return v
}
