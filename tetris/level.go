package tetris

import "time"

const (
	MinStartingLevel = 0
	MaxStartingLevel = 18
)

// points awarded by the number of rows cleared in a single lock.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// Points returns the score for clearing the given number of rows at once.
func Points(rows int) int {
	if rows < 0 || rows >= len(lineScores) {
		return 0
	}
	return lineScores[rows]
}

// Level returns the level reached after clearing lines, starting at startingLevel.
// The first level up takes a while, based on the starting level (NES rules),
// after that the level goes up every 10 lines.
//
// First level up: min(start*10+10, max(100, start*10-50)) lines.
func Level(startingLevel, lines int) int {
	first := min(startingLevel*10+10, max(100, startingLevel*10-50))
	if lines < first {
		return startingLevel
	}
	return startingLevel + 1 + (lines-first)/10
}

// Interval returns how often the active piece falls one row at the given level.
// It decreases linearly up to level 18, then holds until level 29 where it
// reaches its minimum.
func Interval(level int) time.Duration {
	switch {
	case level < 0:
		level = 0
	case level > 28:
		return 20 * time.Millisecond
	case level > 18:
		return 40 * time.Millisecond
	}
	return time.Duration(1000-52*level) * time.Millisecond
}
