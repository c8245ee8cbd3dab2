package engine

import "time"

// lineScores maps lines cleared at once to points awarded.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// CalculateScore returns the points for clearing lines rows at once.
// Counts outside 0-4 score nothing.
func CalculateScore(lines int) int {
	if lines < 0 || lines >= len(lineScores) {
		return 0
	}
	return lineScores[lines]
}

// Level returns the level reached after totalLines cleared lines.
func Level(totalLines int) int {
	if totalLines < 0 {
		return 0
	}
	return totalLines / 10
}

// levelSpeeds holds the gravity interval in milliseconds for levels 0-9.
var levelSpeeds = [...]int{800, 720, 630, 550, 470, 380, 300, 220, 130, 100}

// LevelSpeed returns the milliseconds between gravity steps at level.
func LevelSpeed(level int) int {
	switch {
	case level < 0:
		return levelSpeeds[0]
	case level < len(levelSpeeds):
		return levelSpeeds[level]
	case level <= 12:
		return 80
	case level <= 15:
		return 67
	case level <= 18:
		return 53
	case level <= 21:
		return 40
	default:
		return 30
	}
}

// GravityInterval is LevelSpeed as a time.Duration.
func GravityInterval(level int) time.Duration {
	return time.Duration(LevelSpeed(level)) * time.Millisecond
}
