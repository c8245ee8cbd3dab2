package engine

import (
	"testing"
	"time"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 0},
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
		{5, 0},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := CalculateScore(tt.lines); got != tt.want {
			t.Errorf("CalculateScore(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{39, 3},
		{250, 25},
	}

	for _, tt := range tests {
		if got := Level(tt.lines); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestLevelSpeed(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 800},
		{5, 380},
		{9, 100},
		{10, 80},
		{12, 80},
		{13, 67},
		{16, 53},
		{21, 40},
		{22, 30},
		{99, 30},
	}

	for _, tt := range tests {
		if got := LevelSpeed(tt.level); got != tt.want {
			t.Errorf("LevelSpeed(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	if got := GravityInterval(0); got != 800*time.Millisecond {
		t.Errorf("GravityInterval(0) = %v, want 800ms", got)
	}
}

func TestLevelSpeedNeverIncreases(t *testing.T) {
	prev := LevelSpeed(0)
	for level := 1; level < 40; level++ {
		cur := LevelSpeed(level)
		if cur > prev {
			t.Fatalf("LevelSpeed(%d) = %d is slower than level %d (%d)", level, cur, level-1, prev)
		}
		prev = cur
	}
}
