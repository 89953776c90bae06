package game

import (
	"fmt"
	"math"
)

// HUD is the per-tick readout handed to frontends.
type HUD struct {
	State    SessionState
	Biome    Biome
	Lane     int
	Score    int
	Distance int
	Speed    float64
	Altitude float64

	ScoreText    string
	DistanceText string
	// FinalText is set once the run is over.
	FinalText string
	// Menu is true while idle and after the deferred reveal of a finished run.
	Menu bool
}

func FormatScore(score float64) string {
	return fmt.Sprintf("SCORE: %05d", truncate(score))
}

func FormatDistance(d float64) string {
	return fmt.Sprintf("DIST: %dm", truncate(d))
}

func FormatFinal(score float64) string {
	return fmt.Sprintf("FINAL SCORE: %d", truncate(score))
}

func truncate(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v + 1e-9))
}
