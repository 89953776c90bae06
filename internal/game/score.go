package game

// RunStats is what the HUD shows.
type RunStats struct {
	Score    float64
	Speed    float64
	Distance float64
}

// ScoreClock owns the difficulty ramp: score and speed only ever grow while
// a run is active and past the intro.
type ScoreClock struct {
	RunStats
	rate  float64
	accel float64
	base  float64
}

func NewScoreClock(t RunTuning) *ScoreClock {
	c := &ScoreClock{rate: t.ScoreRate, accel: t.Acceleration, base: t.InitialSpeed}
	c.Reset()
	return c
}

func (c *ScoreClock) Reset() {
	c.RunStats = RunStats{Speed: c.base}
}

// Advance runs one tick. Nothing moves while the player is inactive or
// still diving in.
func (c *ScoreClock) Advance(p *PlayerState) {
	if !p.Active || p.Intro {
		return
	}
	c.Score += c.rate
	c.Speed += c.accel
	c.Distance = p.Pos[2]
}
