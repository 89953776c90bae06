package game

import "math"

// Atmosphere carries the ambient light and fog the renderer applies.
type Atmosphere struct {
	Sky        RGB
	Fog        RGB
	FogDensity float64 // exponential-squared fog coefficient
	Ambient    float64 // 0..1+ light multiplier
	Saturation float64
	Lightness  float64
	HueBias    float64
}

// Cycle returns a at game time t (seconds). The sky hue drifts slowly
// around blue and the fog follows it so the horizon stays seamless.
func (a Atmosphere) Cycle(t float64) Atmosphere {
	hue := math.Sin(t*0.1)*0.1 + 0.6 + a.HueBias
	sky := HSL(hue, a.Saturation, a.Lightness)
	out := a
	out.Sky = sky
	out.Fog = lerpRGB(sky, a.Fog, 0.25)
	return out
}

var (
	atmosphereIntro = Atmosphere{
		Fog:        RGB{R: 220, G: 232, B: 250},
		FogDensity: 0.004,
		Ambient:    1.0,
		Saturation: 0.5,
		Lightness:  0.75,
	}
	atmosphereGround = Atmosphere{
		Fog:        RGB{R: 200, G: 220, B: 240},
		FogDensity: 0.012,
		Ambient:    1.0,
		Saturation: 0.5,
		Lightness:  0.7,
	}
	atmosphereSky = Atmosphere{
		Fog:        RGB{R: 250, G: 240, B: 255},
		FogDensity: 0.006,
		Ambient:    1.15,
		Saturation: 0.45,
		Lightness:  0.8,
		HueBias:    -0.04,
	}
)
