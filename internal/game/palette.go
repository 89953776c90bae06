package game

import "math"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Floats returns the colour as 0..1 components.
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{R: lerpU8(a.R, b.R, t), G: lerpU8(a.G, b.G, t), B: lerpU8(a.B, b.B, t)}
}

// HSL converts hue/saturation/lightness (all 0..1) to RGB.
func HSL(h, s, l float64) RGB {
	h = h - math.Floor(h)
	s = clampF(s, 0, 1)
	l = clampF(l, 0, 1)
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	conv := func(t float64) uint8 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6.0:
			v = p + (q-p)*6*t
		case t < 0.5:
			v = q
		case t < 2.0/3.0:
			v = p + (q-p)*(2.0/3.0-t)*6
		default:
			v = p
		}
		return uint8(math.Round(clampF(v, 0, 1) * 255))
	}
	return RGB{R: conv(h + 1.0/3.0), G: conv(h), B: conv(h - 1.0/3.0)}
}

var Palette = struct {
	Grass       RGB
	Bark        RGB
	Leaf        RGB
	LeafDark    RGB
	Pine        RGB
	Rock        RGB
	Flower      RGB
	Snow        RGB
	Mountain    RGB
	Cloud       RGB
	Hull        RGB
	Wing        RGB
	Balloon     RGB
	Basket      RGB
	Snout       RGB
	Eye         RGB
	FireHot     RGB
	FireMid     RGB
	FireCool    RGB
	Placeholder RGB
}{
	Grass:       RGB{R: 110, G: 176, B: 82},
	Bark:        RGB{R: 110, G: 78, B: 52},
	Leaf:        RGB{R: 64, G: 140, B: 60},
	LeafDark:    RGB{R: 44, G: 110, B: 48},
	Pine:        RGB{R: 38, G: 96, B: 58},
	Rock:        RGB{R: 140, G: 136, B: 128},
	Flower:      RGB{R: 236, G: 120, B: 170},
	Snow:        RGB{R: 240, G: 244, B: 250},
	Mountain:    RGB{R: 118, G: 112, B: 120},
	Cloud:       RGB{R: 255, G: 255, B: 255},
	Hull:        RGB{R: 255, G: 255, B: 255},
	Wing:        RGB{R: 204, G: 204, B: 204},
	Balloon:     RGB{R: 230, G: 80, B: 70},
	Basket:      RGB{R: 150, G: 110, B: 60},
	Snout:       RGB{R: 255, G: 141, B: 161},
	Eye:         RGB{R: 0, G: 0, B: 0},
	FireHot:     RGB{R: 255, G: 240, B: 150},
	FireMid:     RGB{R: 255, G: 130, B: 30},
	FireCool:    RGB{R: 90, G: 60, B: 60},
	Placeholder: RGB{R: 255, G: 0, B: 255},
}
