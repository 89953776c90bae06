package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Trail particle budget and timing, in ticks.
const (
	TrailMax       = 96
	TrailEmitEvery = 2
	TrailLife      = 40
	trailShades    = 8
)

// Particle is one trail puff. It lives in world space; the pig flies away
// from it.
type Particle struct {
	Pos  mgl64.Vec3
	Vel  mgl64.Vec3
	Age  int
	Size float64
}

// TrailEmitter puffs the selected trail cosmetic out behind the player and
// ages the puffs out. Each puff is its own scene instance whose model steps
// through a fixed ramp of shades as it ages.
type TrailEmitter struct {
	arena  *Arena[Particle]
	scene  Scene
	rng    *Rand
	trail  Trail
	shades [trailShades]*Model
	tick   int

	scratch []InstanceID
}

func NewTrailEmitter(scene Scene, rng *Rand) *TrailEmitter {
	if scene == nil {
		scene = NopScene{}
	}
	return &TrailEmitter{
		arena: NewArena[Particle](KindParticle, TrailMax),
		scene: scene,
		rng:   rng,
	}
}

func (te *TrailEmitter) Trail() Trail { return te.trail }

// SetTrail switches the cosmetic. Live puffs keep their old colour.
func (te *TrailEmitter) SetTrail(t Trail) {
	te.trail = t
	if t == TrailNone {
		return
	}
	for i := range te.shades {
		te.shades[i] = boxModel(fmt.Sprintf("trail_%s_%d", t.Spec().ID, i),
			mgl64.Vec3{0.22, 0.22, 0.22}, trailShade(t, float64(i)/(trailShades-1)))
	}
}

// trailShade is the colour of trail t at age fraction f.
func trailShade(t Trail, f float64) RGB {
	switch t {
	case TrailFire:
		if f < 0.5 {
			return lerpRGB(Palette.FireHot, Palette.FireMid, f*2)
		}
		return lerpRGB(Palette.FireMid, Palette.FireCool, (f-0.5)*2)
	case TrailRainbow:
		return HSL(f*0.85, 0.85, 0.6)
	}
	return lerpRGB(Palette.Snow, t.Spec().Color, f)
}

// Tick ages every puff and emits a new one while the player is flying.
func (te *TrailEmitter) Tick(p PlayerState) {
	te.scratch = te.scratch[:0]
	te.arena.Each(func(id InstanceID, pt *Particle) {
		pt.Age++
		if pt.Age >= TrailLife {
			te.scratch = append(te.scratch, id)
			return
		}
		pt.Pos = pt.Pos.Add(pt.Vel)
		te.place(id, pt)
	})
	for _, id := range te.scratch {
		te.arena.Release(id)
		te.scene.Remove(id)
	}

	te.tick++
	if !p.Active || te.trail == TrailNone || te.tick%TrailEmitEvery != 0 || te.arena.Len() >= TrailMax {
		return
	}
	te.emit(p)
}

func (te *TrailEmitter) emit(p PlayerState) {
	id, pt := te.arena.Alloc()
	pt.Pos = p.Pos.Add(mgl64.Vec3{te.rng.RangeF(-0.2, 0.2), te.rng.RangeF(-0.15, 0.05), -0.8})
	pt.Size = te.rng.RangeF(0.7, 1.2)
	switch te.trail {
	case TrailFire:
		pt.Vel = mgl64.Vec3{te.rng.RangeF(-0.01, 0.01), 0.03, 0}
	case TrailStars, TrailSparkles:
		pt.Vel = mgl64.Vec3{te.rng.RangeF(-0.02, 0.02), te.rng.RangeF(-0.02, 0.02), 0}
	}
	te.place(id, pt)
}

func (te *TrailEmitter) place(id InstanceID, pt *Particle) {
	f := float64(pt.Age) / TrailLife
	shade := min(int(f*trailShades), trailShades-1)
	m := te.shades[shade]
	if m == nil {
		return
	}
	te.scene.Place(id, m, Transform{
		Pos:   pt.Pos,
		Yaw:   float64(pt.Age) * 0.2,
		Scale: pt.Size * (1 - 0.7*f),
	})
}

func (te *TrailEmitter) Len() int { return te.arena.Len() }

// Each visits live puffs.
func (te *TrailEmitter) Each(fn func(id InstanceID, p Particle)) {
	te.arena.Each(func(id InstanceID, p *Particle) { fn(id, *p) })
}

func (te *TrailEmitter) Reset() {
	te.arena.Each(func(id InstanceID, _ *Particle) {
		te.scene.Remove(id)
	})
	te.arena.Reset()
	te.tick = 0
}
