package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrUnknownModel = errors.New("unknown model")

// BuiltinCatalog resolves model names to procedurally built box models.
type BuiltinCatalog struct {
	builders map[string]func() *Model
}

func NewBuiltinCatalog() *BuiltinCatalog {
	c := &BuiltinCatalog{builders: map[string]func() *Model{
		"ground_meadow":    func() *Model { return groundModel("ground_meadow", Palette.Grass) },
		"tree_oak":         func() *Model { return treeModel("tree_oak", 0.25, 2.0, 2.2, Palette.Leaf) },
		"tree_birch":       func() *Model { return treeModel("tree_birch", 0.18, 2.6, 1.6, Palette.LeafDark) },
		"tree_pine":        pineModel,
		"rock":             func() *Model { return boxModel("rock", mgl64.Vec3{1.2, 0.7, 1.0}, Palette.Rock) },
		"stump":            func() *Model { return boxModel("stump", mgl64.Vec3{0.6, 0.4, 0.6}, Palette.Bark) },
		"bush":             func() *Model { return boxModel("bush", mgl64.Vec3{1.0, 0.8, 1.0}, Palette.LeafDark) },
		"flower_bed":       func() *Model { return boxModel("flower_bed", mgl64.Vec3{0.8, 0.3, 0.8}, Palette.Flower) },
		"shrub":            func() *Model { return boxModel("shrub", mgl64.Vec3{0.7, 0.6, 0.7}, Palette.Leaf) },
		"mountain":         func() *Model { return mountainModel("mountain", false) },
		"mountain_snowcap": func() *Model { return mountainModel("mountain_snowcap", true) },
		"oak_giant":        func() *Model { return treeModel("oak_giant", 0.5, 4.0, 4.5, Palette.Leaf) },
		"pine_giant":       func() *Model { return treeModel("pine_giant", 0.45, 5.0, 3.2, Palette.Pine) },
		"airplane":         airplaneModel,
		"balloon":          balloonModel,
		"cloud_puff":       func() *Model { return cloudModel("cloud_puff", 3) },
		"cloud_bank":       func() *Model { return cloudModel("cloud_bank", 5) },
	}}
	for p := Pig(0); p < PigCount; p++ {
		c.builders[p.ModelName()] = func() *Model { return pigModel(p) }
	}
	for w := WingNone + 1; w < WingCount; w++ {
		c.builders[w.ModelName()] = func() *Model { return wingModel(w) }
	}
	return c
}

func (c *BuiltinCatalog) Resolve(ctx context.Context, name string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	build, ok := c.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return build(), nil
}

// Placeholder is the primitive stand-in used when a model cannot be resolved.
func Placeholder(kind PoolKind, name string) *Model {
	size := mgl64.Vec3{1, 1, 1}
	switch kind {
	case PoolGround:
		return &Model{
			Name:        name,
			Parts:       []Part{{Offset: mgl64.Vec3{0, -0.25, 0}, Size: mgl64.Vec3{DefaultTileSize, 0.5, DefaultTileSize}, Color: Palette.Placeholder}},
			Bounds:      BoxAround(mgl64.Vec3{0, -0.25, 0}, mgl64.Vec3{DefaultTileSize / 2, 0.25, DefaultTileSize / 2}),
			Placeholder: true,
		}
	case PoolGroundObstacles:
		size = mgl64.Vec3{1.2, TrunkHeight, 1.2}
	case PoolSkyObstacles:
		size = mgl64.Vec3{4, 2, 4}
	case PoolMountains:
		size = mgl64.Vec3{6, 6, 6}
	case PoolPlayer:
		size = mgl64.Vec3{PlayerHalfX * 2, PlayerHalfY * 2, PlayerHalfZ * 2}
	}
	m := NewModel(name, Part{Offset: mgl64.Vec3{0, size[1] / 2, 0}, Size: size, Color: Palette.Placeholder})
	if kind == PoolPlayer {
		m = NewModel(name, Part{Size: size, Color: Palette.Placeholder})
	}
	m.Placeholder = true
	return m
}

// Merge combines models into one, keeping every part.
func Merge(name string, ms ...*Model) *Model {
	var parts []Part
	placeholder := false
	for _, m := range ms {
		if m == nil {
			continue
		}
		parts = append(parts, m.Parts...)
		placeholder = placeholder || m.Placeholder
	}
	out := NewModel(name, parts...)
	out.Placeholder = placeholder
	return out
}

func boxModel(name string, size mgl64.Vec3, col RGB) *Model {
	return NewModel(name, Part{Offset: mgl64.Vec3{0, size[1] / 2, 0}, Size: size, Color: col})
}

func groundModel(name string, col RGB) *Model {
	return NewModel(name, Part{
		Offset: mgl64.Vec3{0, -0.25, 0},
		Size:   mgl64.Vec3{DefaultTileSize, 0.5, DefaultTileSize},
		Color:  col,
	})
}

// treeModel: trunk of the given radius and height topped by a cubic canopy.
func treeModel(name string, trunkR, trunkH, canopy float64, leaf RGB) *Model {
	return NewModel(name,
		Part{Offset: mgl64.Vec3{0, trunkH / 2, 0}, Size: mgl64.Vec3{trunkR * 2, trunkH, trunkR * 2}, Color: Palette.Bark},
		Part{Offset: mgl64.Vec3{0, trunkH + canopy/2, 0}, Size: mgl64.Vec3{canopy, canopy, canopy}, Color: leaf},
	)
}

func pineModel() *Model {
	return NewModel("tree_pine",
		Part{Offset: mgl64.Vec3{0, 0.8, 0}, Size: mgl64.Vec3{0.4, 1.6, 0.4}, Color: Palette.Bark},
		Part{Offset: mgl64.Vec3{0, 2.0, 0}, Size: mgl64.Vec3{2.0, 1.0, 2.0}, Color: Palette.Pine},
		Part{Offset: mgl64.Vec3{0, 2.9, 0}, Size: mgl64.Vec3{1.4, 0.9, 1.4}, Color: Palette.Pine},
		Part{Offset: mgl64.Vec3{0, 3.7, 0}, Size: mgl64.Vec3{0.8, 0.8, 0.8}, Color: Palette.Pine},
	)
}

func mountainModel(name string, snow bool) *Model {
	parts := []Part{
		{Offset: mgl64.Vec3{0, 1.5, 0}, Size: mgl64.Vec3{8, 3, 8}, Color: Palette.Mountain},
		{Offset: mgl64.Vec3{0, 4, 0}, Size: mgl64.Vec3{5, 2, 5}, Color: Palette.Mountain},
		{Offset: mgl64.Vec3{0, 5.75, 0}, Size: mgl64.Vec3{2.5, 1.5, 2.5}, Color: Palette.Mountain},
	}
	if snow {
		parts[2].Color = Palette.Snow
	}
	return NewModel(name, parts...)
}

// airplaneModel is the obstacle plane: fuselage, wings, tail, fin. Scaled up for the sky.
func airplaneModel() *Model {
	const k = 3.0
	return NewModel("airplane",
		Part{Offset: mgl64.Vec3{0, 0, 0}, Size: mgl64.Vec3{0.6 * k, 0.6 * k, 2 * k}, Color: Palette.Hull},
		Part{Offset: mgl64.Vec3{0, 0, 0}, Size: mgl64.Vec3{2.5 * k, 0.05 * k, 0.6 * k}, Color: Palette.Wing},
		Part{Offset: mgl64.Vec3{0, 0, -0.9 * k}, Size: mgl64.Vec3{0.8 * k, 0.05 * k, 0.3 * k}, Color: Palette.Wing},
		Part{Offset: mgl64.Vec3{0, 0.2 * k, -0.9 * k}, Size: mgl64.Vec3{0.05 * k, 0.4 * k, 0.3 * k}, Color: Palette.Wing},
	)
}

func balloonModel() *Model {
	return NewModel("balloon",
		Part{Offset: mgl64.Vec3{0, 3.5, 0}, Size: mgl64.Vec3{4, 4, 4}, Color: Palette.Balloon},
		Part{Offset: mgl64.Vec3{0, 0.5, 0}, Size: mgl64.Vec3{1.2, 1, 1.2}, Color: Palette.Basket},
	)
}

func cloudModel(name string, puffs int) *Model {
	parts := make([]Part, 0, puffs)
	for i := 0; i < puffs; i++ {
		x := float64(i) - float64(puffs-1)/2
		s := 2.0 + float64((i*7)%3)*0.6
		parts = append(parts, Part{Offset: mgl64.Vec3{x * 1.6, float64(i%2) * 0.6, float64((i*5)%3) - 1}, Size: mgl64.Vec3{s, s * 0.7, s}, Color: Palette.Cloud})
	}
	return NewModel(name, parts...)
}

// pigModel follows the original pig: body, head, snout, eyes, four legs.
func pigModel(p Pig) *Model {
	col := p.Spec().Color
	leg := mgl64.Vec3{0.15, 0.3, 0.15}
	return NewModel(p.ModelName(),
		Part{Size: mgl64.Vec3{0.8, 0.6, 1.2}, Color: col},
		Part{Offset: mgl64.Vec3{0, 0.2, 0.7}, Size: mgl64.Vec3{0.6, 0.5, 0.5}, Color: col},
		Part{Offset: mgl64.Vec3{0, 0.15, 0.95}, Size: mgl64.Vec3{0.2, 0.2, 0.1}, Color: Palette.Snout},
		Part{Offset: mgl64.Vec3{-0.15, 0.3, 0.95}, Size: mgl64.Vec3{0.05, 0.05, 0.05}, Color: Palette.Eye},
		Part{Offset: mgl64.Vec3{0.15, 0.3, 0.95}, Size: mgl64.Vec3{0.05, 0.05, 0.05}, Color: Palette.Eye},
		Part{Offset: mgl64.Vec3{-0.25, -0.35, 0.4}, Size: leg, Color: col},
		Part{Offset: mgl64.Vec3{0.25, -0.35, 0.4}, Size: leg, Color: col},
		Part{Offset: mgl64.Vec3{-0.25, -0.35, -0.4}, Size: leg, Color: col},
		Part{Offset: mgl64.Vec3{0.25, -0.35, -0.4}, Size: leg, Color: col},
	)
}

func wingModel(w Wing) *Model {
	s := w.Spec()
	return NewModel(w.ModelName(),
		Part{Offset: mgl64.Vec3{0, 0.32, 0}, Size: mgl64.Vec3{s.Span, 0.05, 0.5}, Color: s.Color},
	)
}
