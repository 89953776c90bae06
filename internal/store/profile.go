package store

import (
	"fmt"
	"slices"
	"strings"

	"pigflight/internal/game"
)

type ItemKind uint8

const (
	ItemPig ItemKind = iota
	ItemWing
	ItemTrail
)

func (k ItemKind) String() string {
	switch k {
	case ItemPig:
		return "pig"
	case ItemWing:
		return "wing"
	case ItemTrail:
		return "trail"
	}
	return "unknown"
}

// Item names one cosmetic by its stable id.
type Item struct {
	Kind ItemKind
	ID   string
}

func PigItem(p game.Pig) Item     { return Item{Kind: ItemPig, ID: p.Spec().ID} }
func WingItem(w game.Wing) Item   { return Item{Kind: ItemWing, ID: w.Spec().ID} }
func TrailItem(t game.Trail) Item { return Item{Kind: ItemTrail, ID: t.Spec().ID} }
func (it Item) String() string    { return it.Kind.String() + ":" + it.ID }

// ParseItem maps "kind:id" back to an Item.
func ParseItem(s string) (Item, error) {
	kind, id, ok := strings.Cut(s, ":")
	if ok {
		for k := ItemPig; k <= ItemTrail; k++ {
			if k.String() != kind {
				continue
			}
			it := Item{Kind: k, ID: id}
			if _, err := it.Price(); err != nil {
				return Item{}, err
			}
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, s)
}

// Price looks the item up in the cosmetic tables.
func (it Item) Price() (int, error) {
	switch it.Kind {
	case ItemPig:
		if p, ok := game.ParsePig(it.ID); ok {
			return p.Spec().Price, nil
		}
	case ItemWing:
		if w, ok := game.ParseWing(it.ID); ok {
			return w.Spec().Price, nil
		}
	case ItemTrail:
		if t, ok := game.ParseTrail(it.ID); ok {
			return t.Spec().Price, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownItem, it)
}

// Catalog lists every unlockable item. The "none" wing and trail are always
// owned and never listed.
func Catalog() []Item {
	var out []Item
	for p := game.Pig(0); p < game.PigCount; p++ {
		out = append(out, PigItem(p))
	}
	for w := game.WingNone + 1; w < game.WingCount; w++ {
		out = append(out, WingItem(w))
	}
	for t := game.TrailNone + 1; t < game.TrailCount; t++ {
		out = append(out, TrailItem(t))
	}
	return out
}

// Profile is the player's wallet and locker.
type Profile struct {
	Coins       int      `msgpack:"coins"`
	Pig         string   `msgpack:"pig"`
	Wing        string   `msgpack:"wing"`
	Trail       string   `msgpack:"trail"`
	OwnedPigs   []string `msgpack:"owned_pigs"`
	OwnedWings  []string `msgpack:"owned_wings"`
	OwnedTrails []string `msgpack:"owned_trails"`
}

func DefaultProfile() Profile {
	basic := game.PigBasic.Spec().ID
	none := game.WingNone.Spec().ID
	noTrail := game.TrailNone.Spec().ID
	return Profile{
		Coins:       StartingCoins,
		Pig:         basic,
		Wing:        none,
		Trail:       noTrail,
		OwnedPigs:   []string{basic},
		OwnedWings:  []string{none},
		OwnedTrails: []string{noTrail},
	}
}

func (p Profile) owned(k ItemKind) []string {
	switch k {
	case ItemPig:
		return p.OwnedPigs
	case ItemWing:
		return p.OwnedWings
	case ItemTrail:
		return p.OwnedTrails
	}
	return nil
}

func (p Profile) Owns(it Item) bool {
	return slices.Contains(p.owned(it.Kind), it.ID)
}

func (p *Profile) grant(it Item) {
	if p.Owns(it) {
		return
	}
	switch it.Kind {
	case ItemPig:
		p.OwnedPigs = append(p.OwnedPigs, it.ID)
	case ItemWing:
		p.OwnedWings = append(p.OwnedWings, it.ID)
	case ItemTrail:
		p.OwnedTrails = append(p.OwnedTrails, it.ID)
	}
}

// Allows reports whether every item in lo is owned.
func (p Profile) Allows(lo game.Loadout) bool {
	return p.Owns(PigItem(lo.Pig)) && p.Owns(WingItem(lo.Wing)) && p.Owns(TrailItem(lo.Trail))
}

// Loadout resolves the selected ids. Unknown ids fall back to the defaults.
func (p Profile) Loadout() game.Loadout {
	pig, _ := game.ParsePig(p.Pig)
	wing, _ := game.ParseWing(p.Wing)
	trail, _ := game.ParseTrail(p.Trail)
	return game.Loadout{Pig: pig, Wing: wing, Trail: trail}
}

// sanitize repairs a decoded profile: unknown ids are dropped, the free
// items are always owned and selections must be owned.
func (p Profile) sanitize() Profile {
	def := DefaultProfile()
	if p.Coins < 0 {
		p.Coins = 0
	}
	keep := func(k ItemKind, ids []string, free string) []string {
		out := []string{free}
		for _, id := range ids {
			if id == free || slices.Contains(out, id) {
				continue
			}
			if _, err := (Item{Kind: k, ID: id}).Price(); err == nil {
				out = append(out, id)
			}
		}
		return out
	}
	p.OwnedPigs = keep(ItemPig, p.OwnedPigs, def.Pig)
	p.OwnedWings = keep(ItemWing, p.OwnedWings, def.Wing)
	p.OwnedTrails = keep(ItemTrail, p.OwnedTrails, def.Trail)
	if !p.Owns(Item{Kind: ItemPig, ID: p.Pig}) {
		p.Pig = def.Pig
	}
	if !p.Owns(Item{Kind: ItemWing, ID: p.Wing}) {
		p.Wing = def.Wing
	}
	if !p.Owns(Item{Kind: ItemTrail, ID: p.Trail}) {
		p.Trail = def.Trail
	}
	return p
}
