package game

// Pig is a playable archetype. Stats are cosmetic ratings shown in the locker.
type Pig uint8

const (
	PigBasic Pig = iota
	PigSpeedy
	PigLucky
	PigRainbow
	PigCyber
	PigGolden

	PigCount // must stay last
)

type PigSpec struct {
	ID      string
	Name    string
	Speed   float64
	Agility float64
	Luck    float64
	Price   int
	Color   RGB
}

var pigSpecs = [PigCount]PigSpec{
	PigBasic:   {ID: "basic", Name: "Basic Pig", Speed: 5, Agility: 3, Luck: 2, Price: 0, Color: RGB{R: 255, G: 173, B: 199}},
	PigSpeedy:  {ID: "speedy", Name: "Speedy Pig", Speed: 7, Agility: 4, Luck: 1, Price: 500, Color: RGB{R: 255, G: 102, B: 102}},
	PigLucky:   {ID: "lucky", Name: "Lucky Pig", Speed: 4, Agility: 3, Luck: 5, Price: 750, Color: RGB{R: 102, G: 255, B: 102}},
	PigRainbow: {ID: "rainbow", Name: "Rainbow Pig", Speed: 6, Agility: 5, Luck: 4, Price: 1500, Color: RGB{R: 255, G: 102, B: 255}},
	PigCyber:   {ID: "cyber", Name: "Cyber Pig", Speed: 8, Agility: 4, Luck: 3, Price: 2000, Color: RGB{R: 102, G: 102, B: 255}},
	PigGolden:  {ID: "golden", Name: "Golden Pig", Speed: 9, Agility: 6, Luck: 6, Price: 5000, Color: RGB{R: 255, G: 215, B: 0}},
}

func (p Pig) Spec() PigSpec {
	if p < PigCount {
		return pigSpecs[p]
	}
	return pigSpecs[PigBasic]
}

func (p Pig) ModelName() string { return "pig_" + p.Spec().ID }

// Wing is an optional wing cosmetic.
type Wing uint8

const (
	WingNone Wing = iota
	WingAngel
	WingBat
	WingJet
	WingDragon

	WingCount // must stay last
)

type WingSpec struct {
	ID      string
	Name    string
	Speed   float64
	Agility float64
	Price   int
	Span    float64
	Color   RGB
}

var wingSpecs = [WingCount]WingSpec{
	WingNone:   {ID: "none", Name: "No Wings"},
	WingAngel:  {ID: "angel", Name: "Angel Wings", Speed: 1, Agility: 2, Price: 300, Span: 2.0, Color: RGB{R: 250, G: 250, B: 255}},
	WingBat:    {ID: "bat", Name: "Bat Wings", Speed: 2, Agility: 1, Price: 400, Span: 1.8, Color: RGB{R: 60, G: 40, B: 70}},
	WingJet:    {ID: "jet", Name: "Jet Wings", Speed: 3, Agility: 1, Price: 600, Span: 2.2, Color: RGB{R: 170, G: 176, B: 186}},
	WingDragon: {ID: "dragon", Name: "Dragon Wings", Speed: 2, Agility: 3, Price: 800, Span: 2.4, Color: RGB{R: 190, G: 40, B: 30}},
}

func (w Wing) Spec() WingSpec {
	if w < WingCount {
		return wingSpecs[w]
	}
	return wingSpecs[WingNone]
}

func (w Wing) ModelName() string { return "wings_" + w.Spec().ID }

// Trail is the particle cosmetic puffed out behind the pig.
type Trail uint8

const (
	TrailNone Trail = iota
	TrailSparkles
	TrailFire
	TrailRainbow
	TrailStars

	TrailCount // must stay last
)

type TrailSpec struct {
	ID     string
	Name   string
	Effect string
	Price  int
	Color  RGB
}

var trailSpecs = [TrailCount]TrailSpec{
	TrailNone:     {ID: "none", Name: "No Particles", Effect: "None"},
	TrailSparkles: {ID: "sparkles", Name: "Sparkles", Effect: "Sparkle Trail", Price: 200, Color: RGB{R: 255, G: 250, B: 200}},
	TrailFire:     {ID: "fire", Name: "Fire Trail", Effect: "Fire Trail", Price: 350, Color: RGB{R: 255, G: 120, B: 30}},
	TrailRainbow:  {ID: "rainbow", Name: "Rainbow Trail", Effect: "Rainbow Trail", Price: 450, Color: RGB{R: 200, G: 120, B: 255}},
	TrailStars:    {ID: "stars", Name: "Star Dust", Effect: "Star Trail", Price: 300, Color: RGB{R: 255, G: 230, B: 90}},
}

func (t Trail) Spec() TrailSpec {
	if t < TrailCount {
		return trailSpecs[t]
	}
	return trailSpecs[TrailNone]
}

// Loadout is the selected cosmetic set.
type Loadout struct {
	Pig   Pig
	Wing  Wing
	Trail Trail
}

// ModelNames lists the catalog names merged into the player model.
func (l Loadout) ModelNames() []string {
	names := []string{l.Pig.ModelName()}
	if l.Wing != WingNone {
		names = append(names, l.Wing.ModelName())
	}
	return names
}

// Cycle steps the slot c names to its next value that allow accepts,
// wrapping around. It reports false when no other value is allowed.
func (l Loadout) Cycle(c Command, allow func(Loadout) bool) (Loadout, bool) {
	if allow == nil {
		allow = func(Loadout) bool { return true }
	}
	n := l.slots(c)
	for i := 1; i < n; i++ {
		next := l
		switch c {
		case CyclePig:
			next.Pig = Pig((int(l.Pig) + i) % n)
		case CycleWing:
			next.Wing = Wing((int(l.Wing) + i) % n)
		case CycleTrail:
			next.Trail = Trail((int(l.Trail) + i) % n)
		}
		if allow(next) {
			return next, true
		}
	}
	return l, false
}

func (l Loadout) slots(c Command) int {
	switch c {
	case CyclePig:
		return int(PigCount)
	case CycleWing:
		return int(WingCount)
	case CycleTrail:
		return int(TrailCount)
	}
	return 0
}

// ParsePig maps a stored id back to its enum. Unknown ids report false.
func ParsePig(id string) (Pig, bool) {
	for p := Pig(0); p < PigCount; p++ {
		if pigSpecs[p].ID == id {
			return p, true
		}
	}
	return PigBasic, false
}

func ParseWing(id string) (Wing, bool) {
	for w := Wing(0); w < WingCount; w++ {
		if wingSpecs[w].ID == id {
			return w, true
		}
	}
	return WingNone, false
}

func ParseTrail(id string) (Trail, bool) {
	for t := Trail(0); t < TrailCount; t++ {
		if trailSpecs[t].ID == id {
			return t, true
		}
	}
	return TrailNone, false
}
