package audio

import "math"

// Cue identifies a sound effect.
type Cue int

const (
	CueMenuSelect Cue = iota
	CueLaneShift
	CueDodge
	CueSkyEntry
	CueGameOver

	CueCount
)

func (c Cue) String() string {
	switch c {
	case CueMenuSelect:
		return "menu_select"
	case CueLaneShift:
		return "lane_shift"
	case CueDodge:
		return "dodge"
	case CueSkyEntry:
		return "sky_entry"
	case CueGameOver:
		return "game_over"
	}
	return "unknown"
}

// Generate renders c as interleaved stereo float32 LE frames. Output is
// deterministic.
func Generate(c Cue) []byte {
	switch c {
	case CueMenuSelect:
		return genMenuSelect()
	case CueLaneShift:
		return genLaneShift()
	case CueDodge:
		return genDodge()
	case CueSkyEntry:
		return genSkyEntry()
	case CueGameOver:
		return genGameOver()
	}
	return nil
}

// genMenuSelect: two-note chime, G5 then D6, over a short click.
func genMenuSelect() []byte {
	n := SampleRate * 90 / 1000
	buf := makeBuf(n)
	split := n * 2 / 5
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		freq, np := 783.99, float64(i)/float64(split)
		if i >= split {
			freq, np = 1174.66, float64(i-split)/float64(n-split)
		}
		env := adsr(np, 0.05, 0.4, 0.3, 0.35)
		s := fm(t, freq, 3.0, 0.4*env) * env * 0.3
		if i < SampleRate/500 {
			s += (1 - float64(i)/(SampleRate/500)) * 0.25
		}
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLaneShift: airy whoosh, lowpassed noise under a short upward glide.
func genLaneShift() []byte {
	n := SampleRate * 110 / 1000
	buf := makeBuf(n)
	seed := uint64(0x9e3779b97f4a7c15)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := adsr(p, 0.15, 0.35, 0.4, 0.5)
		// Cutoff opens then closes across the swipe.
		k := 0.08 + 0.25*math.Sin(math.Pi*p)
		lp += (lcg(&seed) - lp) * k
		phase += 2 * math.Pi * (380 + 320*p) / SampleRate
		s := lp*env*0.5 + math.Sin(phase)*env*0.12
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDodge: soft two-partial blip.
func genDodge() []byte {
	n := SampleRate * 50 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.2, 0.4)
		s := (math.Sin(2*math.Pi*1760*t)*0.6 + math.Sin(2*math.Pi*2640*t)*0.25) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genSkyEntry: rising major arpeggio with a sustained top note.
func genSkyEntry() []byte {
	dur := 0.7
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{523.25, 0.00}, // C5
		{659.25, 0.09}, // E5
		{783.99, 0.18}, // G5
		{1046.5, 0.27}, // C6
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.01, 0.3, 0.35, 0.5)
			mix[i] += fm(t, note.freq, 2.0, 0.8*env) * env * 0.2
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: noisy impact thud, then a falling D minor line that sags in
// pitch as it fades.
func genGameOver() []byte {
	dur := 0.95
	n := int(dur * SampleRate)
	mix := make([]float64, n)

	seed := uint64(0xd1b54a32d192ed03)
	lp := 0.0
	thud := SampleRate * 120 / 1000
	for i := 0; i < thud; i++ {
		p := float64(i) / float64(thud)
		lp += (lcg(&seed) - lp) * 0.12
		t := float64(i) / SampleRate
		env := (1 - p) * (1 - p)
		mix[i] += (lp*0.7 + math.Sin(2*math.Pi*(90-40*p)*t)*0.5) * env * 0.5
	}

	notes := []struct{ freq, onset float64 }{
		{293.66, 0.10}, // D4
		{220.00, 0.26}, // A3
		{174.61, 0.42}, // F3
		{146.83, 0.58}, // D3
	}
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.01, 0.2, 0.25, 0.5)
			freq := note.freq * (1 - np*0.06)
			mix[i] += fm(t, freq, 1.5, 1.2*env) * env * 0.22
		}
	}

	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation, no hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }
