// Package audio plays the procedural sound cues of a flight.
package audio

import (
	"io"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"pigflight/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// maxVoices caps overlapping cues so rapid dodges never stack into clipping.
const maxVoices = 4

// System owns the output device and the pre-rendered cue buffers. A nil
// *System is valid and silent.
type System struct {
	ctx   *oto.Context
	ready chan struct{}
	log   *slog.Logger

	cues   [CueCount][]byte
	volume atomic.Uint64 // float64 bits
	voices atomic.Int32
}

// New opens the audio device. The device becomes usable asynchronously;
// cues played before it is ready are dropped.
func New(log *slog.Logger) (*System, error) {
	if log == nil {
		log = slog.Default()
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	s := &System{ctx: ctx, ready: ready, log: log}
	for c := Cue(0); c < CueCount; c++ {
		s.cues[c] = Generate(c)
	}
	s.SetVolume(DefaultVolume)
	return s, nil
}

// DefaultVolume is the cue volume before any settings are applied.
const DefaultVolume = 0.58

// SetVolume sets the master cue volume, clamped to 0..1.
func (s *System) SetVolume(v float64) {
	if s == nil {
		return
	}
	s.volume.Store(math.Float64bits(clamp01(v)))
}

func (s *System) Volume() float64 {
	if s == nil {
		return 0
	}
	return math.Float64frombits(s.volume.Load())
}

func (s *System) Play(c Cue) { s.PlayWithGain(c, 1) }

// PlayWithGain starts c on its own player and returns immediately.
func (s *System) PlayWithGain(c Cue, gain float64) {
	if s == nil || gain <= 0 || c < 0 || c >= CueCount {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	vol := s.Volume() * clamp01(gain)
	if vol <= 0 {
		return
	}
	if s.voices.Add(1) > maxVoices {
		s.voices.Add(-1)
		return
	}
	samples := s.cues[c]
	go func() {
		defer s.voices.Add(-1)
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(vol)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.log.Debug("audio player close", "cue", c.String(), "err", err)
		}
	}()
}

// Attach plays the matching cue for each session event.
func (s *System) Attach(bus *game.EventBus) {
	Bind(bus, s.PlayWithGain)
}

// Bind subscribes play to the events that have a cue.
func Bind(bus *game.EventBus, play func(Cue, float64)) {
	bus.Subscribe(game.EventRunStarted, func(game.Event) { play(CueMenuSelect, 1) })
	bus.Subscribe(game.EventLaneChanged, func(game.Event) { play(CueLaneShift, 0.7) })
	bus.Subscribe(game.EventObstacleDodged, func(game.Event) { play(CueDodge, 0.45) })
	bus.Subscribe(game.EventBiomeChanged, func(e game.Event) {
		if e.Biome == game.BiomeSky {
			play(CueSkyEntry, 1)
		}
	})
	bus.Subscribe(game.EventGameOver, func(game.Event) { play(CueGameOver, 1) })
	bus.Subscribe(game.EventLoadoutChanged, func(game.Event) { play(CueMenuSelect, 0.5) })
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
