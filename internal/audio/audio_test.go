package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"pigflight/internal/game"
)

func TestGenerateEveryCue(t *testing.T) {
	for c := Cue(0); c < CueCount; c++ {
		buf := Generate(c)
		if len(buf) == 0 {
			t.Fatalf("%s: empty buffer", c)
		}
		if len(buf)%8 != 0 {
			t.Fatalf("%s: %d bytes is not whole stereo frames", c, len(buf))
		}
		peak := 0.0
		for i := 0; i < len(buf); i += 4 {
			v := float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i:])))
			if math.IsNaN(v) || math.Abs(v) > 1 {
				t.Fatalf("%s: sample %d out of range: %v", c, i/4, v)
			}
			peak = math.Max(peak, math.Abs(v))
		}
		if peak < 0.01 {
			t.Errorf("%s: silent, peak %v", c, peak)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for c := Cue(0); c < CueCount; c++ {
		if !bytes.Equal(Generate(c), Generate(c)) {
			t.Errorf("%s: two renders differ", c)
		}
	}
	if Generate(CueCount) != nil {
		t.Error("unknown cue rendered")
	}
}

func TestStereoChannelsMatch(t *testing.T) {
	buf := Generate(CueGameOver)
	for i := 0; i < len(buf); i += 8 {
		if !bytes.Equal(buf[i:i+4], buf[i+4:i+8]) {
			t.Fatalf("frame %d: left and right differ", i/8)
		}
	}
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("got %v", got)
	}
	if n, err := r.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Fatalf("drained reader: n=%d err=%v", n, err)
	}
}

func TestNilSystemIsSilent(t *testing.T) {
	var s *System
	s.SetVolume(1)
	s.Play(CueGameOver)
	if s.Volume() != 0 {
		t.Fatalf("nil volume %v", s.Volume())
	}
}

func TestSetVolumeClamps(t *testing.T) {
	s := &System{}
	for _, tc := range []struct{ in, want float64 }{
		{-1, 0}, {0.25, 0.25}, {3, 1}, {math.NaN(), 0},
	} {
		s.SetVolume(tc.in)
		if got := s.Volume(); got != tc.want {
			t.Errorf("SetVolume(%v): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestBindRoutesEvents(t *testing.T) {
	bus := game.NewEventBus()
	var played []Cue
	Bind(bus, func(c Cue, gain float64) {
		if gain <= 0 || gain > 1 {
			t.Errorf("%s: gain %v", c, gain)
		}
		played = append(played, c)
	})

	bus.Emit(game.Event{Type: game.EventRunStarted})
	bus.Emit(game.Event{Type: game.EventLaneChanged, Lane: 1})
	bus.Emit(game.Event{Type: game.EventBiomeChanged, Biome: game.BiomeGround})
	bus.Emit(game.Event{Type: game.EventBiomeChanged, Biome: game.BiomeSky})
	bus.Emit(game.Event{Type: game.EventObstacleDodged, Dodged: 1})
	bus.Emit(game.Event{Type: game.EventGameOver})
	bus.Emit(game.Event{Type: game.EventMenuReveal})
	bus.Emit(game.Event{Type: game.EventLoadoutChanged})

	want := []Cue{CueMenuSelect, CueLaneShift, CueSkyEntry, CueDodge, CueGameOver, CueMenuSelect}
	if len(played) != len(want) {
		t.Fatalf("played %v want %v", played, want)
	}
	for i := range want {
		if played[i] != want[i] {
			t.Errorf("cue %d: got %s want %s", i, played[i], want[i])
		}
	}
}

func TestGameOverOpensWithImpact(t *testing.T) {
	buf := Generate(CueGameOver)
	if frames := len(buf) / 8; frames != int(0.95*SampleRate) {
		t.Errorf("game over lasts %d frames", frames)
	}
	// The first note enters at 100ms; anything audible before it is the thud.
	peak := 0.0
	for i := 0; i < SampleRate*90/1000; i++ {
		v := float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:])))
		peak = math.Max(peak, math.Abs(v))
	}
	if peak < 0.05 {
		t.Errorf("no impact before the first note, peak %v", peak)
	}
}

func TestMenuSelectIsShortChime(t *testing.T) {
	if frames := len(Generate(CueMenuSelect)) / 8; frames != SampleRate*90/1000 {
		t.Errorf("menu select lasts %d frames", frames)
	}
}
