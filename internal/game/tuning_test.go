package game

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultTuningValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.toml")} {
		tn, err := LoadTuning(path)
		if err != nil {
			t.Errorf("%q: %v", path, err)
		}
		if !reflect.DeepEqual(tn, DefaultTuning()) {
			t.Errorf("%q: not the defaults", path)
		}
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := writeTuning(t, `
[run]
score_rate = 0.2

[grid]
width = 7

[assets]
trees = ["tree_pine"]
`)
	tn, err := LoadTuning(path)
	if err != nil {
		t.Fatal(err)
	}
	if tn.Run.ScoreRate != 0.2 || tn.Grid.Width != 7 {
		t.Errorf("overrides not applied: %+v %+v", tn.Run, tn.Grid)
	}
	if tn.Run.InitialSpeed != InitialSpeed || tn.Grid.Depth != GridDepth {
		t.Error("unset keys lost their defaults")
	}
	if got := tn.Assets.Manifest()[PoolTrees]; len(got) != 1 || got[0] != "tree_pine" {
		t.Errorf("tree manifest %v", got)
	}
}

func TestLoadTuningUnknownKeys(t *testing.T) {
	path := writeTuning(t, "[run]\nscore_rate = 0.3\nturbo = true\n")
	tn, err := LoadTuning(path)
	if !errors.Is(err, ErrUnknownTuningKeys) {
		t.Fatalf("err = %v", err)
	}
	if tn.Run.ScoreRate != 0.3 {
		t.Error("known keys dropped alongside unknown ones")
	}
}

func TestLoadTuningRejects(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"malformed", "[run\nscore_rate = "},
		{"smoothing", "[lanes]\nsmoothing = 2.0\n"},
		{"grid", "[grid]\ndepth = 1\n"},
		{"weights", "[decor]\nweights = [1]\n"},
		{"intro", "[intro]\ncruise = 50.0\n"},
		{"even grid", "[grid]\nwidth = 4\n"},
		{"short intro", "[intro]\nend = 60.0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tn, err := LoadTuning(writeTuning(t, tc.body))
			if err == nil {
				t.Fatal("accepted")
			}
			if errors.Is(err, ErrUnknownTuningKeys) {
				t.Errorf("reported as unknown keys: %v", err)
			}
			if !reflect.DeepEqual(tn, DefaultTuning()) {
				t.Error("rejected file did not fall back to defaults")
			}
		})
	}
}

func TestIntroLevelsOutBeforeItEnds(t *testing.T) {
	tn := DefaultTuning()
	at := tn.Intro.CruiseReachedAt(tn.Run.InitialSpeed)
	if at > tn.Intro.End {
		t.Fatalf("default intro reaches cruise at z=%v, after %v", at, tn.Intro.End)
	}

	s, _ := newTestSession(t, tn)
	s.Input.Push(Confirm)
	limit := int(tn.Intro.End/tn.Run.InitialSpeed) + 2
	for i := 0; i < limit && s.Biome() == BiomeIntro; i++ {
		s.Tick()
	}
	if s.Biome() != BiomeGround {
		t.Fatalf("still in the intro after %d ticks, altitude %v", limit, s.Player().Altitude)
	}
	if s.Player().Altitude != tn.Intro.Cruise {
		t.Errorf("left the intro at altitude %v", s.Player().Altitude)
	}
}
