package game

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownTuningKeys is returned alongside a usable Tuning when the file
// carries keys nothing reads.
var ErrUnknownTuningKeys = errors.New("unknown tuning keys")

// Tuning holds every gameplay constant that may be overridden from a TOML
// file. The values are tuned by feel; only their ratios matter.
type Tuning struct {
	Run       RunTuning       `toml:"run"`
	Lanes     LaneTuning      `toml:"lanes"`
	Spawn     SpawnTuning     `toml:"spawn"`
	Grid      GridTuning      `toml:"grid"`
	Decor     DecorTuning     `toml:"decor"`
	Intro     IntroTuning     `toml:"intro"`
	Biome     BiomeTuning     `toml:"biome"`
	Collision CollisionTuning `toml:"collision"`
	Assets    AssetNames      `toml:"assets"`
}

type RunTuning struct {
	InitialSpeed float64 `toml:"initial_speed"`
	ScoreRate    float64 `toml:"score_rate"`
	Acceleration float64 `toml:"acceleration"`
}

type LaneTuning struct {
	Width     float64 `toml:"width"`
	Smoothing float64 `toml:"smoothing"`
	Clearance float64 `toml:"clearance"`
}

// Corridor is the half-width of the lateral band kept free of decorations.
func (l LaneTuning) Corridor() float64 { return l.Width * l.Clearance }

type SpawnTuning struct {
	LeadDistance     float64 `toml:"lead_distance"`
	TrailDistance    float64 `toml:"trail_distance"`
	Chance           float64 `toml:"chance"`
	SkyLateralJitter float64 `toml:"sky_lateral_jitter"`
	SkyVerticalMin   float64 `toml:"sky_vertical_min"`
	SkyVerticalMax   float64 `toml:"sky_vertical_max"`
}

type GridTuning struct {
	Width       int `toml:"width"`
	Depth       int `toml:"depth"`
	RecycleRows int `toml:"recycle_rows"`
}

type DecorTuning struct {
	Counts           []int   `toml:"counts"`
	Weights          []int   `toml:"weights"`
	FloraInset       float64 `toml:"flora_inset"`
	FloraSpacing     float64 `toml:"flora_spacing"`
	MountainColumn   int     `toml:"mountain_column"`
	MountainScaleMin float64 `toml:"mountain_scale_min"`
	MountainScaleMax float64 `toml:"mountain_scale_max"`
	ScaleMin         float64 `toml:"scale_min"`
	ScaleMax         float64 `toml:"scale_max"`
	DriftCount       int     `toml:"drift_count"`
	DriftNear        float64 `toml:"drift_near"`
	DriftSpread      float64 `toml:"drift_spread"`
}

type IntroTuning struct {
	Altitude    float64 `toml:"altitude"`
	Cruise      float64 `toml:"cruise"`
	DiveStart   float64 `toml:"dive_start"`
	End         float64 `toml:"end"`
	DescentRate float64 `toml:"descent_rate"`
	PitchRate   float64 `toml:"pitch_rate"`
	PitchMax    float64 `toml:"pitch_max"`
	PitchEase   float64 `toml:"pitch_ease"`
}

// CruiseReachedAt is the z where the dive levels out at cruise, flying at
// speed. The clock does not ramp during the intro.
func (it IntroTuning) CruiseReachedAt(speed float64) float64 {
	if it.DescentRate <= 0 {
		return math.Inf(1)
	}
	return it.DiveStart + math.Ceil((it.Altitude-it.Cruise)/it.DescentRate)*speed
}

type BiomeTuning struct {
	SkyScoreThreshold float64 `toml:"sky_score_threshold"`
}

type CollisionTuning struct {
	TrunkRadius  float64 `toml:"trunk_radius"`
	TrunkHeight  float64 `toml:"trunk_height"`
	SkyShrink    float64 `toml:"sky_shrink"`
	PlayerShrink float64 `toml:"player_shrink"`
}

type AssetNames struct {
	Ground          []string `toml:"ground"`
	Trees           []string `toml:"trees"`
	Decor           []string `toml:"decor"`
	Flora           []string `toml:"flora"`
	Mountains       []string `toml:"mountains"`
	GroundObstacles []string `toml:"ground_obstacles"`
	SkyObstacles    []string `toml:"sky_obstacles"`
	Clouds          []string `toml:"clouds"`
}

func (a AssetNames) Manifest() Manifest {
	return Manifest{
		PoolGround:          a.Ground,
		PoolTrees:           a.Trees,
		PoolDecor:           a.Decor,
		PoolFlora:           a.Flora,
		PoolMountains:       a.Mountains,
		PoolGroundObstacles: a.GroundObstacles,
		PoolSkyObstacles:    a.SkyObstacles,
		PoolClouds:          a.Clouds,
	}
}

func DefaultTuning() Tuning {
	m := DefaultManifest()
	return Tuning{
		Run: RunTuning{InitialSpeed: InitialSpeed, ScoreRate: ScoreRate, Acceleration: Acceleration},
		Lanes: LaneTuning{Width: LaneWidth, Smoothing: LaneSmoothing, Clearance: LaneClearance},
		Spawn: SpawnTuning{
			LeadDistance:     LeadDistance,
			TrailDistance:    TrailDistance,
			Chance:           SpawnChance,
			SkyLateralJitter: SkyLateralJitter,
			SkyVerticalMin:   SkyVerticalMin,
			SkyVerticalMax:   SkyVerticalMax,
		},
		Grid: GridTuning{Width: GridWidth, Depth: GridDepth, RecycleRows: RecycleRows},
		Decor: DecorTuning{
			Counts:           []int{4, 5},
			Weights:          []int{3, 2},
			FloraInset:       FloraInset,
			FloraSpacing:     FloraSpacing,
			MountainColumn:   MountainColumn,
			MountainScaleMin: MountainScaleMin,
			MountainScaleMax: MountainScaleMax,
			ScaleMin:         DecorScaleMin,
			ScaleMax:         DecorScaleMax,
			DriftCount:       DriftCount,
			DriftNear:        DriftNear,
			DriftSpread:      DriftSpread,
		},
		Intro: IntroTuning{
			Altitude:    IntroAltitude,
			Cruise:      CruiseAltitude,
			DiveStart:   IntroDiveStart,
			End:         IntroEnd,
			DescentRate: IntroDescentRate,
			PitchRate:   IntroPitchRate,
			PitchMax:    IntroPitchMax,
			PitchEase:   IntroPitchEase,
		},
		Biome: BiomeTuning{SkyScoreThreshold: SkyScoreThreshold},
		Collision: CollisionTuning{
			TrunkRadius:  TrunkRadius,
			TrunkHeight:  TrunkHeight,
			SkyShrink:    SkyShrink,
			PlayerShrink: PlayerShrink,
		},
		Assets: AssetNames{
			Ground:          m[PoolGround],
			Trees:           m[PoolTrees],
			Decor:           m[PoolDecor],
			Flora:           m[PoolFlora],
			Mountains:       m[PoolMountains],
			GroundObstacles: m[PoolGroundObstacles],
			SkyObstacles:    m[PoolSkyObstacles],
			Clouds:          m[PoolClouds],
		},
	}
}

// Validate rejects values that would break streaming or spawning.
func (t Tuning) Validate() error {
	var errs []error
	if t.Lanes.Width <= 0 {
		errs = append(errs, fmt.Errorf("lanes.width must be positive, got %v", t.Lanes.Width))
	}
	if t.Lanes.Smoothing <= 0 || t.Lanes.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("lanes.smoothing must be in (0,1], got %v", t.Lanes.Smoothing))
	}
	if t.Spawn.Chance < 0 || t.Spawn.Chance > 1 {
		errs = append(errs, fmt.Errorf("spawn.chance must be in [0,1], got %v", t.Spawn.Chance))
	}
	if t.Spawn.LeadDistance <= 0 || t.Spawn.TrailDistance <= 0 {
		errs = append(errs, errors.New("spawn lead/trail distances must be positive"))
	}
	if t.Grid.Width < 1 || t.Grid.Depth <= t.Grid.RecycleRows || t.Grid.RecycleRows < 1 {
		errs = append(errs, fmt.Errorf("grid %dx%d cannot recycle after %d rows", t.Grid.Width, t.Grid.Depth, t.Grid.RecycleRows))
	}
	if t.Grid.Width%2 == 0 {
		errs = append(errs, fmt.Errorf("grid.width must be odd to centre the lanes, got %d", t.Grid.Width))
	}
	if len(t.Decor.Counts) == 0 || len(t.Decor.Counts) != len(t.Decor.Weights) {
		errs = append(errs, errors.New("decor.counts and decor.weights must be non-empty and the same length"))
	}
	if t.Intro.Cruise >= t.Intro.Altitude || t.Intro.DescentRate <= 0 {
		errs = append(errs, errors.New("intro must descend from altitude to cruise"))
	}
	if t.Intro.End < t.Intro.DiveStart {
		errs = append(errs, errors.New("intro.end must not precede intro.dive_start"))
	} else if z := t.Intro.CruiseReachedAt(t.Run.InitialSpeed); z > t.Intro.End {
		errs = append(errs, fmt.Errorf("intro reaches cruise at z=%.1f, after intro.end %.1f", z, t.Intro.End))
	}
	if t.Collision.SkyShrink < 0 || t.Collision.SkyShrink >= 1 {
		errs = append(errs, fmt.Errorf("collision.sky_shrink must be in [0,1), got %v", t.Collision.SkyShrink))
	}
	return errors.Join(errs...)
}

// LoadTuning reads path over the defaults. A missing file yields the defaults.
// Unknown keys return the decoded tuning together with ErrUnknownTuningKeys.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return DefaultTuning(), fmt.Errorf("read tuning: %w", err)
	}
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return t, fmt.Errorf("%w: %s", ErrUnknownTuningKeys, strings.Join(keys, ", "))
	}
	return t, nil
}
