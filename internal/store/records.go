package store

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pigflight/internal/game"
)

const (
	keyStats    = "stats"
	keyProfile  = "profile"
	keySettings = "settings"
)

const (
	StartingCoins = 1000
	RareChestCost = 100
	RecentFlights = 5
	CoinDivisor   = 10 // coins earned per point of score
)

var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrNotOwned          = errors.New("item not owned")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrNothingToUnlock   = errors.New("every item is already owned")
)

// Flight is one finished run as shown in the recent flights list.
type Flight struct {
	Score    int       `msgpack:"score"`
	Distance int       `msgpack:"distance"`
	Dodged   int       `msgpack:"dodged"`
	Biome    string    `msgpack:"biome"`
	At       time.Time `msgpack:"at"`
}

// Stats aggregates every run ever flown.
type Stats struct {
	BestScore       int      `msgpack:"best_score"`
	TotalScore      int64    `msgpack:"total_score"`
	TotalDistance   int64    `msgpack:"total_distance"`
	ObstaclesDodged int64    `msgpack:"obstacles_dodged"`
	PlayTicks       int64    `msgpack:"play_ticks"`
	Flights         int      `msgpack:"flights"`
	Recent          []Flight `msgpack:"recent"` // newest first
}

func (s Stats) PlayTime() time.Duration {
	return time.Duration(s.PlayTicks) * time.Second / game.TicksPerSecond
}

// Run is what the session reports at game over.
type Run struct {
	Score    float64
	Distance float64
	Dodged   int
	Ticks    int
	Biome    string
	At       time.Time
}

type Settings struct {
	Volume int `msgpack:"volume"` // 0..100
	SFX    int `msgpack:"sfx"`    // 0..100
}

func DefaultSettings() Settings {
	return Settings{Volume: 70, SFX: 80}
}

// Gain is the combined volume scale in 0..1.
func (s Settings) Gain() float64 {
	return float64(clampPct(s.Volume)) / 100 * float64(clampPct(s.SFX)) / 100
}

// Store reads and writes records through a KV. Records that fail to decode
// read as their defaults.
type Store struct {
	kv  KV
	log *slog.Logger
	mu  sync.Mutex
}

func New(kv KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, log: log}
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLocked()
}

func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := DefaultSettings()
	if !s.load(keySettings, &st) {
		return DefaultSettings()
	}
	st.Volume, st.SFX = clampPct(st.Volume), clampPct(st.SFX)
	return st
}

func (s *Store) SaveSettings(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(keySettings, st)
}

// RecordRun folds a finished run into the stats and pays out coins.
func (s *Store) RecordRun(r Run) (Stats, Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := int(math.Floor(max(r.Score, 0)))
	dist := int(math.Floor(max(r.Distance, 0)))

	st := s.statsLocked()
	st.Flights++
	st.TotalScore += int64(score)
	st.TotalDistance += int64(dist)
	st.ObstaclesDodged += int64(r.Dodged)
	st.PlayTicks += int64(r.Ticks)
	st.BestScore = max(st.BestScore, score)
	f := Flight{Score: score, Distance: dist, Dodged: r.Dodged, Biome: r.Biome, At: r.At.UTC()}
	st.Recent = append([]Flight{f}, st.Recent...)
	if len(st.Recent) > RecentFlights {
		st.Recent = st.Recent[:RecentFlights]
	}

	p := s.profileLocked()
	p.Coins += score / CoinDivisor

	if err := s.save(keyStats, st); err != nil {
		return st, p, err
	}
	if err := s.save(keyProfile, p); err != nil {
		return st, p, err
	}
	return st, p, nil
}

// Purchase buys it with coins.
func (s *Store) Purchase(it Item) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profileLocked()
	price, err := it.Price()
	if err != nil {
		return p, err
	}
	if p.Owns(it) {
		return p, fmt.Errorf("purchase %s: %w", it, ErrAlreadyOwned)
	}
	if p.Coins < price {
		return p, fmt.Errorf("purchase %s for %d with %d: %w", it, price, p.Coins, ErrInsufficientCoins)
	}
	p.Coins -= price
	p.grant(it)
	return p, s.save(keyProfile, p)
}

// Select equips an owned item.
func (s *Store) Select(it Item) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profileLocked()
	if _, err := it.Price(); err != nil {
		return p, err
	}
	if !p.Owns(it) {
		return p, fmt.Errorf("select %s: %w", it, ErrNotOwned)
	}
	switch it.Kind {
	case ItemPig:
		p.Pig = it.ID
	case ItemWing:
		p.Wing = it.ID
	case ItemTrail:
		p.Trail = it.ID
	}
	return p, s.save(keyProfile, p)
}

// Equip selects a whole loadout at once. Nothing is saved unless every
// item is owned.
func (s *Store) Equip(lo game.Loadout) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profileLocked()
	if !p.Allows(lo) {
		return p, fmt.Errorf("equip %s/%s/%s: %w", lo.Pig.Spec().ID, lo.Wing.Spec().ID, lo.Trail.Spec().ID, ErrNotOwned)
	}
	p.Pig = lo.Pig.Spec().ID
	p.Wing = lo.Wing.Spec().ID
	p.Trail = lo.Trail.Spec().ID
	return p, s.save(keyProfile, p)
}

// OpenChest unlocks a random item the player does not own yet. A rare chest
// costs RareChestCost; nothing is charged when there is nothing to unlock.
// roll returns a value in [0,n).
func (s *Store) OpenChest(rare bool, roll func(n int) int) (Item, Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profileLocked()

	var locked []Item
	for _, it := range Catalog() {
		if !p.Owns(it) {
			locked = append(locked, it)
		}
	}
	if len(locked) == 0 {
		return Item{}, p, ErrNothingToUnlock
	}
	if rare {
		if p.Coins < RareChestCost {
			return Item{}, p, fmt.Errorf("rare chest: %w", ErrInsufficientCoins)
		}
		p.Coins -= RareChestCost
	}
	it := locked[roll(len(locked))%len(locked)]
	p.grant(it)
	return it, p, s.save(keyProfile, p)
}

// ResetProgress forgets stats and profile. Settings survive.
func (s *Store) ResetProgress() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(keyStats); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}
	if err := s.kv.Delete(keyProfile); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}

func (s *Store) statsLocked() Stats {
	var st Stats
	if !s.load(keyStats, &st) {
		return Stats{}
	}
	if st.BestScore < 0 || st.TotalScore < 0 || st.TotalDistance < 0 || st.Flights < 0 {
		s.log.Warn("stats record out of range, using defaults", "stats", st)
		return Stats{}
	}
	if len(st.Recent) > RecentFlights {
		st.Recent = st.Recent[:RecentFlights]
	}
	return st
}

func (s *Store) profileLocked() Profile {
	p := DefaultProfile()
	if !s.load(keyProfile, &p) {
		return DefaultProfile()
	}
	return p.sanitize()
}

// load decodes key into v. It reports false when the key is absent or the
// record is malformed.
func (s *Store) load(key string, v any) bool {
	data, ok := s.kv.Get(key)
	if !ok {
		return false
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		s.log.Warn("stored record malformed, using defaults", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Store) save(key string, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func clampPct(v int) int {
	return min(max(v, 0), 100)
}
