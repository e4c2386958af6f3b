// Package gamification turns workout history into tiered character stats:
// strength, agility, endurance, plus the focus and fury counters. Stateless
// classifiers over aggregate queries; nothing here writes.
package gamification

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meltforce/gigofit/internal/models"
	"github.com/meltforce/gigofit/internal/storage"
)

// Tier is one rung of a stat ladder. Min is the inclusive floor a value must
// meet to hold the tier.
type Tier struct {
	Label string
	Min   float64
}

// Tier ladders, ascending, first floor always 0.
var (
	StrengthTiers = []Tier{
		{"Iron Fist", 0},
		{"Steel Grip", 10_000},
		{"Mountain Hands", 50_000},
		{"Titan", 150_000},
	}
	AgilityTiers = []Tier{
		{"Crawler", 0},
		{"Strider", 2},
		{"Sprinter", 4},
		{"Ghost", 6},
	}
	EnduranceTiers = []Tier{
		{"Spark", 0},
		{"Ember", 30},
		{"Blaze", 45},
		{"Inferno", 75},
	}
)

// StatResult is a computed stat value with its resolved tier.
type StatResult struct {
	Value     float64 `json:"value"`
	Tier      string  `json:"tier"`
	TierIndex int     `json:"tier_index"`
}

// AllStats aggregates every gamified stat in one payload.
type AllStats struct {
	Strength   StatResult `json:"strength"`
	Agility    StatResult `json:"agility"`
	Endurance  StatResult `json:"endurance"`
	FocusCount int        `json:"focus_count"`
	FuryCount  int        `json:"fury_count"`
}

// Engine computes gamified stats from the repository.
type Engine struct {
	db  *storage.DB
	now func() time.Time
}

// New returns an Engine reading from db.
func New(db *storage.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// resolveTier picks the highest tier whose floor the value meets or exceeds:
// a descending scan that stops at the first qualifying tier.
func resolveTier(value float64, tiers []Tier) (string, int) {
	idx := 0
	for i := len(tiers) - 1; i >= 0; i-- {
		if value >= tiers[i].Min {
			idx = i
			break
		}
	}
	return tiers[idx].Label, idx
}

// StrengthStat ranks all-time completed-session volume on the strength
// ladder.
func (e *Engine) StrengthStat(ctx context.Context) (StatResult, error) {
	volume, err := e.db.CompletedTotalVolume(ctx)
	if err != nil {
		return StatResult{}, err
	}
	tier, idx := resolveTier(volume, StrengthTiers)
	return StatResult{Value: volume, Tier: tier, TierIndex: idx}, nil
}

// AgilityStat averages completed sessions per active week over the trailing
// 8 weeks. Only weeks containing at least one session count toward the
// denominator, so sparse weeks never dilute the average. No active weeks at
// all resolves to Crawler at value 0.
func (e *Engine) AgilityStat(ctx context.Context) (StatResult, error) {
	since := e.now().AddDate(0, 0, -8*7).UnixMilli()
	weeks, err := e.db.WeeklySessionCounts(ctx, since)
	if err != nil {
		return StatResult{}, err
	}

	if len(weeks) == 0 {
		return StatResult{Value: 0, Tier: AgilityTiers[0].Label, TierIndex: 0}, nil
	}

	total := 0
	for _, w := range weeks {
		total += w.Count
	}
	avg := float64(total) / float64(len(weeks))

	tier, idx := resolveTier(avg, AgilityTiers)
	return StatResult{Value: avg, Tier: tier, TierIndex: idx}, nil
}

// EnduranceStat averages recorded session duration in minutes across
// completed sessions; sessions that never persisted a timer are excluded.
func (e *Engine) EnduranceStat(ctx context.Context) (StatResult, error) {
	minutes, err := e.db.AverageSessionMinutes(ctx)
	if err != nil {
		return StatResult{}, err
	}
	tier, idx := resolveTier(minutes, EnduranceTiers)
	return StatResult{Value: minutes, Tier: tier, TierIndex: idx}, nil
}

// FocusCount counts low-vibe sessions that still held at least 90% of the
// immediately preceding session's volume. One linear pass over completed
// sessions in chronological order; the first session never qualifies.
func (e *Engine) FocusCount(ctx context.Context) (int, error) {
	rows, err := e.db.CompletedSessionVolumes(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := 1; i < len(rows); i++ {
		current, previous := rows[i], rows[i-1]
		if current.Vibe == models.VibeLow &&
			previous.Volume > 0 &&
			current.Volume >= previous.Volume*0.9 {
			count++
		}
	}
	return count, nil
}

// FuryCount counts completed sessions logged at crushing vibe.
func (e *Engine) FuryCount(ctx context.Context) (int, error) {
	return e.db.CountCompletedByVibe(ctx, models.VibeCrushing)
}

// GetAllStats computes all five stats concurrently; none depends on another.
func (e *Engine) GetAllStats(ctx context.Context) (*AllStats, error) {
	var stats AllStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.Strength, err = e.StrengthStat(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Agility, err = e.AgilityStat(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Endurance, err = e.EnduranceStat(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.FocusCount, err = e.FocusCount(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.FuryCount, err = e.FuryCount(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
