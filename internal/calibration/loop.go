package calibration

import (
	"math"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/sim"
	"github.com/fairwaylabs/roundsim/internal/skill"
)

// FailureKind names a calibration pass condition that was not met
type FailureKind string

const (
	FailRatingBand FailureKind = "rating_band"
	FailStatTrend  FailureKind = "stat_trend"
	FailScoreOrder FailureKind = "score_order"
	FailScoreGap   FailureKind = "score_gap"
)

const (
	// asymmetric tolerance band around the rating-derived expected score
	bandBelow = 3.0
	bandAbove = 5.0

	// minimum average-score gap between the worst and best verified tier
	minScoreGap = 10.0

	// a statistic may hold flat within noise but must not improve by more
	// than this as handicap increases
	statTrendTolerance = 2.5

	minScale = 0.2
)

// verificationTiers are the handicaps every calibration batch verifies
var verificationTiers = []float64{0, 5, 10, 15, 20}

// Config tunes the calibration loop
type Config struct {
	RoundsPerTier int
	MaxAttempts   int
	Step          float64
	Workers       int
	BaseSeed      int64
	ShotCap       int
	Course        sim.RoundSpec

	// Rating and Slope override the course's difficulty indices when set,
	// steering the expected-score band.
	Rating float64
	Slope  float64

	// OnAttempt, when set, receives each attempt report as it completes
	OnAttempt func(AttemptReport)
}

// TierStats aggregates one tier's batch of rounds
type TierStats struct {
	Handicap      float64 `json:"handicap"`
	Rounds        int     `json:"rounds"`
	AvgScore      float64 `json:"avg_score"`
	ScoreStdDev   float64 `json:"score_std_dev"`
	ExpectedScore float64 `json:"expected_score"`
	FairwayPct    float64 `json:"fairway_pct"`
	GIRPct        float64 `json:"gir_pct"`
	ScramblingPct float64 `json:"scrambling_pct"`
	PuttsPerRound float64 `json:"putts_per_round"`
	ThreePuttPct  float64 `json:"three_putt_pct"`
	Incomplete    int     `json:"incomplete_holes"`
}

// AttemptReport records one calibration attempt
type AttemptReport struct {
	Attempt  int              `json:"attempt"`
	State    dispersion.State `json:"state"`
	Tiers    []TierStats      `json:"tiers"`
	Passed   bool             `json:"passed"`
	Failures []FailureKind    `json:"failures,omitempty"`
}

// Result is the outcome of a full calibration run. A failed run reports the
// last attempted multipliers and the failing conditions; the caller decides
// whether to proceed with them or halt.
type Result struct {
	Passed   bool             `json:"passed"`
	Attempts int              `json:"attempts"`
	Final    dispersion.State `json:"final"`
	Reports  []AttemptReport  `json:"reports"`
}

// Loop batch-runs the shot policy across seeded rounds per tier and rescales
// the global dispersion multipliers until all tiers pass simultaneously.
type Loop struct {
	cfg Config
	log *logrus.Logger
}

func New(cfg Config, log *logrus.Logger) *Loop {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.RoundsPerTier <= 0 {
		cfg.RoundsPerTier = 200
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 25
	}
	if cfg.Step <= 0 {
		cfg.Step = 0.05
	}
	if len(cfg.Course.Holes) == 0 {
		cfg.Course = StandardCourse()
	}
	if cfg.Rating > 0 {
		cfg.Course.Rating = cfg.Rating
	}
	if cfg.Slope > 0 {
		cfg.Course.Slope = cfg.Slope
	}
	return &Loop{cfg: cfg, log: log}
}

// expectedScore derives the target scoring average for a handicap from course
// rating and slope.
func (l *Loop) expectedScore(h float64) float64 {
	return l.cfg.Course.Rating + h*l.cfg.Course.Slope/113
}

// runTier plays the tier's batch of seeded rounds concurrently. Rounds share
// nothing but the calibration snapshot, so a plain worker pool suffices.
func (l *Loop) runTier(h float64, state dispersion.State) TierStats {
	seeds := make(chan int64, l.cfg.RoundsPerTier)
	results := make(chan sim.RoundResult, l.cfg.RoundsPerTier)

	var wg sync.WaitGroup
	for w := 0; w < l.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				runner := sim.NewRoundRunner(skill.Handicap(h), state, seed)
				results <- runner.PlayRound(l.cfg.Course, sim.Options{
					ShotCap:    l.cfg.ShotCap,
					CourseName: l.cfg.Course.CourseName,
				})
			}
		}()
	}

	for i := 0; i < l.cfg.RoundsPerTier; i++ {
		seeds <- l.cfg.BaseSeed + int64(h)*1_000_003 + int64(i)
	}
	close(seeds)
	wg.Wait()
	close(results)

	scores := make([]float64, 0, l.cfg.RoundsPerTier)
	var fwHit, fwOpp, gir, holes, putts, threePutts, scrOK, scrOpp, incomplete int
	for r := range results {
		scores = append(scores, float64(r.TotalStrokes))
		fwHit += r.FairwaysHit
		fwOpp += r.FairwayOpportunities
		gir += r.GreensInRegulation
		holes += len(r.Holes)
		putts += r.TotalPutts
		threePutts += r.ThreePutts
		scrOK += r.ScrambleSuccesses
		scrOpp += r.ScrambleOpportunities
		incomplete += r.IncompleteHoles
	}

	ts := TierStats{
		Handicap:      h,
		Rounds:        len(scores),
		AvgScore:      stat.Mean(scores, nil),
		ScoreStdDev:   stat.StdDev(scores, nil),
		ExpectedScore: l.expectedScore(h),
		PuttsPerRound: float64(putts) / float64(len(scores)),
		Incomplete:    incomplete,
	}
	if fwOpp > 0 {
		ts.FairwayPct = 100 * float64(fwHit) / float64(fwOpp)
	}
	if holes > 0 {
		ts.GIRPct = 100 * float64(gir) / float64(holes)
		ts.ThreePuttPct = 100 * float64(threePutts) / float64(holes)
	}
	if scrOpp > 0 {
		ts.ScramblingPct = 100 * float64(scrOK) / float64(scrOpp)
	}
	return ts
}

// RunBatch plays every verification tier under one calibration snapshot
// without adjusting anything. The read-only half of the loop.
func (l *Loop) RunBatch(state dispersion.State) []TierStats {
	tiers := make([]TierStats, 0, len(verificationTiers))
	for _, h := range verificationTiers {
		tiers = append(tiers, l.runTier(h, state))
	}
	return tiers
}

// Evaluate applies the pass conditions to a batch. An empty batch demonstrates
// no tier separation and fails the score-gap condition.
func Evaluate(tiers []TierStats) []FailureKind {
	if len(tiers) == 0 {
		return []FailureKind{FailScoreGap}
	}

	var failures []FailureKind

	order := true
	trend := true
	for i := 1; i < len(tiers); i++ {
		if tiers[i].AvgScore < tiers[i-1].AvgScore {
			order = false
		}
		if tiers[i].GIRPct > tiers[i-1].GIRPct+statTrendTolerance ||
			tiers[i].FairwayPct > tiers[i-1].FairwayPct+statTrendTolerance ||
			tiers[i].ScramblingPct > tiers[i-1].ScramblingPct+statTrendTolerance {
			trend = false
		}
	}
	if !order {
		failures = append(failures, FailScoreOrder)
	}
	if !trend {
		failures = append(failures, FailStatTrend)
	}

	if tiers[len(tiers)-1].AvgScore-tiers[0].AvgScore < minScoreGap {
		failures = append(failures, FailScoreGap)
	}

	for _, t := range tiers {
		if t.AvgScore < t.ExpectedScore-bandBelow || t.AvgScore > t.ExpectedScore+bandAbove {
			failures = append(failures, FailRatingBand)
			break
		}
	}

	return failures
}

// Run executes calibration attempts until every tier passes or the attempt
// budget is exhausted. The passing state is installed globally; persisting it
// is the caller's concern.
func (l *Loop) Run() (Result, error) {
	if err := skill.ValidateBenchmarkTable(); err != nil {
		return Result{}, err
	}

	result := Result{}
	state := dispersion.Snapshot()

	for attempt := 1; attempt <= l.cfg.MaxAttempts; attempt++ {
		tiers := l.RunBatch(state)
		failures := Evaluate(tiers)
		report := AttemptReport{
			Attempt:  attempt,
			State:    state,
			Tiers:    tiers,
			Passed:   len(failures) == 0,
			Failures: failures,
		}
		result.Reports = append(result.Reports, report)
		result.Attempts = attempt
		result.Final = state
		if l.cfg.OnAttempt != nil {
			l.cfg.OnAttempt(report)
		}

		entry := l.log.WithFields(logrus.Fields{
			"attempt":          attempt,
			"dispersion_scale": state.DispersionScale,
			"chip_scale":       state.ChipMultiplierScale,
			"failures":         failures,
		})

		if report.Passed {
			entry.Info("calibration passed")
			result.Passed = true
			dispersion.SetState(state)
			return result, nil
		}
		entry.Warn("calibration attempt failed, adjusting multipliers")

		state = adjust(state, tiers, failures, l.cfg.Step)
		dispersion.SetState(state)
		result.Final = state
	}

	return result, nil
}

// adjust moves the multiplier pair one fixed step in the indicated direction:
// scores below band mean dispersion is too tight (loosen, scale up), scores
// above band mean too loose (tighten, scale down); a broken statistic trend
// widens the chip multiplier so short-game quality separates the tiers.
func adjust(state dispersion.State, tiers []TierStats, failures []FailureKind, step float64) dispersion.State {
	var deviation float64
	for _, t := range tiers {
		deviation += t.AvgScore - t.ExpectedScore
	}
	deviation /= float64(len(tiers))

	next := state
	if deviation < 0 {
		next.DispersionScale += step
	} else {
		next.DispersionScale = math.Max(minScale, next.DispersionScale-step)
	}

	for _, f := range failures {
		if f == FailStatTrend || f == FailScoreOrder {
			next.ChipMultiplierScale += step / 2
			break
		}
	}
	return next
}
