package bonus

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hollyoak/starjar/internal/model"
	"github.com/hollyoak/starjar/internal/season"
	"github.com/hollyoak/starjar/internal/store"
)

// Engine evaluates every bonus checker for a completion event and settles
// the eligible ones through the wallet store's award guard. The clock and
// random source are injected; production wiring passes time.Now and a
// seeded rand.
type Engine struct {
	settings    *store.SettingsStore
	children    *store.ChildStore
	completions *store.CompletionStore
	wallets     *store.WalletStore
	checkers    []Checker
	now         func() time.Time
	logger      *slog.Logger
}

func NewEngine(settings *store.SettingsStore, children *store.ChildStore, completions *store.CompletionStore, wallets *store.WalletStore, rng *rand.Rand, now func() time.Time, logger *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		settings:    settings,
		children:    children,
		completions: completions,
		wallets:     wallets,
		checkers: []Checker{
			AchievementChecker{},
			BirthdayChecker{},
			PerfectWeekChecker{},
			MonthlyChecker{},
			NewSurpriseChecker(rng),
		},
		now:    now,
		logger: logger,
	}
}

// Evaluate runs all checkers for the child and returns the results that
// should award. Checkers are read-only and independent, so they run
// concurrently.
func (e *Engine) Evaluate(childID int64) ([]model.BonusResult, error) {
	now := e.now()

	child, err := e.children.GetByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, fmt.Errorf("child %d not found", childID)
	}

	cfg, err := e.settings.BonusConfig()
	if err != nil {
		return nil, err
	}

	hist, err := e.history(childID, now)
	if err != nil {
		return nil, err
	}

	results := make([]model.BonusResult, len(e.checkers))
	var g errgroup.Group
	for i, checker := range e.checkers {
		g.Go(func() error {
			results[i] = checker.Check(cfg, *child, hist, now)
			return nil
		})
	}
	g.Wait()

	var eligible []model.BonusResult
	for _, res := range results {
		if res.ShouldAward {
			eligible = append(eligible, res)
		} else {
			e.logger.Debug("bonus not eligible", "type", res.Type, "child_id", childID, "reason", res.Reason)
		}
	}
	return eligible, nil
}

// Award is one settled bonus: the checker's decision plus the guard's
// verdict on whether this request actually paid it.
type Award struct {
	Result  model.BonusResult  `json:"result"`
	Outcome store.AwardOutcome `json:"outcome"`
}

// EvaluateAndAward evaluates the child's bonuses for a completion event and
// pushes each eligible result through the award guard. An already-awarded
// verdict is a success outcome and is returned, not retried.
func (e *Engine) EvaluateAndAward(childID int64) ([]Award, error) {
	eligible, err := e.Evaluate(childID)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	wallet, err := e.wallets.EnsureWallet(childID)
	if err != nil {
		return nil, err
	}

	awards := make([]Award, 0, len(eligible))
	for _, res := range eligible {
		outcome, err := e.wallets.AwardBonus(wallet.ID, res)
		if err != nil {
			return awards, fmt.Errorf("award %s bonus: %w", res.Type, err)
		}
		e.logger.Info("bonus settled",
			"type", res.Type,
			"child_id", childID,
			"outcome", string(outcome),
			"money_pence", res.MoneyPence,
			"stars", res.Stars,
		)
		awards = append(awards, Award{Result: res, Outcome: outcome})
	}
	return awards, nil
}

// history materializes the completion summaries the checkers decide over.
func (e *Engine) history(childID int64, now time.Time) (History, error) {
	var hist History

	total, err := e.completions.CountApproved(childID)
	if err != nil {
		return hist, err
	}
	hist.TotalApproved = total

	monthCount, err := e.completions.CountApprovedSince(childID, season.MonthStart(now))
	if err != nil {
		return hist, err
	}
	hist.MonthApproved = monthCount

	if ws := TargetWeekStart(now); ws != nil {
		daily, completed, err := e.completions.WeekAssignmentSummary(childID, *ws)
		if err != nil {
			return hist, err
		}
		hist.Week = WeekSummary{
			Start:                *ws,
			DailyAssignments:     daily,
			CompletedAssignments: completed,
		}
	}

	return hist, nil
}
