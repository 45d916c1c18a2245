package bonus

import (
	"fmt"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// PerfectWeekChecker awards a bonus when every active daily assignment was
// approved at least once during the target week. It only settles on Sunday
// (for the ending week) or Monday (for the week just ended); mid-week a
// perfect week cannot yet be determined.
type PerfectWeekChecker struct{}

func (PerfectWeekChecker) Type() model.BonusType { return model.BonusPerfectWeek }

func (PerfectWeekChecker) Check(cfg model.BonusConfig, child model.Child, hist History, now time.Time) model.BonusResult {
	if !cfg.PerfectWeek.Enabled {
		return notEligible(model.BonusPerfectWeek, "perfect week bonus disabled")
	}
	if TargetWeekStart(now) == nil {
		return notEligible(model.BonusPerfectWeek, "perfect week only settles on Sunday or Monday")
	}

	week := hist.Week
	if week.DailyAssignments == 0 {
		return notEligible(model.BonusPerfectWeek, "no daily assignments during the week")
	}
	if week.CompletedAssignments < week.DailyAssignments {
		return notEligible(model.BonusPerfectWeek,
			fmt.Sprintf("%d of %d daily assignments completed", week.CompletedAssignments, week.DailyAssignments))
	}

	pence, stars := cfg.PerfectWeek.Amounts()
	return model.BonusResult{
		Type:        model.BonusPerfectWeek,
		ShouldAward: true,
		MoneyPence:  pence,
		Stars:       stars,
		Reason:      fmt.Sprintf("perfect week of %d daily assignments", week.DailyAssignments),
		DedupKey:    fmt.Sprintf("perfect_week:%d:%s", child.ID, week.Start.Format("2006-01-02")),
	}
}
