package bonus

import (
	"fmt"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// monthlyMilestones are the only monthly completion counts that pay out.
// Exact matches only: awarding on ">=" would re-fire on every completion
// between milestones.
var monthlyMilestones = []int{10, 25, 50, 100}

// MonthlyChecker awards a bonus when the month's approved completion count
// lands exactly on a milestone.
type MonthlyChecker struct{}

func (MonthlyChecker) Type() model.BonusType { return model.BonusMonthly }

func (MonthlyChecker) Check(cfg model.BonusConfig, child model.Child, hist History, now time.Time) model.BonusResult {
	if !cfg.Monthly.Enabled {
		return notEligible(model.BonusMonthly, "monthly milestone bonus disabled")
	}

	count := hist.MonthApproved
	milestone := false
	for _, m := range monthlyMilestones {
		if count == m {
			milestone = true
			break
		}
	}
	if !milestone {
		return notEligible(model.BonusMonthly, fmt.Sprintf("%d completions this month is not a milestone", count))
	}

	pence, stars := cfg.Monthly.Amounts()
	return model.BonusResult{
		Type:        model.BonusMonthly,
		ShouldAward: true,
		MoneyPence:  pence,
		Stars:       stars,
		Reason:      fmt.Sprintf("%d chores approved this month", count),
		DedupKey:    fmt.Sprintf("monthly:%d:%s:%d", child.ID, now.Format("2006-01"), count),
	}
}
