package bonus

import (
	"fmt"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// AchievementChecker awards a bonus each time the child's lifetime approved
// completion count crosses a configured multiple.
type AchievementChecker struct{}

func (AchievementChecker) Type() model.BonusType { return model.BonusAchievement }

func (AchievementChecker) Check(cfg model.BonusConfig, child model.Child, hist History, now time.Time) model.BonusResult {
	if !cfg.Achievement.Enabled {
		return notEligible(model.BonusAchievement, "achievement bonus disabled")
	}
	required := cfg.AchievementChoresRequired
	if required <= 0 {
		return notEligible(model.BonusAchievement, "achievement milestone size not configured")
	}

	total := hist.TotalApproved
	if total <= 0 || total%required != 0 {
		return notEligible(model.BonusAchievement, fmt.Sprintf("%d approved chores is not a milestone of %d", total, required))
	}

	pence, stars := cfg.Achievement.Amounts()
	return model.BonusResult{
		Type:        model.BonusAchievement,
		ShouldAward: true,
		MoneyPence:  pence,
		Stars:       stars,
		Reason:      fmt.Sprintf("completed %d approved chores", total),
		DedupKey:    fmt.Sprintf("achievement:%d:%d", child.ID, total),
	}
}
