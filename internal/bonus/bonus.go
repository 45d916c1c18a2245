// Package bonus decides which bonuses a chore completion event earns. Each
// checker is a pure decision function over the family's bonus configuration
// and a materialized completion-history summary; nothing in this package
// touches the database except the Engine, which assembles summaries and
// pushes eligible awards through the wallet store's idempotency guard.
package bonus

import (
	"time"

	"github.com/hollyoak/starjar/internal/model"
	"github.com/hollyoak/starjar/internal/season"
)

// Checker is one bonus eligibility rule. Implementations must be pure given
// their inputs: all randomness and clock access is injected.
type Checker interface {
	Type() model.BonusType
	Check(cfg model.BonusConfig, child model.Child, hist History, now time.Time) model.BonusResult
}

// History is the completion-history summary checkers decide over. The Engine
// materializes it from the completion store; tests construct it directly.
type History struct {
	// TotalApproved is the child's lifetime count of approved completions.
	TotalApproved int
	// MonthApproved counts approved completions since the first of the
	// current month.
	MonthApproved int
	// Week summarizes the perfect-week target week. Zero value when now is
	// mid-week and no target week exists.
	Week WeekSummary
}

// WeekSummary describes one Monday-to-Sunday week of daily assignments.
type WeekSummary struct {
	Start                time.Time // Monday 00:00:00
	DailyAssignments     int       // active daily assignments existing during the week
	CompletedAssignments int       // of those, how many have an approved completion in-week
}

// TargetWeekStart returns the Monday opening the week a perfect-week
// evaluation at now should examine: the current week on Sunday (the week is
// ending), the previous week on Monday (the week just ended). On any other
// day a perfect week cannot yet be determined and nil is returned.
func TargetWeekStart(now time.Time) *time.Time {
	switch now.Weekday() {
	case time.Sunday:
		ws := season.WeekStart(now)
		return &ws
	case time.Monday:
		ws := season.WeekStart(now).AddDate(0, 0, -7)
		return &ws
	}
	return nil
}

func notEligible(t model.BonusType, reason string) model.BonusResult {
	return model.BonusResult{Type: t, Reason: reason}
}
