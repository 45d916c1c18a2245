package bonus

import (
	"fmt"
	"time"

	"github.com/hollyoak/starjar/internal/model"
	"github.com/hollyoak/starjar/internal/season"
)

// BirthdayChecker awards a bonus on the first completion of the child's
// birth month. The dedup key scopes the award to one per calendar month.
type BirthdayChecker struct{}

func (BirthdayChecker) Type() model.BonusType { return model.BonusBirthday }

func (BirthdayChecker) Check(cfg model.BonusConfig, child model.Child, hist History, now time.Time) model.BonusResult {
	if !cfg.Birthday.Enabled {
		return notEligible(model.BonusBirthday, "birthday bonus disabled")
	}
	if child.BirthMonth == nil {
		return notEligible(model.BonusBirthday, "no birth month recorded")
	}
	if !season.IsBirthdayMonth(child, now) {
		return notEligible(model.BonusBirthday, "not the birthday month")
	}

	pence, stars := cfg.Birthday.Amounts()
	return model.BonusResult{
		Type:        model.BonusBirthday,
		ShouldAward: true,
		MoneyPence:  pence,
		Stars:       stars,
		Reason:      fmt.Sprintf("birthday month %s", now.Month()),
		DedupKey:    fmt.Sprintf("birthday:%d:%s", child.ID, now.Format("2006-01")),
	}
}
