package bonus

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// SurpriseChecker rolls a percentage die on every completion. Each event is
// an independent trial, so results carry no dedup key. The random source is
// injected so tests can fix the roll.
type SurpriseChecker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSurpriseChecker(rng *rand.Rand) *SurpriseChecker {
	return &SurpriseChecker{rng: rng}
}

func (*SurpriseChecker) Type() model.BonusType { return model.BonusSurprise }

func (c *SurpriseChecker) Check(cfg model.BonusConfig, child model.Child, hist History, now time.Time) model.BonusResult {
	if !cfg.Surprise.Enabled {
		return notEligible(model.BonusSurprise, "surprise bonus disabled")
	}

	c.mu.Lock()
	roll := c.rng.Intn(100) + 1
	c.mu.Unlock()

	if roll > cfg.SurpriseChance {
		return notEligible(model.BonusSurprise, fmt.Sprintf("rolled %d, needed at most %d", roll, cfg.SurpriseChance))
	}

	pence, stars := cfg.Surprise.Amounts()
	return model.BonusResult{
		Type:        model.BonusSurprise,
		ShouldAward: true,
		MoneyPence:  pence,
		Stars:       stars,
		Reason:      fmt.Sprintf("surprise bonus (rolled %d of %d%%)", roll, cfg.SurpriseChance),
	}
}
