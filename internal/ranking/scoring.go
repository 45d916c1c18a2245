package ranking

import (
	"math"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// freshnessHalfLife controls the exponential decay of the freshness score:
// a 30-day-old item scores ~0.37.
const freshnessHalfLifeDays = 30.0

// ageLadder is the ordered band sequence used for near-miss scoring. Bands
// outside the ladder (toddler, young adult) fall through to the floor score
// so unknown-age content is demoted, never excluded.
var ageLadder = []model.AgeGroup{model.AgeKid, model.AgeTween, model.AgeTeen}

// AgeMatch scores how well a reward's age band fits the child's.
func AgeMatch(child, reward model.AgeGroup) float64 {
	if reward == model.AgeAll {
		return 1.0
	}
	if child != "" && child == reward {
		return 1.0
	}

	ci := ladderIndex(child)
	ri := ladderIndex(reward)
	if ci < 0 || ri < 0 {
		return 0.1
	}
	switch dist := abs(ci - ri); dist {
	case 0:
		return 1.0
	case 1:
		return 0.5
	case 2:
		return 0.2
	}
	return 0.1
}

func ladderIndex(g model.AgeGroup) int {
	for i, band := range ageLadder {
		if band == g {
			return i
		}
	}
	return -1
}

// InterestOverlap is the Jaccard similarity of the child's and reward's
// interest tags. Missing data on either side is neutral, not a mismatch.
func InterestOverlap(childInterests, rewardInterests []string) float64 {
	if len(childInterests) == 0 || len(rewardInterests) == 0 {
		return 0.5
	}

	set := make(map[string]bool, len(childInterests))
	for _, tag := range childInterests {
		set[tag] = true
	}

	union := len(set)
	shared := 0
	for _, tag := range rewardInterests {
		if set[tag] {
			shared++
			continue
		}
		// Count reward-only tags into the union once each.
		set[tag] = true
		union++
	}

	if union == 0 {
		return 0.5
	}
	return float64(shared) / float64(union)
}

// BudgetFit scores a reward price against the parent cap and the child's
// star balance. Exceeding the cap is a hard zero; otherwise the price is
// converted to stars at pencePerStar and bucketed by ratio to the balance.
func BudgetFit(pricePence *int, maxPricePence *int, childStars, pencePerStar int) float64 {
	if pricePence == nil {
		return 0.5
	}
	price := *pricePence

	if maxPricePence != nil && *maxPricePence > 0 && price > *maxPricePence {
		return 0.0
	}

	if pencePerStar <= 0 {
		pencePerStar = model.DefaultPencePerStar
	}
	requiredStars := float64(price) / float64(pencePerStar)

	if childStars <= 0 {
		return 0.1
	}
	ratio := requiredStars / float64(childStars)

	switch {
	case ratio <= 0.5:
		return 1.0
	case ratio <= 1.0:
		return 0.8
	case ratio <= 1.5:
		return 0.5
	case ratio < 2.0:
		return 0.3
	}
	// Needing double the balance or more is out of reach.
	return 0.1
}

// PopularityScore passes through the stored popularity, clamped to [0, 1].
func PopularityScore(popularity float64) float64 {
	if popularity < 0 {
		return 0
	}
	return math.Min(popularity, 1.0)
}

// Freshness decays exponentially with the item's age in days.
func Freshness(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-days / freshnessHalfLifeDays)
}

// Blocked reports whether the reward is hard-excluded, either by its own
// flag or by the parent's block list.
func Blocked(reward model.RewardItem, prefs model.ParentPreferences) bool {
	if reward.Blocked {
		return true
	}
	for _, id := range prefs.BlockedRewardIDs {
		if id == reward.ID {
			return true
		}
	}
	return false
}

// CategoryAllowed applies the parent's category allow/block lists. A reward
// with no category passes both checks.
func CategoryAllowed(reward model.RewardItem, prefs model.ParentPreferences) bool {
	if reward.Category == "" {
		return true
	}
	if len(prefs.AllowedCategories) > 0 && !contains(prefs.AllowedCategories, reward.Category) {
		return false
	}
	return !contains(prefs.BlockedCategories, reward.Category)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
