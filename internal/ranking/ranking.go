// Package ranking scores and orders the reward catalog for a single child
// under parent-imposed constraints. Scoring is pure: identical inputs always
// produce identical ordering, so results are safe to cache and to test.
package ranking

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// explorationPopularityCeiling bounds the pool Exploration samples from.
const explorationPopularityCeiling = 0.3

// Context carries everything the scorer needs beyond the reward itself.
type Context struct {
	Child        model.Child
	ChildStars   int
	Prefs        model.ParentPreferences
	Weights      model.RankingWeights
	PencePerStar int
	Now          time.Time
}

// Score computes the weighted relevance score for one reward. Blocked
// rewards and rewards failing the category filter score -Inf and are
// excluded from ranking entirely.
func Score(reward model.RewardItem, ctx Context) float64 {
	if Blocked(reward, ctx.Prefs) {
		return math.Inf(-1)
	}
	if !CategoryAllowed(reward, ctx.Prefs) {
		return math.Inf(-1)
	}

	w := ctx.Weights
	return w.Age*AgeMatch(ctx.Child.AgeGroup, reward.AgeGroup) +
		w.Interest*InterestOverlap(ctx.Child.Interests, reward.Interests) +
		w.Budget*BudgetFit(reward.PricePence, ctx.Prefs.MaxPricePence, ctx.ChildStars, ctx.PencePerStar) +
		w.Popularity*PopularityScore(reward.Popularity) +
		w.Freshness*Freshness(reward.CreatedAt, ctx.Now)
}

// Rank scores every candidate, drops excluded items, and returns the rest in
// descending score order. The sort is stable so equal scores keep their input
// order. Parent-pinned rewards are hoisted to the front, keeping their
// relative ranked order; pinning never overrides a block or category filter.
func Rank(rewards []model.RewardItem, ctx Context) []model.RewardItem {
	type scored struct {
		reward model.RewardItem
		score  float64
	}

	candidates := make([]scored, 0, len(rewards))
	for _, r := range rewards {
		s := Score(r, ctx)
		if math.IsInf(s, -1) {
			continue
		}
		candidates = append(candidates, scored{reward: r, score: s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	pinned := make(map[int64]bool, len(ctx.Prefs.PinnedRewardIDs))
	for _, id := range ctx.Prefs.PinnedRewardIDs {
		pinned[id] = true
	}

	ordered := make([]model.RewardItem, 0, len(candidates))
	if len(pinned) > 0 {
		for _, c := range candidates {
			if pinned[c.reward.ID] {
				ordered = append(ordered, c.reward)
			}
		}
	}
	for _, c := range candidates {
		if !pinned[c.reward.ID] {
			ordered = append(ordered, c.reward)
		}
	}
	return ordered
}

// Exploration returns up to count randomly chosen low-popularity, unblocked
// rewards, giving new catalog items shelf exposure the relevance ranking
// would not. The random source is injected so tests can fix the sample.
func Exploration(rewards []model.RewardItem, count int, rng *rand.Rand) []model.RewardItem {
	if count <= 0 {
		return nil
	}

	pool := make([]model.RewardItem, 0, len(rewards))
	for _, r := range rewards {
		if r.Blocked {
			continue
		}
		if r.Popularity < explorationPopularityCeiling {
			pool = append(pool, r)
		}
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}
