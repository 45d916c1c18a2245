package ranking

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

func testContext() Context {
	return Context{
		Child: model.Child{
			ID:        1,
			Name:      "Ada",
			AgeGroup:  model.AgeTween,
			Interests: []string{"lego", "space"},
		},
		ChildStars:   100,
		Prefs:        model.ParentPreferences{},
		Weights:      model.DefaultWeights(),
		PencePerStar: model.DefaultPencePerStar,
		Now:          time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC),
	}
}

func reward(id int64, title string) model.RewardItem {
	return model.RewardItem{
		ID:        id,
		Title:     title,
		AgeGroup:  model.AgeTween,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestScoreExcludesBlocked(t *testing.T) {
	ctx := testContext()

	r := reward(1, "lego set")
	r.Blocked = true
	if s := Score(r, ctx); !math.IsInf(s, -1) {
		t.Errorf("blocked reward should score -Inf, got %v", s)
	}

	ctx.Prefs.BlockedRewardIDs = []int64{2}
	if s := Score(reward(2, "water gun"), ctx); !math.IsInf(s, -1) {
		t.Errorf("parent-blocked reward should score -Inf, got %v", s)
	}

	ctx.Prefs.AllowedCategories = []string{"books"}
	r = reward(3, "game")
	r.Category = "screen_time"
	if s := Score(r, ctx); !math.IsInf(s, -1) {
		t.Errorf("category-filtered reward should score -Inf, got %v", s)
	}
}

func TestScoreOrdersByRelevance(t *testing.T) {
	ctx := testContext()

	match := reward(1, "lego rocket")
	match.Interests = []string{"lego", "space"}
	match.Popularity = 0.9

	miss := reward(2, "knitting kit")
	miss.Interests = []string{"crafts"}
	miss.AgeGroup = model.AgeYoungAdult
	miss.Popularity = 0.1

	if Score(match, ctx) <= Score(miss, ctx) {
		t.Error("strong match should outscore weak match")
	}
}

func TestRankDropsExcludedAndSortsDescending(t *testing.T) {
	ctx := testContext()

	blocked := reward(1, "blocked")
	blocked.Blocked = true
	weak := reward(2, "weak")
	weak.AgeGroup = model.AgeYoungAdult
	strong := reward(3, "strong")
	strong.Interests = []string{"lego", "space"}
	strong.Popularity = 0.8

	ranked := Rank([]model.RewardItem{blocked, weak, strong}, ctx)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked items, got %d", len(ranked))
	}
	if ranked[0].ID != 3 || ranked[1].ID != 2 {
		t.Errorf("expected order [3 2], got [%d %d]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankIsDeterministic(t *testing.T) {
	ctx := testContext()

	items := make([]model.RewardItem, 0, 20)
	for i := int64(1); i <= 20; i++ {
		r := reward(i, "item")
		r.Popularity = float64(i%7) / 10
		if i%3 == 0 {
			r.Interests = []string{"lego"}
		}
		items = append(items, r)
	}

	first := Rank(items, ctx)
	second := Rank(items, ctx)
	if len(first) != len(second) {
		t.Fatalf("rank lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("rank order differs at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestRankStableTieOrder(t *testing.T) {
	ctx := testContext()

	// Identical items score identically; stable sort keeps input order.
	a := reward(1, "a")
	b := reward(2, "b")
	ranked := Rank([]model.RewardItem{a, b}, ctx)
	if ranked[0].ID != 1 || ranked[1].ID != 2 {
		t.Errorf("equal scores must keep input order, got [%d %d]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankHoistsPinned(t *testing.T) {
	ctx := testContext()
	ctx.Prefs.PinnedRewardIDs = []int64{5}

	strong := reward(1, "strong")
	strong.Interests = []string{"lego", "space"}
	strong.Popularity = 1.0
	pinned := reward(5, "pinned")
	pinned.AgeGroup = model.AgeYoungAdult // would rank last on merit

	ranked := Rank([]model.RewardItem{strong, pinned}, ctx)
	if ranked[0].ID != 5 {
		t.Errorf("pinned reward should rank first, got %d", ranked[0].ID)
	}

	// Pinning never overrides a block.
	pinned.Blocked = true
	ranked = Rank([]model.RewardItem{strong, pinned}, ctx)
	if len(ranked) != 1 || ranked[0].ID != 1 {
		t.Errorf("blocked pinned reward must stay excluded, got %v", ranked)
	}
}

func TestExploration(t *testing.T) {
	items := make([]model.RewardItem, 0, 10)
	for i := int64(1); i <= 10; i++ {
		r := reward(i, "item")
		if i <= 6 {
			r.Popularity = 0.1 // explorable
		} else {
			r.Popularity = 0.8
		}
		items = append(items, r)
	}
	items[0].Blocked = true

	rng := rand.New(rand.NewSource(42))
	picks := Exploration(items, 3, rng)
	if len(picks) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(picks))
	}
	for _, p := range picks {
		if p.Blocked {
			t.Errorf("exploration must never surface blocked item %d", p.ID)
		}
		if p.Popularity >= 0.3 {
			t.Errorf("exploration pick %d has popularity %v, want < 0.3", p.ID, p.Popularity)
		}
	}

	// Same seed, same sample.
	again := Exploration(items, 3, rand.New(rand.NewSource(42)))
	for i := range picks {
		if picks[i].ID != again[i].ID {
			t.Fatalf("same seed should give same picks: %d vs %d", picks[i].ID, again[i].ID)
		}
	}

	// Pool smaller than count returns the whole pool.
	few := Exploration(items[:3], 5, rng)
	if len(few) != 2 { // item 1 blocked, items 2-3 explorable
		t.Errorf("expected 2 picks from small pool, got %d", len(few))
	}

	if got := Exploration(items, 0, rng); got != nil {
		t.Errorf("count 0 should return nil, got %v", got)
	}
}
