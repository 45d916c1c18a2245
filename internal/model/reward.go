package model

import "time"

type RewardItem struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AgeGroup     AgeGroup   `json:"age_group"`
	Interests    []string   `json:"interests"`
	Category     string     `json:"category"`
	PricePence   *int       `json:"price_pence"` // nil = no price recorded
	Popularity   float64    `json:"popularity"`  // pre-normalized to [0,1]
	Featured     bool       `json:"featured"`
	Blocked      bool       `json:"blocked"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
}

// ParentPreferences holds the parent-imposed shop constraints for the family.
type ParentPreferences struct {
	MaxPricePence     *int     `json:"max_price_pence"` // nil = no cap
	AllowedCategories []string `json:"allowed_categories"`
	BlockedCategories []string `json:"blocked_categories"`
	BlockedRewardIDs  []int64  `json:"blocked_reward_ids"`
	PinnedRewardIDs   []int64  `json:"pinned_reward_ids"`
	PencePerStar      int      `json:"pence_per_star"`
}

// RankingWeights are the relative weights for the five scoring factors.
// Callers supplying custom weights accept relative, not absolute, scores.
type RankingWeights struct {
	Age        float64 `json:"age"`
	Interest   float64 `json:"interest"`
	Budget     float64 `json:"budget"`
	Popularity float64 `json:"popularity"`
	Freshness  float64 `json:"freshness"`
}

// DefaultWeights returns the reference weight mix.
func DefaultWeights() RankingWeights {
	return RankingWeights{
		Age:        0.30,
		Interest:   0.25,
		Budget:     0.20,
		Popularity: 0.15,
		Freshness:  0.10,
	}
}

// DefaultPencePerStar is the star-conversion rate used when the family has
// not configured one: 10 minor currency units buy one star.
const DefaultPencePerStar = 10
