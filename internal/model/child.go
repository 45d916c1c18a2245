package model

import "time"

// AgeGroup tags a child or a catalog item with a coarse age band.
type AgeGroup string

const (
	AgeToddler    AgeGroup = "toddler_2_4"
	AgeKid        AgeGroup = "kid_5_8"
	AgeTween      AgeGroup = "tween_9_11"
	AgeTeen       AgeGroup = "teen_12_15"
	AgeYoungAdult AgeGroup = "young_adult_16_18"
	AgeAll        AgeGroup = "all_ages"
)

type Child struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	AgeGroup   AgeGroup  `json:"age_group"`
	Interests  []string  `json:"interests"`
	BirthMonth *int      `json:"birth_month"` // 1-12, nil if not recorded
	BirthYear  *int      `json:"birth_year"`
	CreatedAt  time.Time `json:"created_at"`
}
