package model

// BonusType identifies one of the five bonus checkers.
type BonusType string

const (
	BonusAchievement BonusType = "achievement"
	BonusBirthday    BonusType = "birthday"
	BonusPerfectWeek BonusType = "perfect_week"
	BonusMonthly     BonusType = "monthly"
	BonusSurprise    BonusType = "surprise"
)

// RewardMode selects which amount fields a bonus pays out.
type RewardMode string

const (
	ModeMoney RewardMode = "money"
	ModeStars RewardMode = "stars"
	ModeBoth  RewardMode = "both"
)

// BonusSetting configures a single bonus type. A disabled setting never
// produces an award.
type BonusSetting struct {
	Enabled    bool       `json:"enabled"`
	Mode       RewardMode `json:"mode"`
	MoneyPence int        `json:"money_pence"`
	Stars      int        `json:"stars"`
}

// Amounts applies the reward mode to the configured amounts.
func (s BonusSetting) Amounts() (pence, stars int) {
	switch s.Mode {
	case ModeMoney:
		return s.MoneyPence, 0
	case ModeStars:
		return 0, s.Stars
	case ModeBoth:
		return s.MoneyPence, s.Stars
	}
	return 0, 0
}

// BonusConfig is the family's full bonus configuration. The zero value has
// every bonus disabled, so a missing config row fails closed.
type BonusConfig struct {
	Achievement               BonusSetting `json:"achievement"`
	AchievementChoresRequired int          `json:"achievement_chores_required"`
	Birthday                  BonusSetting `json:"birthday"`
	PerfectWeek               BonusSetting `json:"perfect_week"`
	Monthly                   BonusSetting `json:"monthly"`
	Surprise                  BonusSetting `json:"surprise"`
	SurpriseChance            int          `json:"surprise_chance"` // percent, 1-100
}

// BonusResult is the decision a checker produces for one completion event.
// DedupKey identifies the eligibility window; an empty key means the award
// is not deduplicated (each event is an independent trial).
type BonusResult struct {
	Type        BonusType `json:"type"`
	ShouldAward bool      `json:"should_award"`
	MoneyPence  int       `json:"money_pence"`
	Stars       int       `json:"stars"`
	Reason      string    `json:"reason"`
	DedupKey    string    `json:"dedup_key,omitempty"`
}
