package store

import (
	"database/sql"
	"fmt"

	"github.com/hollyoak/starjar/internal/model"
)

// SettingsStore reads and writes the family's parent preferences and bonus
// configuration. Both live in single-row tables; a missing bonus config row
// yields the zero config, which disables every bonus.
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Preferences() (model.ParentPreferences, error) {
	var p model.ParentPreferences
	var maxPrice sql.NullInt64
	var allowed, blocked, blockedIDs, pinnedIDs string

	err := s.db.QueryRow(
		`SELECT max_price_pence, allowed_categories, blocked_categories, blocked_reward_ids, pinned_reward_ids, pence_per_star
		 FROM parent_preferences WHERE id = 1`,
	).Scan(&maxPrice, &allowed, &blocked, &blockedIDs, &pinnedIDs, &p.PencePerStar)
	if err == sql.ErrNoRows {
		return model.ParentPreferences{PencePerStar: model.DefaultPencePerStar}, nil
	}
	if err != nil {
		return model.ParentPreferences{}, fmt.Errorf("get preferences: %w", err)
	}

	if maxPrice.Valid {
		mp := int(maxPrice.Int64)
		p.MaxPricePence = &mp
	}
	p.AllowedCategories = decodeStrings(allowed)
	p.BlockedCategories = decodeStrings(blocked)
	p.BlockedRewardIDs = decodeIDs(blockedIDs)
	p.PinnedRewardIDs = decodeIDs(pinnedIDs)
	if p.PencePerStar <= 0 {
		p.PencePerStar = model.DefaultPencePerStar
	}
	return p, nil
}

func (s *SettingsStore) SavePreferences(p model.ParentPreferences) error {
	var maxPrice sql.NullInt64
	if p.MaxPricePence != nil {
		maxPrice = sql.NullInt64{Int64: int64(*p.MaxPricePence), Valid: true}
	}
	pencePerStar := p.PencePerStar
	if pencePerStar <= 0 {
		pencePerStar = model.DefaultPencePerStar
	}

	_, err := s.db.Exec(
		`UPDATE parent_preferences
		 SET max_price_pence = ?, allowed_categories = ?, blocked_categories = ?, blocked_reward_ids = ?, pinned_reward_ids = ?, pence_per_star = ?
		 WHERE id = 1`,
		maxPrice, encodeStrings(p.AllowedCategories), encodeStrings(p.BlockedCategories),
		encodeIDs(p.BlockedRewardIDs), encodeIDs(p.PinnedRewardIDs), pencePerStar,
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *SettingsStore) BonusConfig() (model.BonusConfig, error) {
	var cfg model.BonusConfig
	var achMode, bdayMode, pwMode, monMode, surMode string
	var achEnabled, bdayEnabled, pwEnabled, monEnabled, surEnabled int

	err := s.db.QueryRow(
		`SELECT achievement_enabled, achievement_mode, achievement_money_pence, achievement_stars, achievement_chores_required,
		        birthday_enabled, birthday_mode, birthday_money_pence, birthday_stars,
		        perfect_week_enabled, perfect_week_mode, perfect_week_money_pence, perfect_week_stars,
		        monthly_enabled, monthly_mode, monthly_money_pence, monthly_stars,
		        surprise_enabled, surprise_mode, surprise_money_pence, surprise_stars, surprise_chance
		 FROM bonus_config WHERE id = 1`,
	).Scan(
		&achEnabled, &achMode, &cfg.Achievement.MoneyPence, &cfg.Achievement.Stars, &cfg.AchievementChoresRequired,
		&bdayEnabled, &bdayMode, &cfg.Birthday.MoneyPence, &cfg.Birthday.Stars,
		&pwEnabled, &pwMode, &cfg.PerfectWeek.MoneyPence, &cfg.PerfectWeek.Stars,
		&monEnabled, &monMode, &cfg.Monthly.MoneyPence, &cfg.Monthly.Stars,
		&surEnabled, &surMode, &cfg.Surprise.MoneyPence, &cfg.Surprise.Stars, &cfg.SurpriseChance,
	)
	if err == sql.ErrNoRows {
		// No config means no bonuses. Never fail open on money.
		return model.BonusConfig{}, nil
	}
	if err != nil {
		return model.BonusConfig{}, fmt.Errorf("get bonus config: %w", err)
	}

	cfg.Achievement.Enabled = achEnabled != 0
	cfg.Achievement.Mode = model.RewardMode(achMode)
	cfg.Birthday.Enabled = bdayEnabled != 0
	cfg.Birthday.Mode = model.RewardMode(bdayMode)
	cfg.PerfectWeek.Enabled = pwEnabled != 0
	cfg.PerfectWeek.Mode = model.RewardMode(pwMode)
	cfg.Monthly.Enabled = monEnabled != 0
	cfg.Monthly.Mode = model.RewardMode(monMode)
	cfg.Surprise.Enabled = surEnabled != 0
	cfg.Surprise.Mode = model.RewardMode(surMode)
	return cfg, nil
}

func (s *SettingsStore) SaveBonusConfig(cfg model.BonusConfig) error {
	_, err := s.db.Exec(
		`UPDATE bonus_config
		 SET achievement_enabled = ?, achievement_mode = ?, achievement_money_pence = ?, achievement_stars = ?, achievement_chores_required = ?,
		     birthday_enabled = ?, birthday_mode = ?, birthday_money_pence = ?, birthday_stars = ?,
		     perfect_week_enabled = ?, perfect_week_mode = ?, perfect_week_money_pence = ?, perfect_week_stars = ?,
		     monthly_enabled = ?, monthly_mode = ?, monthly_money_pence = ?, monthly_stars = ?,
		     surprise_enabled = ?, surprise_mode = ?, surprise_money_pence = ?, surprise_stars = ?, surprise_chance = ?
		 WHERE id = 1`,
		boolInt(cfg.Achievement.Enabled), string(cfg.Achievement.Mode), cfg.Achievement.MoneyPence, cfg.Achievement.Stars, cfg.AchievementChoresRequired,
		boolInt(cfg.Birthday.Enabled), string(cfg.Birthday.Mode), cfg.Birthday.MoneyPence, cfg.Birthday.Stars,
		boolInt(cfg.PerfectWeek.Enabled), string(cfg.PerfectWeek.Mode), cfg.PerfectWeek.MoneyPence, cfg.PerfectWeek.Stars,
		boolInt(cfg.Monthly.Enabled), string(cfg.Monthly.Mode), cfg.Monthly.MoneyPence, cfg.Monthly.Stars,
		boolInt(cfg.Surprise.Enabled), string(cfg.Surprise.Mode), cfg.Surprise.MoneyPence, cfg.Surprise.Stars, cfg.SurpriseChance,
	)
	if err != nil {
		return fmt.Errorf("save bonus config: %w", err)
	}
	return nil
}
