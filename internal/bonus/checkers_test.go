package bonus

import (
	"math/rand"
	"testing"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

var (
	sunday    = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	monday    = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
)

func enabled(pence, stars int) model.BonusSetting {
	return model.BonusSetting{Enabled: true, Mode: model.ModeBoth, MoneyPence: pence, Stars: stars}
}

func testChild() model.Child {
	june := 6
	return model.Child{ID: 1, Name: "Ada", AgeGroup: model.AgeTween, BirthMonth: &june}
}

func TestTargetWeekStart(t *testing.T) {
	weekOfJune9 := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	// Sunday evaluates the week that is ending.
	if got := TargetWeekStart(sunday); got == nil || !got.Equal(weekOfJune9) {
		t.Errorf("Sunday target = %v, want %s", got, weekOfJune9)
	}
	// Monday evaluates the week that just ended.
	if got := TargetWeekStart(monday); got == nil || !got.Equal(weekOfJune9) {
		t.Errorf("Monday target = %v, want %s", got, weekOfJune9)
	}
	// Mid-week the perfect week is undecidable.
	for d := 17; d <= 21; d++ {
		now := time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
		if got := TargetWeekStart(now); got != nil {
			t.Errorf("TargetWeekStart(%s %s) = %v, want nil", now.Weekday(), now.Format("2006-01-02"), got)
		}
	}
}

func TestAchievementChecker(t *testing.T) {
	cfg := model.BonusConfig{
		Achievement:               enabled(100, 5),
		AchievementChoresRequired: 5,
	}
	checker := AchievementChecker{}

	tests := []struct {
		total int
		award bool
	}{
		{0, false}, {1, false}, {4, false},
		{5, true}, {6, false}, {9, false},
		{10, true}, {15, true},
	}
	for _, tt := range tests {
		res := checker.Check(cfg, testChild(), History{TotalApproved: tt.total}, wednesday)
		if res.ShouldAward != tt.award {
			t.Errorf("total %d: ShouldAward = %v, want %v (%s)", tt.total, res.ShouldAward, tt.award, res.Reason)
		}
	}

	res := checker.Check(cfg, testChild(), History{TotalApproved: 10}, wednesday)
	if res.DedupKey != "achievement:1:10" {
		t.Errorf("dedup key = %q, want achievement:1:10", res.DedupKey)
	}
	if res.MoneyPence != 100 || res.Stars != 5 {
		t.Errorf("amounts = (%d, %d), want (100, 5)", res.MoneyPence, res.Stars)
	}

	if res := checker.Check(model.BonusConfig{}, testChild(), History{TotalApproved: 5}, wednesday); res.ShouldAward {
		t.Error("disabled config must never award")
	}
	noSize := model.BonusConfig{Achievement: enabled(100, 5)}
	if res := checker.Check(noSize, testChild(), History{TotalApproved: 5}, wednesday); res.ShouldAward {
		t.Error("unconfigured milestone size must never award")
	}
}

func TestBirthdayChecker(t *testing.T) {
	cfg := model.BonusConfig{Birthday: enabled(500, 0)}
	checker := BirthdayChecker{}

	res := checker.Check(cfg, testChild(), History{}, wednesday) // June
	if !res.ShouldAward {
		t.Fatalf("expected award in birth month: %s", res.Reason)
	}
	if res.DedupKey != "birthday:1:2025-06" {
		t.Errorf("dedup key = %q, want birthday:1:2025-06", res.DedupKey)
	}

	july := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)
	if res := checker.Check(cfg, testChild(), History{}, july); res.ShouldAward {
		t.Error("no award outside the birth month")
	}

	if res := checker.Check(cfg, model.Child{ID: 2}, History{}, wednesday); res.ShouldAward {
		t.Error("no award without a recorded birth month")
	}

	if res := checker.Check(model.BonusConfig{}, testChild(), History{}, wednesday); res.ShouldAward {
		t.Error("disabled config must never award")
	}
}

func TestPerfectWeekChecker(t *testing.T) {
	cfg := model.BonusConfig{PerfectWeek: enabled(0, 20)}
	checker := PerfectWeekChecker{}
	weekOfJune9 := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	perfect := History{Week: WeekSummary{Start: weekOfJune9, DailyAssignments: 3, CompletedAssignments: 3}}
	res := checker.Check(cfg, testChild(), perfect, sunday)
	if !res.ShouldAward {
		t.Fatalf("expected award for perfect week: %s", res.Reason)
	}
	if res.DedupKey != "perfect_week:1:2025-06-09" {
		t.Errorf("dedup key = %q, want perfect_week:1:2025-06-09", res.DedupKey)
	}

	// Monday settles the week that just ended.
	if res := checker.Check(cfg, testChild(), perfect, monday); !res.ShouldAward {
		t.Errorf("expected Monday settlement: %s", res.Reason)
	}

	// Mid-week never settles, even with a perfect summary.
	if res := checker.Check(cfg, testChild(), perfect, wednesday); res.ShouldAward {
		t.Error("mid-week evaluation must not award")
	}

	missed := History{Week: WeekSummary{Start: weekOfJune9, DailyAssignments: 3, CompletedAssignments: 2}}
	if res := checker.Check(cfg, testChild(), missed, sunday); res.ShouldAward {
		t.Error("incomplete week must not award")
	}

	empty := History{Week: WeekSummary{Start: weekOfJune9}}
	if res := checker.Check(cfg, testChild(), empty, sunday); res.ShouldAward {
		t.Error("a week with no daily assignments is not perfect")
	}

	if res := checker.Check(model.BonusConfig{}, testChild(), perfect, sunday); res.ShouldAward {
		t.Error("disabled config must never award")
	}
}

func TestMonthlyChecker(t *testing.T) {
	cfg := model.BonusConfig{Monthly: enabled(200, 10)}
	checker := MonthlyChecker{}

	tests := []struct {
		count int
		award bool
	}{
		{0, false}, {9, false},
		{10, true}, {11, false},
		{24, false}, {25, true}, {26, false},
		{50, true}, {100, true}, {101, false},
	}
	for _, tt := range tests {
		res := checker.Check(cfg, testChild(), History{MonthApproved: tt.count}, wednesday)
		if res.ShouldAward != tt.award {
			t.Errorf("count %d: ShouldAward = %v, want %v", tt.count, res.ShouldAward, tt.award)
		}
	}

	res := checker.Check(cfg, testChild(), History{MonthApproved: 25}, wednesday)
	if res.DedupKey != "monthly:1:2025-06:25" {
		t.Errorf("dedup key = %q, want monthly:1:2025-06:25", res.DedupKey)
	}

	if res := checker.Check(model.BonusConfig{}, testChild(), History{MonthApproved: 25}, wednesday); res.ShouldAward {
		t.Error("disabled config must never award")
	}
}

func TestSurpriseChecker(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	certain := model.BonusConfig{Surprise: enabled(50, 1), SurpriseChance: 100}
	checker := NewSurpriseChecker(rng)
	res := checker.Check(certain, testChild(), History{}, wednesday)
	if !res.ShouldAward {
		t.Fatalf("100%% chance must always award: %s", res.Reason)
	}
	if res.DedupKey != "" {
		t.Errorf("surprise awards carry no dedup key, got %q", res.DedupKey)
	}

	never := model.BonusConfig{Surprise: enabled(50, 1), SurpriseChance: 0}
	for i := 0; i < 50; i++ {
		if res := checker.Check(never, testChild(), History{}, wednesday); res.ShouldAward {
			t.Fatal("0% chance must never award")
		}
	}

	if res := checker.Check(model.BonusConfig{SurpriseChance: 100}, testChild(), History{}, wednesday); res.ShouldAward {
		t.Error("disabled config must never award")
	}
}
