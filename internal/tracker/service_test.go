package tracker

import (
	"errors"
	"math"
	"sync"
	"testing"

	"DailySipBot/internal/clock"
	"DailySipBot/internal/models"
	"DailySipBot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordIntake_DayTotalGrowsByAmount(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 10, 0))
	now := at(1, 10, 0)

	before := svc.DayTotal(DateKey(now))
	snap, err := svc.RecordIntake(300, now)
	require.NoError(t, err)

	assert.Equal(t, before+300, svc.DayTotal(DateKey(now)))
	assert.Equal(t, 300, snap.TodayTotalMl)
	assert.Equal(t, 1500, snap.DailyGoalMl)
	assert.Equal(t, 20, snap.GoalPercent)
	assert.Equal(t, []string{AchFirst}, snap.NewlyUnlocked)
	assert.Equal(t, 300, svc.HourTotal("2026-03-01", "10"))
}

func TestRecordIntake_InvalidAmountLeavesStateUnchanged(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 10, 0))
	_, err := svc.RecordIntake(200, at(1, 10, 0))
	require.NoError(t, err)
	before := svc.State()

	for _, amount := range []int{0, -5} {
		_, err := svc.RecordIntake(amount, at(1, 11, 0))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	_, err = svc.RecordCustomIntake(-1, at(1, 11, 0))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, before, svc.State())
}

func TestParseAmount(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-5", "", "  ", "5001", "9223372036854775807"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, raw)
	}
	for raw, want := range map[string]int{"250": 250, " 330 ": 330, "400ml": 400, "150 мл": 150} {
		got, err := ParseAmount(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
}

func TestRecordIntake_RejectsOversizedAmount(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 10, 0))
	_, err := svc.RecordIntake(200, at(1, 10, 0))
	require.NoError(t, err)
	before := svc.State()

	for _, amount := range []int{MaxAmountMl + 1, math.MaxInt} {
		_, err := svc.RecordIntake(amount, at(1, 11, 0))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.RecordCustomIntake(amount, at(1, 11, 0))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, before, svc.State())

	snap, err := svc.RecordIntake(MaxAmountMl, at(1, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 200+MaxAmountMl, snap.TodayTotalMl)
	assert.Equal(t, 100, snap.GoalPercent)
	assert.Equal(t, AllTimeStats{TotalMl: 200 + MaxAmountMl, ActiveDays: 1, AverageMl: 200 + MaxAmountMl}, svc.AllTimeStats())
}

func TestParseGoal(t *testing.T) {
	got, err := ParseGoal("2500 мл")
	require.NoError(t, err)
	assert.Equal(t, 2500, got)
	for _, raw := range []string{"0", "x", "20001"} {
		_, err := ParseGoal(raw)
		assert.ErrorIs(t, err, ErrInvalidSettings, raw)
	}
}

func TestRecordIntake_EarlyBirdUnlocksOnce(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 7, 30))

	snap, err := svc.RecordIntake(200, at(1, 7, 30))
	require.NoError(t, err)
	assert.Equal(t, []string{AchFirst, AchEarlyBird}, snap.NewlyUnlocked)

	snap, err = svc.RecordIntake(200, at(1, 7, 45))
	require.NoError(t, err)
	assert.Empty(t, snap.NewlyUnlocked)

	st := svc.State()
	count := 0
	for _, id := range st.Achievements {
		if id == AchEarlyBird {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRecordCustomIntake_UnlocksCustom(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))
	_, _ = svc.RecordIntake(100, at(1, 12, 0))

	snap, err := svc.RecordCustomIntake(333, at(1, 12, 5))
	require.NoError(t, err)
	assert.Equal(t, []string{AchCustom}, snap.NewlyUnlocked)
	assert.Equal(t, 433, snap.TodayTotalMl)
}

func TestRecordIntake_BottleFill(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))

	snap, err := svc.RecordIntake(750, at(1, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 46, snap.BottleFillPercent)

	snap, err = svc.RecordIntake(750, at(1, 13, 0))
	require.NoError(t, err)
	assert.Equal(t, 70, snap.BottleFillPercent)
	assert.Equal(t, 100, snap.GoalPercent)

	snap, err = svc.RecordIntake(1500, at(1, 14, 0))
	require.NoError(t, err)
	assert.Equal(t, 70, snap.BottleFillPercent)
	assert.Equal(t, 100, snap.GoalPercent)
}

func TestRecordIntake_SaveFailureRollsBack(t *testing.T) {
	base := store.NewDocuments(store.NewMemoryKV(), zap.NewNop(), "")
	docs := &failingDocs{Persistence: base}
	svc, err := NewService(docs, clock.NewFake(at(1, 9, 0)), zap.NewNop())
	require.NoError(t, err)

	_, err = svc.RecordIntake(200, at(1, 9, 0))
	require.NoError(t, err)
	before := svc.State()

	docs.fail = true
	_, err = svc.RecordIntake(500, at(2, 9, 0))
	require.Error(t, err)
	assert.Equal(t, before, svc.State())

	persisted, err := base.LoadState()
	require.NoError(t, err)
	assert.Equal(t, 200, NewAggregator(persisted.History).DayTotal("2026-03-01"))
}

func TestRecordIntake_NotifiesRenderers(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 9, 0))
	r := &recordingRenderer{}
	svc.AddRenderer(r)

	_, err := svc.RecordIntake(250, at(1, 9, 0))
	require.NoError(t, err)
	_, err = svc.RecordIntake(-1, at(1, 9, 0))
	require.Error(t, err)
	require.NoError(t, svc.ClearAll())

	require.Len(t, r.got, 2)
	assert.Equal(t, 250, r.got[0].TodayTotalMl)
	assert.True(t, r.got[1].Cleared)
	assert.Equal(t, 0, r.got[1].TodayTotalMl)
}

func TestRecordIntake_PersistsAcrossRestart(t *testing.T) {
	kv := store.NewMemoryKV()
	docs := store.NewDocuments(kv, zap.NewNop(), "")
	svc, err := NewService(docs, clock.NewFake(at(1, 9, 0)), zap.NewNop())
	require.NoError(t, err)
	_, err = svc.RecordIntake(400, at(1, 21, 0))
	require.NoError(t, err)
	_, err = svc.RecordIntake(400, at(2, 22, 0))
	require.NoError(t, err)

	restarted, err := NewService(store.NewDocuments(kv, zap.NewNop(), ""), clock.NewFake(at(1, 9, 0)), zap.NewNop())
	require.NoError(t, err)
	st := restarted.State()
	assert.Equal(t, 2, st.Streak)
	assert.Equal(t, []string{AchFirst, AchNightOwl}, st.Achievements)
	assert.Equal(t, 400, restarted.DayTotal("2026-03-02"))
}

func TestClearAll(t *testing.T) {
	svc, docs, _ := newServiceForTest(t, at(1, 9, 0))
	_, _ = svc.RecordIntake(2000, at(1, 9, 0))
	require.NoError(t, svc.ClearAll())

	st := svc.State()
	assert.Empty(t, st.History)
	assert.Zero(t, st.Streak)
	assert.Nil(t, st.BestDay)
	assert.Empty(t, st.Achievements)

	persisted, err := docs.LoadState()
	require.NoError(t, err)
	assert.Empty(t, persisted.History)
	assert.Nil(t, persisted.BestDay)
}

func TestAllTimeStats_WithEmptyBucketDay(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Put(store.KeyData, []byte(`{
		"history": {
			"2026-03-01": {"09": [300]},
			"2026-03-02": {"10": []},
			"2026-03-03": {"12": [500, 200]}
		},
		"streak": 1, "bestDay": null, "achievements": ["first"]
	}`)))
	svc, err := NewService(store.NewDocuments(kv, zap.NewNop(), ""), clock.NewFake(at(1, 9, 0)), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, AllTimeStats{TotalMl: 1000, ActiveDays: 2, AverageMl: 500}, svc.AllTimeStats())
}

func TestLoadedMalformedKeysStayOutOfAggregates(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Put(store.KeyData, []byte(`{
		"history": {
			"2026-03-01": {"09": [200]},
			"garbage": {"99": [300]}
		},
		"streak": 1, "bestDay": null, "achievements": []
	}`)))
	svc, err := NewService(store.NewDocuments(kv, zap.NewNop(), ""), clock.NewFake(at(1, 9, 0)), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []DayPoint{{Date: "2026-03-01", TotalMl: 200}}, svc.WeeklySeries(0, at(1, 12, 0)))
	assert.Equal(t, AllTimeStats{TotalMl: 200, ActiveDays: 1, AverageMl: 200}, svc.AllTimeStats())
}

func TestWeeklySeries_EmptyHistory(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(10, 12, 0))
	series := svc.WeeklySeries(0, at(10, 12, 0))
	require.Len(t, series, 7)
	assert.Equal(t, "2026-03-04", series[0].Date)
	assert.Equal(t, "2026-03-10", series[6].Date)
	for _, p := range series {
		assert.Zero(t, p.TotalMl)
	}
}

func TestWeeklySeries_KeepsLastMaxDays(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))
	for day := 1; day <= 5; day++ {
		_, err := svc.RecordIntake(day*100, at(day, 12, 0))
		require.NoError(t, err)
	}
	series := svc.WeeklySeries(3, at(5, 12, 0))
	assert.Equal(t, []DayPoint{
		{Date: "2026-03-03", TotalMl: 300},
		{Date: "2026-03-04", TotalMl: 400},
		{Date: "2026-03-05", TotalMl: 500},
	}, series)
}

func TestAchievementsView(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))
	_, _ = svc.RecordIntake(100, at(1, 12, 0))
	views := svc.Achievements()
	require.Len(t, views, len(Catalog))
	assert.Equal(t, AchFirst, views[0].ID)
	assert.True(t, views[0].Unlocked)
	assert.False(t, views[1].Unlocked)
}

func TestSaveSettings_Validation(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))
	def := svc.Settings()

	bad := []models.Settings{
		{DailyGoalMl: 0, ReminderIntervalMinutes: 60},
		{DailyGoalMl: 1500, ReminderIntervalMinutes: 0},
		{DailyGoalMl: 1500, ReminderIntervalMinutes: 60, Theme: "neon"},
		{DailyGoalMl: MaxDailyGoalMl + 1, ReminderIntervalMinutes: 60},
	}
	for _, s := range bad {
		_, err := svc.SaveSettings(s)
		assert.True(t, errors.Is(err, ErrInvalidSettings))
	}
	assert.Equal(t, def, svc.Settings())
}

func TestSaveSettings_AffectsLaterComputations(t *testing.T) {
	svc, docs, _ := newServiceForTest(t, at(1, 12, 0))
	var notified []models.Settings
	svc.OnSettingsChange(func(s models.Settings) { notified = append(notified, s) })

	saved, err := svc.UpdateSettings(func(s *models.Settings) {
		s.DailyGoalMl = 1000
		s.Theme = ""
	})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDefault, saved.Theme)
	assert.Equal(t, "Тест", saved.DisplayName)
	require.Len(t, notified, 1)

	snap, err := svc.RecordIntake(500, at(1, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 50, snap.GoalPercent)

	persisted, err := docs.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 1000, persisted.DailyGoalMl)
}

func TestUpdateSettings_ConcurrentUpdatesAreNotLost(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))
	start := svc.Settings().DailyGoalMl

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateSettings(func(s *models.Settings) { s.DailyGoalMl++ })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, start+workers, svc.Settings().DailyGoalMl)
}

func TestReminderMessage(t *testing.T) {
	svc, _, _ := newServiceForTest(t, at(1, 12, 0))
	msg, ok := svc.ReminderMessage(at(1, 12, 0))
	require.True(t, ok)
	assert.Contains(t, msg, "Тест")
	assert.Contains(t, msg, "1500 мл")

	_, _ = svc.RecordIntake(1000, at(1, 12, 0))
	msg, ok = svc.ReminderMessage(at(1, 13, 0))
	require.True(t, ok)
	assert.Contains(t, msg, "500 мл")

	_, _ = svc.RecordIntake(500, at(1, 13, 0))
	_, ok = svc.ReminderMessage(at(1, 14, 0))
	assert.False(t, ok)
}

func TestTipFor(t *testing.T) {
	day1 := TipFor(at(1, 9, 0), DefaultTips)
	assert.Equal(t, day1, TipFor(at(1, 23, 0), DefaultTips))
	assert.NotEqual(t, day1, TipFor(at(2, 9, 0), DefaultTips))
	assert.Equal(t, TipFor(at(1, 9, 0), DefaultTips), TipFor(at(1, 9, 0), nil))
}
