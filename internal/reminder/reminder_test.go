package reminder

import (
	"errors"
	"testing"
	"time"

	"DailySipBot/internal/clock"
	"DailySipBot/internal/models"
	"DailySipBot/internal/store"
	"DailySipBot/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureNotifier struct {
	sent []string
	err  error
}

func (c *captureNotifier) Notify(text string) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, text)
	return nil
}

func newTracker(t *testing.T, now time.Time) *tracker.Service {
	t.Helper()
	docs := store.NewDocuments(store.NewMemoryKV(), zap.NewNop(), "Маша")
	svc, err := tracker.NewService(docs, clock.NewFake(now), zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestReschedule_ReplacesPreviousEntry(t *testing.T) {
	s := New(newTracker(t, time.Now()), &captureNotifier{}, zap.NewNop())
	settings := models.DefaultSettings("")

	settings.ReminderIntervalMinutes = 30
	require.NoError(t, s.Reschedule(settings))
	settings.ReminderIntervalMinutes = 90
	require.NoError(t, s.Reschedule(settings))

	assert.Equal(t, 1, s.Scheduled())
	from := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next, ok := s.Next(from)
	require.True(t, ok)
	assert.Equal(t, from.Add(90*time.Minute), next)
}

func TestReschedule_DisabledRemovesEntry(t *testing.T) {
	s := New(newTracker(t, time.Now()), &captureNotifier{}, zap.NewNop())
	settings := models.DefaultSettings("")
	require.NoError(t, s.Reschedule(settings))
	require.Equal(t, 1, s.Scheduled())

	settings.ReminderEnabled = false
	require.NoError(t, s.Reschedule(settings))
	assert.Equal(t, 0, s.Scheduled())
	_, ok := s.Next(time.Now())
	assert.False(t, ok)
}

func TestReschedule_RejectsNonPositiveInterval(t *testing.T) {
	s := New(newTracker(t, time.Now()), &captureNotifier{}, zap.NewNop())
	settings := models.DefaultSettings("")
	settings.ReminderIntervalMinutes = 0
	assert.Error(t, s.Reschedule(settings))
	assert.Equal(t, 0, s.Scheduled())
}

func TestTick_SendsOnlyWhileBelowGoal(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTracker(t, now)
	n := &captureNotifier{}
	s := New(svc, n, zap.NewNop())

	s.Tick()
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "Маша")
	assert.Contains(t, n.sent[0], "1500 мл")

	_, err := svc.RecordIntake(1500, now)
	require.NoError(t, err)
	s.Tick()
	assert.Len(t, n.sent, 1)
}

func TestTick_DoesNotMutateState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTracker(t, now)
	before := svc.State()
	s := New(svc, &captureNotifier{err: errors.New("telegram down")}, zap.NewNop())
	s.Tick()
	assert.Equal(t, before, svc.State())
}

func TestOnSettingsChange_FollowsTrackerSaves(t *testing.T) {
	svc := newTracker(t, time.Now())
	s := New(svc, &captureNotifier{}, zap.NewNop())
	svc.OnSettingsChange(s.OnSettingsChange)

	_, err := svc.UpdateSettings(func(st *models.Settings) {
		st.ReminderEnabled = true
		st.ReminderIntervalMinutes = 15
	})
	require.NoError(t, err)
	from := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next, ok := s.Next(from)
	require.True(t, ok)
	assert.Equal(t, from.Add(15*time.Minute), next)

	_, err = svc.UpdateSettings(func(st *models.Settings) { st.ReminderEnabled = false })
	require.NoError(t, err)
	assert.Equal(t, 0, s.Scheduled())
}

func TestAddWeeklySummary_SurvivesReschedule(t *testing.T) {
	s := New(newTracker(t, time.Now()), &captureNotifier{}, zap.NewNop())
	require.NoError(t, s.AddWeeklySummary(func() {}))
	require.NoError(t, s.Reschedule(models.DefaultSettings("")))
	assert.Equal(t, 2, s.Scheduled())

	settings := models.DefaultSettings("")
	settings.ReminderEnabled = false
	require.NoError(t, s.Reschedule(settings))
	assert.Equal(t, 1, s.Scheduled())
}
