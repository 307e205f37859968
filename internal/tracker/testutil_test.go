package tracker

import (
	"errors"
	"testing"
	"time"

	"DailySipBot/internal/clock"
	"DailySipBot/internal/models"
	"DailySipBot/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func at(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, time.UTC)
}

func newServiceForTest(t *testing.T, start time.Time) (*Service, *store.Documents, *clock.Fake) {
	t.Helper()
	docs := store.NewDocuments(store.NewMemoryKV(), zap.NewNop(), "Тест")
	fake := clock.NewFake(start)
	svc, err := NewService(docs, fake, zap.NewNop())
	require.NoError(t, err)
	return svc, docs, fake
}

// failingDocs отказывает в записи состояния, когда fail=true.
type failingDocs struct {
	Persistence
	fail bool
}

func (f *failingDocs) SaveState(st models.TrackerState) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Persistence.SaveState(st)
}

type recordingRenderer struct {
	got []Snapshot
}

func (r *recordingRenderer) Render(s Snapshot) { r.got = append(r.got, s) }
