package reminder

import (
	"fmt"
	"sync"
	"time"

	"DailySipBot/internal/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Source — то, что умеет сказать, пора ли напоминать. Реализуется tracker.Service.
type Source interface {
	Now() time.Time
	ReminderMessage(now time.Time) (string, bool)
}

// Notifier доставляет текст напоминания пользователю.
type Notifier interface {
	Notify(text string) error
}

// Scheduler держит не более одной периодической задачи напоминания.
// При смене настроек старая задача снимается до установки новой.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	entry    cron.EntryID
	active   bool
	src      Source
	notifier Notifier
	log      *zap.Logger
}

// WeeklySummarySpec — по понедельникам в 9:00
const WeeklySummarySpec = "0 9 * * 1"

func New(src Source, notifier Notifier, log *zap.Logger, opts ...cron.Option) *Scheduler {
	return &Scheduler{
		cron:     cron.New(opts...),
		src:      src,
		notifier: notifier,
		log:      log,
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Планировщик напоминаний запущен")
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Reschedule применяет настройки: снимает текущую задачу и, если напоминания включены,
// ставит новую с интервалом reminderInterval минут.
func (s *Scheduler) Reschedule(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.cron.Remove(s.entry)
		s.active = false
	}
	if !settings.ReminderEnabled {
		s.log.Info("Напоминания выключены")
		return nil
	}
	if settings.ReminderIntervalMinutes <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %d", settings.ReminderIntervalMinutes)
	}

	spec := fmt.Sprintf("@every %dm", settings.ReminderIntervalMinutes)
	id, err := s.cron.AddFunc(spec, s.Tick)
	if err != nil {
		s.log.Error("Не удалось запланировать напоминание", zap.String("spec", spec), zap.Error(err))
		return err
	}
	s.entry = id
	s.active = true
	s.log.Info("Напоминание запланировано", zap.String("spec", spec))
	return nil
}

// OnSettingsChange — обработчик для tracker.Service.OnSettingsChange.
func (s *Scheduler) OnSettingsChange(settings models.Settings) {
	if err := s.Reschedule(settings); err != nil {
		s.log.Error("Ошибка перепланирования напоминания", zap.Error(err))
	}
}

// AddWeeklySummary ставит еженедельную сводку; её задача не зависит от настроек напоминаний.
func (s *Scheduler) AddWeeklySummary(fn func()) error {
	_, err := s.cron.AddFunc(WeeklySummarySpec, fn)
	if err != nil {
		return err
	}
	s.log.Info("Еженедельная сводка запланирована", zap.String("spec", WeeklySummarySpec))
	return nil
}

// Tick — одно срабатывание: только чтение состояния, без изменений.
func (s *Scheduler) Tick() {
	now := s.src.Now()
	msg, ok := s.src.ReminderMessage(now)
	if !ok {
		s.log.Debug("Цель дня выполнена, напоминание пропущено")
		return
	}
	if err := s.notifier.Notify(msg); err != nil {
		s.log.Error("Ошибка отправки напоминания", zap.Error(err))
		return
	}
	s.log.Info("Напоминание отправлено")
}

// Next — время следующего срабатывания; false, если задачи нет.
func (s *Scheduler) Next(from time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return time.Time{}, false
	}
	return s.cron.Entry(s.entry).Schedule.Next(from), true
}

// Scheduled — число задач в планировщике.
func (s *Scheduler) Scheduled() int {
	return len(s.cron.Entries())
}
