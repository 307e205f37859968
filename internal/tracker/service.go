package tracker

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"DailySipBot/internal/clock"
	"DailySipBot/internal/models"

	"go.uber.org/zap"
)

const DefaultSeriesDays = 30

// Persistence — порт хранения двух документов трекера.
type Persistence interface {
	LoadState() (models.TrackerState, error)
	SaveState(models.TrackerState) error
	LoadSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// Renderer — порт слоя представления; получает снимок после каждого изменения.
type Renderer interface {
	Render(Snapshot)
}

// Snapshot — готовое к отрисовке состояние дня. Это же результат записи приёма воды.
type Snapshot struct {
	Date              string          `json:"date"`
	TodayTotalMl      int             `json:"todayTotalMl"`
	DailyGoalMl       int             `json:"dailyGoalMl"`
	GoalPercent       int             `json:"goalPercent"`
	BottleFillPercent int             `json:"bottleFillPercent"`
	Streak            int             `json:"streak"`
	BestDay           *models.BestDay `json:"bestDay"`
	NewlyUnlocked     []string        `json:"newlyUnlocked"`
	Cleared           bool            `json:"cleared,omitempty"`
}

type DayPoint struct {
	Date    string `json:"date"`
	TotalMl int    `json:"totalMl"`
}

// Service — фасад трекера. Все публичные операции сериализованы одним мьютексом:
// бот, HTTP и cron вызывают его из разных горутин, а модель данных рассчитана на одного писателя.
type Service struct {
	mu       sync.Mutex
	docs     Persistence
	clock    clock.Clock
	log      *zap.Logger
	state    models.TrackerState
	settings models.Settings

	renderers         []Renderer
	settingsListeners []func(models.Settings)
}

func NewService(docs Persistence, clk clock.Clock, log *zap.Logger) (*Service, error) {
	st, err := docs.LoadState()
	if err != nil {
		return nil, fmt.Errorf("load tracker state: %w", err)
	}
	settings, err := docs.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	log.Info("Состояние трекера загружено",
		zap.Int("days", len(st.History)),
		zap.Int("streak", st.Streak),
		zap.Int("daily_goal", settings.DailyGoalMl))
	return &Service{
		docs:     docs,
		clock:    clk,
		log:      log,
		state:    st,
		settings: settings,
	}, nil
}

func (s *Service) Now() time.Time { return s.clock.Now() }

// AddRenderer регистрирует адаптер представления. Вызывать до начала обработки запросов.
func (s *Service) AddRenderer(r Renderer) {
	s.mu.Lock()
	s.renderers = append(s.renderers, r)
	s.mu.Unlock()
}

// OnSettingsChange подписывает fn на сохранённые настройки (например, перепланировать напоминание).
func (s *Service) OnSettingsChange(fn func(models.Settings)) {
	s.mu.Lock()
	s.settingsListeners = append(s.settingsListeners, fn)
	s.mu.Unlock()
}

// RecordIntake записывает объём, выпитый в момент now, через кнопку с готовым объёмом.
func (s *Service) RecordIntake(amountMl int, now time.Time) (Snapshot, error) {
	return s.record(amountMl, now, false)
}

// RecordCustomIntake — тот же приём воды, но через ввод своего объёма (открывает достижение custom).
func (s *Service) RecordCustomIntake(amountMl int, now time.Time) (Snapshot, error) {
	return s.record(amountMl, now, true)
}

func (s *Service) record(amountMl int, now time.Time, custom bool) (Snapshot, error) {
	if !validAmount(amountMl) {
		return Snapshot{}, ErrInvalidAmount
	}

	s.mu.Lock()
	date, hour := DateKey(now), HourKey(now)
	before := s.state.Clone()

	if s.state.History == nil {
		s.state.History = models.HistoryStore{}
	}
	day, ok := s.state.History[date]
	todayHadBuckets := ok && len(day) > 0
	if !ok || day == nil {
		day = map[string][]int{}
		s.state.History[date] = day
	}
	day[hour] = append(day[hour], amountMl)

	UpdateStreak(&s.state, now, todayHadBuckets)
	total := NewAggregator(s.state.History).DayTotal(date)
	UpdateBestDay(&s.state, date, total)

	unlocked := Evaluate(&s.state, EvalInput{
		TodayTotalMl: total,
		DailyGoalMl:  s.settings.DailyGoalMl,
		Streak:       s.state.Streak,
		Hour:         now.Hour(),
		Custom:       custom,
	})

	if err := s.docs.SaveState(s.state); err != nil {
		s.state = before
		s.mu.Unlock()
		s.log.Error("Не удалось сохранить приём воды", zap.Int("amount", amountMl), zap.Error(err))
		return Snapshot{}, err
	}

	snap := s.snapshotLocked(date)
	snap.NewlyUnlocked = unlocked
	renderers := s.renderers
	s.mu.Unlock()

	s.log.Info("Записан приём воды",
		zap.Int("amount", amountMl),
		zap.String("date", date),
		zap.String("hour", hour),
		zap.Bool("custom", custom),
		zap.Int("today_total", snap.TodayTotalMl),
		zap.Int("streak", snap.Streak),
		zap.Strings("unlocked", unlocked))

	for _, r := range renderers {
		r.Render(snap)
	}
	return snap, nil
}

// ClearAll сбрасывает всю историю, серию, лучший день и достижения.
func (s *Service) ClearAll() error {
	s.mu.Lock()
	empty := models.NewTrackerState()
	if err := s.docs.SaveState(empty); err != nil {
		s.mu.Unlock()
		s.log.Error("Не удалось очистить данные", zap.Error(err))
		return err
	}
	s.state = empty
	snap := s.snapshotLocked(DateKey(s.clock.Now()))
	snap.Cleared = true
	renderers := s.renderers
	s.mu.Unlock()

	s.log.Info("Все записи удалены")
	for _, r := range renderers {
		r.Render(snap)
	}
	return nil
}

// Today — снимок текущего дня без изменений состояния.
func (s *Service) Today(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(DateKey(now))
}

func (s *Service) snapshotLocked(date string) Snapshot {
	total := NewAggregator(s.state.History).DayTotal(date)
	goal := s.settings.DailyGoalMl
	var best *models.BestDay
	if s.state.BestDay != nil {
		bd := *s.state.BestDay
		best = &bd
	}
	return Snapshot{
		Date:              date,
		TodayTotalMl:      total,
		DailyGoalMl:       goal,
		GoalPercent:       GoalPercent(total, goal),
		BottleFillPercent: BottleFillPercent(total, goal),
		Streak:            s.state.Streak,
		BestDay:           best,
		NewlyUnlocked:     []string{},
	}
}

// WeeklySeries — дневные итоги всех дат истории по возрастанию, не более maxDays последних.
// При пустой истории возвращает 7 последних календарных дней (включая сегодня) с нулями.
func (s *Service) WeeklySeries(maxDays int, now time.Time) []DayPoint {
	if maxDays <= 0 {
		maxDays = DefaultSeriesDays
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	agg := NewAggregator(s.state.History)
	dates := agg.Dates()
	if len(dates) > maxDays {
		dates = dates[len(dates)-maxDays:]
	}
	if len(dates) == 0 {
		for i := 6; i >= 0; i-- {
			dates = append(dates, DateKey(now.AddDate(0, 0, -i)))
		}
	}

	out := make([]DayPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayPoint{Date: d, TotalMl: agg.DayTotal(d)})
	}
	return out
}

func (s *Service) HourTotal(date, hour string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewAggregator(s.state.History).HourTotal(date, hour)
}

func (s *Service) DayTotal(date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewAggregator(s.state.History).DayTotal(date)
}

func (s *Service) AllTimeStats() AllTimeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewAggregator(s.state.History).AllTimeStats()
}

func (s *Service) HourlySeries(date string) []HourPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewAggregator(s.state.History).HourlySeries(date)
}

// Achievements — весь каталог с отметкой, открыто ли достижение.
func (s *Service) Achievements() []AchievementView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AchievementView, 0, len(Catalog))
	for _, a := range Catalog {
		out = append(out, AchievementView{Achievement: a, Unlocked: s.state.HasAchievement(a.ID)})
	}
	return out
}

// State возвращает копию состояния.
func (s *Service) State() models.TrackerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Service) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SaveSettings проверяет и сохраняет настройки; все последующие расчёты используют новые значения.
// Пустое имя оставляет текущее.
func (s *Service) SaveSettings(next models.Settings) (models.Settings, error) {
	s.mu.Lock()
	return s.commitSettingsLocked(next)
}

// UpdateSettings меняет текущие настройки через fn и сохраняет их под одной блокировкой.
// fn не должна обращаться к Service.
func (s *Service) UpdateSettings(fn func(*models.Settings)) (models.Settings, error) {
	s.mu.Lock()
	next := s.settings
	fn(&next)
	return s.commitSettingsLocked(next)
}

// commitSettingsLocked вызывается под s.mu и всегда его отпускает.
func (s *Service) commitSettingsLocked(next models.Settings) (models.Settings, error) {
	next.DisplayName = strings.TrimSpace(next.DisplayName)
	if next.Theme == "" {
		next.Theme = models.ThemeDefault
	}
	if err := validateSettings(next); err != nil {
		s.mu.Unlock()
		return models.Settings{}, err
	}
	if next.DisplayName == "" {
		next.DisplayName = s.settings.DisplayName
	}
	if err := s.docs.SaveSettings(next); err != nil {
		s.mu.Unlock()
		s.log.Error("Не удалось сохранить настройки", zap.Error(err))
		return models.Settings{}, err
	}
	s.settings = next
	listeners := s.settingsListeners
	s.mu.Unlock()

	s.log.Info("Настройки сохранены",
		zap.Int("daily_goal", next.DailyGoalMl),
		zap.Bool("reminder", next.ReminderEnabled),
		zap.Int("reminder_interval", next.ReminderIntervalMinutes),
		zap.String("theme", string(next.Theme)))
	for _, fn := range listeners {
		fn(next)
	}
	return next, nil
}

func validateSettings(next models.Settings) error {
	if next.DailyGoalMl <= 0 || next.DailyGoalMl > MaxDailyGoalMl || next.ReminderIntervalMinutes <= 0 {
		return ErrInvalidSettings
	}
	if !next.Theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, next.Theme)
	}
	return nil
}

// ReminderMessage — только чтение: текст напоминания, если цель дня ещё не выполнена.
func (s *Service) ReminderMessage(now time.Time) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := NewAggregator(s.state.History).DayTotal(DateKey(now))
	goal := s.settings.DailyGoalMl
	if total >= goal {
		return "", false
	}
	return fmt.Sprintf("💧 %s, пора попить воды! Сегодня осталось выпить ещё %d мл.", s.settings.DisplayName, goal-total), true
}
