package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"DailySipBot/internal/models"

	"go.uber.org/zap"
)

const (
	KeyData     = "waterData"
	KeySettings = "waterSettings"

	dateLayout = "2006-01-02"
)

// Documents читает и пишет два документа трекера поверх любого KV.
// Отсутствующий или битый документ не ошибка: подставляются значения по умолчанию и сразу сохраняются.
type Documents struct {
	kv          KV
	log         *zap.Logger
	defaultName string
}

func NewDocuments(kv KV, log *zap.Logger, defaultName string) *Documents {
	return &Documents{kv: kv, log: log, defaultName: defaultName}
}

func (d *Documents) LoadState() (models.TrackerState, error) {
	raw, ok, err := d.kv.Get(KeyData)
	if err != nil {
		return models.TrackerState{}, fmt.Errorf("read %s: %w", KeyData, err)
	}
	if ok {
		if st, dropped, valid := decodeState(raw); valid {
			if dropped > 0 {
				d.log.Warn("Отброшены записи с некорректными ключами даты или часа",
					zap.String("key", KeyData), zap.Int("dropped", dropped))
			}
			return st, nil
		}
		d.log.Warn("Документ повреждён, начинаем с пустого состояния", zap.String("key", KeyData))
	}
	st := models.NewTrackerState()
	if err := d.SaveState(st); err != nil {
		return models.TrackerState{}, err
	}
	return st, nil
}

func (d *Documents) SaveState(st models.TrackerState) error {
	if st.History == nil {
		st.History = models.HistoryStore{}
	}
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := d.kv.Put(KeyData, b); err != nil {
		return fmt.Errorf("write %s: %w", KeyData, err)
	}
	return nil
}

func (d *Documents) LoadSettings() (models.Settings, error) {
	raw, ok, err := d.kv.Get(KeySettings)
	if err != nil {
		return models.Settings{}, fmt.Errorf("read %s: %w", KeySettings, err)
	}
	if ok {
		if s, valid := decodeSettings(raw, d.defaultName); valid {
			return s, nil
		}
		d.log.Warn("Настройки повреждены, используем значения по умолчанию", zap.String("key", KeySettings))
	}
	s := models.DefaultSettings(d.defaultName)
	if err := d.SaveSettings(s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

func (d *Documents) SaveSettings(s models.Settings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := d.kv.Put(KeySettings, b); err != nil {
		return fmt.Errorf("write %s: %w", KeySettings, err)
	}
	return nil
}

// decodeState принимает документ только при наличии history.
// Ключи дат вне формата yyyy-MM-dd и часов вне 00..23 отбрасываются; dropped — их число.
func decodeState(raw []byte) (models.TrackerState, int, bool) {
	var probe struct {
		History *models.HistoryStore `json:"history"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.History == nil {
		return models.TrackerState{}, 0, false
	}
	var st models.TrackerState
	if err := json.Unmarshal(raw, &st); err != nil {
		return models.TrackerState{}, 0, false
	}
	if st.Streak < 0 {
		st.Streak = 0
	}
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	st.Achievements = dedupe(st.Achievements)

	dropped := 0
	for date, hours := range st.History {
		if !validDateKey(date) {
			delete(st.History, date)
			dropped++
			continue
		}
		if hours == nil {
			st.History[date] = map[string][]int{}
			continue
		}
		for hour, amounts := range hours {
			if !validHourKey(hour) {
				delete(hours, hour)
				dropped++
				continue
			}
			kept := amounts[:0]
			for _, a := range amounts {
				if a > 0 {
					kept = append(kept, a)
				}
			}
			// ключ часа сохраняем даже пустым: его наличие — сигнал «сегодня уже пили»
			hours[hour] = kept
		}
	}
	if st.BestDay != nil && !validDateKey(st.BestDay.Date) {
		st.BestDay = nil
	}
	return st, dropped, true
}

func validDateKey(key string) bool {
	t, err := time.Parse(dateLayout, key)
	return err == nil && t.Format(dateLayout) == key
}

func validHourKey(key string) bool {
	if len(key) != 2 {
		return false
	}
	h, err := strconv.Atoi(key)
	return err == nil && h >= 0 && h <= 23
}

// decodeSettings требует dailyGoal; остальные поля добиваются значениями по умолчанию.
func decodeSettings(raw []byte, defaultName string) (models.Settings, bool) {
	var s models.Settings
	if err := json.Unmarshal(raw, &s); err != nil || s.DailyGoalMl <= 0 {
		return models.Settings{}, false
	}
	def := models.DefaultSettings(defaultName)
	if s.DisplayName == "" {
		s.DisplayName = def.DisplayName
	}
	if s.ReminderIntervalMinutes <= 0 {
		s.ReminderIntervalMinutes = def.ReminderIntervalMinutes
	}
	if !s.Theme.Valid() {
		s.Theme = def.Theme
	}
	return s, true
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
