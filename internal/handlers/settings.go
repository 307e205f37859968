package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"DailySipBot/internal/models"
	"DailySipBot/internal/tracker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// /goal 2000 — дневная цель
func GoalHandler(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("🎯 Дневная цель: %d мл\nИзменить: /goal 2000", svc.Settings().DailyGoalMl))
		}
		goal, err := tracker.ParseGoal(args[0])
		if err != nil {
			return c.Send(fmt.Sprintf("Цель должна быть числом мл от 1 до %d, например /goal 2000", tracker.MaxDailyGoalMl))
		}
		return saveSettings(c, svc, log, func(s *models.Settings) { s.DailyGoalMl = goal })
	}
}

// /interval 45 — интервал напоминаний в минутах
func IntervalHandler(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("⏰ Напоминать каждые %d мин\nИзменить: /interval 45", svc.Settings().ReminderIntervalMinutes))
		}
		minutes, err := strconv.Atoi(args[0])
		if err != nil || minutes <= 0 {
			return c.Send("Интервал должен быть положительным числом минут, например /interval 45")
		}
		return saveSettings(c, svc, log, func(s *models.Settings) { s.ReminderIntervalMinutes = minutes })
	}
}

// /reminder on|off
func ReminderHandler(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Используй /reminder on или /reminder off")
		}
		enabled, ok := parseToggle(args[0])
		if !ok {
			return c.Send("Используй /reminder on или /reminder off")
		}
		return saveSettings(c, svc, log, func(s *models.Settings) { s.ReminderEnabled = enabled })
	}
}

// /theme pink
func ThemeHandler(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("🎨 Тема: %s\nДоступны: default, pink, purple, green", svc.Settings().Theme))
		}
		theme := models.Theme(strings.ToLower(args[0]))
		return saveSettings(c, svc, log, func(s *models.Settings) { s.Theme = theme })
	}
}

// /name Аня
func NameHandler(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		name := strings.TrimSpace(c.Message().Payload)
		if name == "" {
			return c.Send(fmt.Sprintf("Сейчас я зову тебя %s. Изменить: /name Имя", svc.Settings().DisplayName))
		}
		return saveSettings(c, svc, log, func(s *models.Settings) { s.DisplayName = name })
	}
}

func saveSettings(c tele.Context, svc *tracker.Service, log *zap.Logger, fn func(*models.Settings)) error {
	saved, err := svc.UpdateSettings(fn)
	if errors.Is(err, tracker.ErrInvalidSettings) {
		return c.Send("Такие настройки не подходят 🙅 Проверь значения и попробуй снова")
	}
	if err != nil {
		log.Error("Ошибка сохранения настроек", zap.Error(err))
		return c.Send("Не удалось сохранить настройки, попробуй позже 🙁")
	}
	return c.Send(settingsMessage(saved))
}

func parseToggle(arg string) (bool, bool) {
	switch strings.ToLower(arg) {
	case "on", "вкл", "да", "1":
		return true, true
	case "off", "выкл", "нет", "0":
		return false, true
	}
	return false, false
}
