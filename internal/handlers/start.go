package handlers

import (
	"fmt"

	"DailySipBot/internal/models"
	"DailySipBot/internal/tracker"
	"DailySipBot/internal/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

func StartHandler(svc *tracker.Service, presets []int, log *zap.Logger) func(c tele.Context) error {
	log.Info("StartHandler initialized")
	return func(c tele.Context) error {
		settings := svc.Settings()
		menu := utils.MainMenuKeyboard(presets)

		// Первый запуск: берём имя из Telegram вместо стандартного
		if settings.DisplayName == models.DefaultDisplayName && c.Sender() != nil && c.Sender().FirstName != "" {
			updated, err := svc.UpdateSettings(func(s *models.Settings) { s.DisplayName = c.Sender().FirstName })
			if err != nil {
				log.Warn("Не удалось сохранить имя", zap.Error(err))
			} else {
				settings = updated
			}

			msg := fmt.Sprintf(
				`👋 Привет, %s!

Я DailySipBot – помогаю пить достаточно воды 💧.

С моей помощью ты можешь:
✅ Отмечать выпитое одним нажатием.
✅ Следить за дневной целью (сейчас %d мл) и серией дней.
✅ Открывать достижения.
✅ Получать напоминания, пока цель не выполнена.

Нажми кнопку с объёмом ниже или отправь /help.
`, settings.DisplayName, settings.DailyGoalMl)
			return c.Send(msg, menu)
		}

		msg := fmt.Sprintf("👋 Привет снова, %s!\n%s", settings.DisplayName, progressLine(svc.Today(svc.Now())))
		return c.Send(msg, menu)
	}
}
