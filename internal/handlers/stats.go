package handlers

import (
	"strconv"

	"DailySipBot/internal/tracker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

const defaultWeekDays = 7

// /stats — общая статистика за всё время
func StatsHandler(svc *tracker.Service) func(c tele.Context) error {
	return func(c tele.Context) error {
		return c.Send(statsMessage(svc.AllTimeStats(), svc.State()))
	}
}

// /week [дней] — итоги по дням, по умолчанию последние 7 дат с записями
func WeekHandler(svc *tracker.Service) func(c tele.Context) error {
	return func(c tele.Context) error {
		days := parseWeekDays(c.Args())
		series := svc.WeeklySeries(days, svc.Now())
		return c.Send(weekMessage(series, svc.Settings().DailyGoalMl))
	}
}

func parseWeekDays(args []string) int {
	if len(args) == 0 {
		return defaultWeekDays
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return defaultWeekDays
	}
	if n > tracker.DefaultSeriesDays {
		return tracker.DefaultSeriesDays
	}
	return n
}

// SendWeeklyStats отправляет владельцу автоматическую сводку за последние дни
func SendWeeklyStats(b *tele.Bot, chatID int64, svc *tracker.Service, log *zap.Logger) func() {
	return func() {
		log.Info("Отправка еженедельной статистики")
		series := svc.WeeklySeries(defaultWeekDays, svc.Now())
		msg := weekMessage(series, svc.Settings().DailyGoalMl) + "\n\n" + statsMessage(svc.AllTimeStats(), svc.State())
		if _, err := b.Send(tele.ChatID(chatID), msg); err != nil {
			log.Warn("Не удалось отправить статистику", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}
