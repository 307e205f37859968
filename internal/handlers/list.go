package handlers

import (
	"DailySipBot/internal/tracker"

	tele "gopkg.in/telebot.v4"
)

// /achievements — весь каталог с отметкой открытых
func AchievementsHandler(svc *tracker.Service) func(c tele.Context) error {
	return func(c tele.Context) error {
		return c.Send(achievementsMessage(svc.Achievements()))
	}
}
