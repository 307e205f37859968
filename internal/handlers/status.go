package handlers

import (
	"DailySipBot/internal/tracker"

	tele "gopkg.in/telebot.v4"
)

// /status — сводка по выпитому за сегодня
func StatusHandler(svc *tracker.Service) func(c tele.Context) error {
	return func(c tele.Context) error {
		return c.Send(statusMessage(svc.Today(svc.Now()), svc.Settings()))
	}
}
