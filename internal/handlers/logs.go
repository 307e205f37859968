package handlers

import (
	"DailySipBot/internal/tracker"

	tele "gopkg.in/telebot.v4"
)

// /hours — выпитое сегодня по часам
func HoursHandler(svc *tracker.Service) func(c tele.Context) error {
	return func(c tele.Context) error {
		date := tracker.DateKey(svc.Now())
		return c.Send(hoursMessage(date, svc.HourlySeries(date)))
	}
}
