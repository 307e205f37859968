package handlers

import (
	"DailySipBot/internal/tracker"
	"DailySipBot/internal/utils"

	tele "gopkg.in/telebot.v4"
)

func HelpHandler() func(c tele.Context) error {
	return func(c tele.Context) error {
		return utils.SendMainMenu(c)
	}
}

// /tip — совет дня, меняется раз в сутки
func TipHandler(svc *tracker.Service, tips []string) func(c tele.Context) error {
	return func(c tele.Context) error {
		return c.Send("💡 Совет дня:\n\n" + tracker.TipFor(svc.Now(), tips))
	}
}
