package bot

import (
	"time"

	"DailySipBot/internal/config"
	"DailySipBot/internal/handlers"
	"DailySipBot/internal/tracker"
	"DailySipBot/internal/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// BotInit создаёт бота и регистрирует хендлеры. Возвращает nil, если бот не создан.
func BotInit(cfg *config.Config, log *zap.Logger, svc *tracker.Service) *tele.Bot {
	handlers.InitHandlers()
	pref := tele.Settings{
		Token:  cfg.TGtoken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		log.Error("Failed to create bot", zap.Error(err))
		return nil
	}

	b.Use(OwnerOnly(cfg.OwnerChatID, log))

	presets := cfg.Presets.Amounts

	b.Handle("/start", handlers.StartHandler(svc, presets, log))
	b.Handle("/help", handlers.HelpHandler())
	b.Handle(utils.BtnHelpText, handlers.HelpHandler())
	b.Handle("/tip", handlers.TipHandler(svc, cfg.Presets.Tips))

	for _, amount := range presets {
		b.Handle(utils.PresetLabel(amount), handlers.DrinkHandler(svc, amount, presets, log))
	}
	b.Handle("/custom", handlers.CustomHandler(svc, presets, log))
	b.Handle(utils.BtnCustomText, handlers.CustomHandler(svc, presets, log))

	b.Handle("/status", handlers.StatusHandler(svc))
	b.Handle(utils.BtnStatusText, handlers.StatusHandler(svc))
	b.Handle("/hours", handlers.HoursHandler(svc))
	b.Handle("/week", handlers.WeekHandler(svc))
	b.Handle(utils.BtnWeekText, handlers.WeekHandler(svc))
	b.Handle("/stats", handlers.StatsHandler(svc))
	b.Handle("/achievements", handlers.AchievementsHandler(svc))

	b.Handle("/goal", handlers.GoalHandler(svc, log))
	b.Handle("/interval", handlers.IntervalHandler(svc, log))
	b.Handle("/reminder", handlers.ReminderHandler(svc, log))
	b.Handle("/theme", handlers.ThemeHandler(svc, log))
	b.Handle("/name", handlers.NameHandler(svc, log))

	b.Handle("/clear", handlers.ClearHandler())
	b.Handle(&handlers.BtnClearConfirm, handlers.HandleClearCallback(svc, log))
	b.Handle(&handlers.BtnClearCancel, handlers.HandleClearCallback(svc, log))

	btnDrink := &tele.Btn{Unique: "drink_accept"}
	b.Handle(btnDrink, handlers.HandleDrinkAcceptCallback(svc, log))

	// Обрабатывать ВСЕ текстовые сообщения для пошагового ввода:
	b.Handle(tele.OnText, handlers.CustomTextHandler(svc, presets, log))

	return b
}

// OwnerOnly пропускает только чат владельца; остальные апдейты молча отбрасываются.
func OwnerOnly(ownerChatID int64, log *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.ID != ownerChatID {
				var id int64
				if chat != nil {
					id = chat.ID
				}
				log.Warn("Сообщение не от владельца, пропускаем", zap.Int64("chat_id", id))
				return nil
			}
			return next(c)
		}
	}
}
