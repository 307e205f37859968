package handlers

import (
	"DailySipBot/internal/tracker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

const (
	clearConfirmUnique = "clear_confirm"
	clearCancelUnique  = "clear_cancel"
)

var (
	ClearButtons    *tele.ReplyMarkup
	BtnClearConfirm tele.Btn
	BtnClearCancel  tele.Btn
)

func initClearButtons() {
	ClearButtons = &tele.ReplyMarkup{}
	BtnClearConfirm = ClearButtons.Data("🗑 Да, удалить всё", clearConfirmUnique)
	BtnClearCancel = ClearButtons.Data("Отмена", clearCancelUnique)
	ClearButtons.Inline(ClearButtons.Row(BtnClearConfirm, BtnClearCancel))
}

// /clear — спрашивает подтверждение перед удалением всей истории
func ClearHandler() func(c tele.Context) error {
	return func(c tele.Context) error {
		return c.Send("⚠️ Удалить всю историю, серию и достижения? Это нельзя отменить.", ClearButtons)
	}
}

func HandleClearCallback(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		switch c.Callback().Unique {
		case clearConfirmUnique:
			if err := svc.ClearAll(); err != nil {
				log.Error("Ошибка очистки данных", zap.Error(err))
				return c.Respond(&tele.CallbackResponse{Text: "Не удалось удалить данные"})
			}
			_ = c.Edit("🗑 Все записи удалены. Начинаем с чистого листа!", &tele.ReplyMarkup{})
			return c.Respond(&tele.CallbackResponse{Text: "Готово"})
		default:
			_ = c.Edit("Удаление отменено", &tele.ReplyMarkup{})
			return c.Respond(&tele.CallbackResponse{Text: "Отменено"})
		}
	}
}
