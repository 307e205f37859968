package handlers

import (
	"fmt"
	"strconv"

	"DailySipBot/internal/tracker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

const drinkAcceptUnique = "drink_accept"

// ReminderNotifier отправляет напоминание владельцу с кнопкой быстрой записи
type ReminderNotifier struct {
	bot      *tele.Bot
	chatID   int64
	amountMl int
}

func NewReminderNotifier(b *tele.Bot, chatID int64, amountMl int) *ReminderNotifier {
	return &ReminderNotifier{bot: b, chatID: chatID, amountMl: amountMl}
}

func (n *ReminderNotifier) Notify(text string) error {
	_, err := n.bot.Send(tele.ChatID(n.chatID), text, reminderMarkup(n.amountMl))
	return err
}

func reminderMarkup(amountMl int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	btnAccept := markup.Data(fmt.Sprintf("✅ Выпил(а) %d мл", amountMl), drinkAcceptUnique, strconv.Itoa(amountMl))
	markup.Inline(markup.Row(btnAccept))
	return markup
}

// Callback-хендлер для кнопки "Выпил(а)" под напоминанием
func HandleDrinkAcceptCallback(svc *tracker.Service, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		amount, err := strconv.Atoi(c.Data())
		if err != nil || amount <= 0 {
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка данных"})
		}
		snap, err := svc.RecordIntake(amount, svc.Now())
		if err != nil {
			log.Error("Ошибка записи приёма из напоминания", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "Не удалось сохранить"})
		}
		// Редактируем сообщение, убираем кнопку
		_ = c.Edit(recordMessage(amount, snap), &tele.ReplyMarkup{})
		return c.Respond(&tele.CallbackResponse{Text: "Отлично!"})
	}
}
