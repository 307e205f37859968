package handlers

import (
	"errors"
	"fmt"
	"sync"

	"DailySipBot/internal/tracker"
	"DailySipBot/internal/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Ожидающие ввода своего объёма чаты
var customStates = struct {
	sync.RWMutex
	m map[int64]bool
}{m: make(map[int64]bool)}

func startCustom(chatID int64) {
	customStates.Lock()
	customStates.m[chatID] = true
	customStates.Unlock()
}

func awaitingCustom(chatID int64) bool {
	customStates.RLock()
	defer customStates.RUnlock()
	return customStates.m[chatID]
}

func finishCustom(chatID int64) {
	customStates.Lock()
	delete(customStates.m, chatID)
	customStates.Unlock()
}

// DrinkHandler — кнопка готового объёма
func DrinkHandler(svc *tracker.Service, amountMl int, presets []int, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		finishCustom(c.Chat().ID)
		return recordAndReply(c, svc, amountMl, false, presets, log)
	}
}

// /custom [мл] — свой объём: сразу из аргумента или следующим сообщением
func CustomHandler(svc *tracker.Service, presets []int, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		if args := c.Args(); len(args) > 0 {
			amount, err := tracker.ParseAmount(args[0])
			if err != nil {
				return c.Send("Введи положительное число мл, например /custom 330")
			}
			return recordAndReply(c, svc, amount, true, presets, log)
		}
		startCustom(c.Chat().ID)
		return c.Send("Сколько мл ты выпил(а)? Напиши число, например 330", utils.CancelKeyboard())
	}
}

// CustomTextHandler обрабатывает все текстовые сообщения для пошагового ввода
func CustomTextHandler(svc *tracker.Service, presets []int, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		chatID := c.Chat().ID
		if c.Text() == utils.BtnCancelText {
			finishCustom(chatID)
			return c.Send("Отменено", utils.MainMenuKeyboard(presets))
		}
		if !awaitingCustom(chatID) {
			return c.Send("Не понял 🤔 Нажми кнопку с объёмом или /help", utils.MainMenuKeyboard(presets))
		}
		amount, err := tracker.ParseAmount(c.Text())
		if err != nil {
			return c.Send("Введи положительное число мл, например 250", utils.CancelKeyboard())
		}
		finishCustom(chatID)
		return recordAndReply(c, svc, amount, true, presets, log)
	}
}

func recordAndReply(c tele.Context, svc *tracker.Service, amountMl int, custom bool, presets []int, log *zap.Logger) error {
	var (
		snap tracker.Snapshot
		err  error
	)
	now := svc.Now()
	if custom {
		snap, err = svc.RecordCustomIntake(amountMl, now)
	} else {
		snap, err = svc.RecordIntake(amountMl, now)
	}
	if errors.Is(err, tracker.ErrInvalidAmount) {
		return c.Send(fmt.Sprintf("Объём должен быть числом мл от 1 до %d", tracker.MaxAmountMl))
	}
	if err != nil {
		log.Error("Ошибка записи приёма воды", zap.Int("amount", amountMl), zap.Error(err))
		return c.Send("Не удалось сохранить запись, попробуй позже 🙁")
	}
	return c.Send(recordMessage(amountMl, snap), utils.MainMenuKeyboard(presets))
}
