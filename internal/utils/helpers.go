package utils

import (
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const (
	BtnCustomText  = "✏️ Свой объём"
	BtnStatusText  = "📊 Статус"
	BtnWeekText    = "📅 Неделя"
	BtnHelpText    = "❓ Помощь"
	BtnCancelText  = "❌ Отмена"
	presetTemplate = "💧 %d мл"
)

// PresetLabel — подпись кнопки быстрого объёма; по ней же бот узнаёт нажатие.
func PresetLabel(amountMl int) string {
	return fmt.Sprintf(presetTemplate, amountMl)
}

// Клавиатура с кнопкой "Отмена" для ввода своего объёма
func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	btnCancel := menu.Text(BtnCancelText)
	menu.Reply(menu.Row(btnCancel))
	return menu
}

// Главное меню: кнопки готовых объёмов по два в ряд, ниже служебные
func MainMenuKeyboard(presets []int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	var rows []tele.Row
	var row []tele.Btn
	for _, a := range presets {
		row = append(row, menu.Text(PresetLabel(a)))
		if len(row) == 2 {
			rows = append(rows, menu.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, menu.Row(row...))
	}
	rows = append(rows,
		menu.Row(menu.Text(BtnCustomText), menu.Text(BtnStatusText)),
		menu.Row(menu.Text(BtnWeekText), menu.Text(BtnHelpText)),
	)
	menu.Reply(rows...)
	return menu
}

func MainMenuText() string {
	return "📋 Главное меню:\n\n" +
		"/status – сколько выпито сегодня\n" +
		"/custom – записать свой объём\n" +
		"/hours – выпито по часам\n" +
		"/week – история по дням\n" +
		"/stats – общая статистика\n" +
		"/achievements – достижения\n" +
		"/goal 2000 – дневная цель в мл\n" +
		"/interval 60 – интервал напоминаний в минутах\n" +
		"/reminder on|off – включить или выключить напоминания\n" +
		"/theme default|pink|purple|green – тема виджета\n" +
		"/name Имя – как к тебе обращаться\n" +
		"/tip – совет дня\n" +
		"/clear – удалить все записи\n" +
		"/help – помощь"
}

func SendMainMenu(c tele.Context) error {
	return c.Send(MainMenuText())
}

func FormatDateRu(t time.Time) string {
	months := []string{"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"}
	day := t.Day()
	month := months[int(t.Month())-1]
	year := t.Year()
	return fmt.Sprintf("%d %s %d", day, month, year)
}

// FormatDateKeyRu переводит ключ вида 2006-01-02 в "2 января 2006"; битый ключ возвращается как есть.
func FormatDateKeyRu(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return FormatDateRu(t)
}

// ShortDate — "02.01" для строк недельной истории.
func ShortDate(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return t.Format("02.01")
}

// ProgressBar рисует полосу из width клеток для percent (0-100).
func ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("▓", filled) + strings.Repeat("░", width-filled)
}
