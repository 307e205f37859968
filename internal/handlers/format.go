package handlers

import (
	"fmt"
	"strings"

	"DailySipBot/internal/models"
	"DailySipBot/internal/tracker"
	"DailySipBot/internal/utils"
)

const barWidth = 10

// Ответ на запись приёма воды
func recordMessage(amountMl int, snap tracker.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💧 Записано %d мл\n\n", amountMl)
	sb.WriteString(progressLine(snap))
	if snap.TodayTotalMl >= snap.DailyGoalMl {
		sb.WriteString("\n🎉 Дневная цель выполнена!")
	}
	if a := announcement(snap.NewlyUnlocked); a != "" {
		sb.WriteString("\n\n" + a)
	}
	return sb.String()
}

func progressLine(snap tracker.Snapshot) string {
	return fmt.Sprintf("%s %d%%\nСегодня: %d из %d мл\n🔥 Серия: %d %s",
		utils.ProgressBar(snap.GoalPercent, barWidth), snap.GoalPercent,
		snap.TodayTotalMl, snap.DailyGoalMl,
		snap.Streak, daysWord(snap.Streak))
}

// announcement показывает только первое новое достижение, как тост в виджете
func announcement(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	a, ok := tracker.FindAchievement(ids[0])
	if !ok {
		return ""
	}
	return fmt.Sprintf("🏆 Новое достижение: %s\n%s", a.Name, a.Description)
}

func statusMessage(snap tracker.Snapshot, settings models.Settings) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s, статус на %s:\n\n", settings.DisplayName, utils.FormatDateKeyRu(snap.Date))
	sb.WriteString(progressLine(snap))
	fmt.Fprintf(&sb, "\n🍶 Бутылка заполнена на %d%%", snap.BottleFillPercent)
	if snap.BestDay != nil {
		fmt.Fprintf(&sb, "\n🏅 Лучший день: %s (%d мл)", utils.FormatDateKeyRu(snap.BestDay.Date), snap.BestDay.Amount)
	}
	if left := snap.DailyGoalMl - snap.TodayTotalMl; left > 0 {
		fmt.Fprintf(&sb, "\n\nОсталось выпить: %d мл", left)
	}
	return sb.String()
}

func hoursMessage(date string, series []tracker.HourPoint) string {
	maxTotal := 0
	for _, p := range series {
		if p.TotalMl > maxTotal {
			maxTotal = p.TotalMl
		}
	}
	if maxTotal == 0 {
		return "Сегодня ещё нет записей. Выпей стакан воды 💧"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🕐 Выпито по часам за %s:\n\n", utils.FormatDateKeyRu(date))
	for _, p := range series {
		if p.TotalMl == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s %s %d мл\n", p.Hour, utils.ProgressBar(p.TotalMl*100/maxTotal, barWidth), p.TotalMl)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func weekMessage(series []tracker.DayPoint, goalMl int) string {
	var sb strings.Builder
	sb.WriteString("📅 История по дням:\n\n")
	for _, p := range series {
		mark := "▫️"
		if p.TotalMl >= goalMl {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s %s %s %d мл\n", mark, utils.ShortDate(p.Date),
			utils.ProgressBar(tracker.GoalPercent(p.TotalMl, goalMl), barWidth), p.TotalMl)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func statsMessage(stats tracker.AllTimeStats, st models.TrackerState) string {
	var sb strings.Builder
	sb.WriteString("📈 Общая статистика:\n\n")
	fmt.Fprintf(&sb, "Всего выпито: %d мл\n", stats.TotalMl)
	fmt.Fprintf(&sb, "Активных дней: %d\n", stats.ActiveDays)
	fmt.Fprintf(&sb, "В среднем за день: %d мл\n", stats.AverageMl)
	fmt.Fprintf(&sb, "🔥 Серия: %d %s", st.Streak, daysWord(st.Streak))
	if st.BestDay != nil {
		fmt.Fprintf(&sb, "\n🏅 Лучший день: %s (%d мл)", utils.FormatDateKeyRu(st.BestDay.Date), st.BestDay.Amount)
	}
	return sb.String()
}

func achievementsMessage(views []tracker.AchievementView) string {
	var sb strings.Builder
	opened := 0
	for _, v := range views {
		if v.Unlocked {
			opened++
		}
	}
	fmt.Fprintf(&sb, "🏆 Достижения (%d из %d):\n\n", opened, len(views))
	for _, v := range views {
		icon := "🔒"
		if v.Unlocked {
			icon = "✅"
		}
		fmt.Fprintf(&sb, "%s %s — %s\n", icon, v.Name, v.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func settingsMessage(s models.Settings) string {
	reminder := "выключены"
	if s.ReminderEnabled {
		reminder = fmt.Sprintf("каждые %d мин", s.ReminderIntervalMinutes)
	}
	return fmt.Sprintf("⚙️ Настройки сохранены:\n\nИмя: %s\nДневная цель: %d мл\nНапоминания: %s\nТема: %s",
		s.DisplayName, s.DailyGoalMl, reminder, s.Theme)
}

// daysWord склоняет «день» по числу
func daysWord(n int) string {
	n %= 100
	if n >= 11 && n <= 14 {
		return "дней"
	}
	switch n % 10 {
	case 1:
		return "день"
	case 2, 3, 4:
		return "дня"
	}
	return "дней"
}
