package tracker

import "DailySipBot/internal/models"

const (
	AchFirst     = "first"
	AchDailyGoal = "daily_goal"
	AchStreak3   = "streak3"
	AchStreak7   = "streak7"
	AchStreak30  = "streak30"
	AchEarlyBird = "early_bird"
	AchNightOwl  = "night_owl"
	AchCustom    = "custom"
)

type Achievement struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	IconRef     string `json:"icon" yaml:"icon"`
}

// Catalog — статический справочник; порядок определяет порядок разблокировки в одном событии.
var Catalog = []Achievement{
	{ID: AchFirst, Name: "Первый глоток", Description: "Запиши свой первый стакан воды!", IconRef: "https://cdn-icons-png.flaticon.com/512/824/824239.png"},
	{ID: AchDailyGoal, Name: "Цель дня", Description: "Выполни дневную норму воды", IconRef: "https://cdn-icons-png.flaticon.com/512/3588/3588310.png"},
	{ID: AchStreak3, Name: "3 дня подряд", Description: "Отмечай воду 3 дня подряд", IconRef: "https://cdn-icons-png.flaticon.com/512/2553/2553691.png"},
	{ID: AchStreak7, Name: "Неделя", Description: "Отмечай воду 7 дней подряд", IconRef: "https://cdn-icons-png.flaticon.com/512/3112/3112946.png"},
	{ID: AchStreak30, Name: "Мастер месяца", Description: "Отмечай воду 30 дней подряд", IconRef: "https://cdn-icons-png.flaticon.com/512/2553/2553691.png"},
	{ID: AchEarlyBird, Name: "Ранняя пташка", Description: "Выпей воды до 8 утра", IconRef: "https://cdn-icons-png.flaticon.com/512/2972/2972531.png"},
	{ID: AchNightOwl, Name: "Сова", Description: "Выпей воды после 22:00", IconRef: "https://cdn-icons-png.flaticon.com/512/2972/2972510.png"},
	{ID: AchCustom, Name: "Свой объём", Description: "Отметь воду своим объёмом", IconRef: "https://cdn-icons-png.flaticon.com/512/3081/3081566.png"},
}

func FindAchievement(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// EvalInput — факты о текущем событии после обновления серии.
type EvalInput struct {
	TodayTotalMl int
	DailyGoalMl  int
	Streak       int
	Hour         int
	Custom       bool
}

func (in EvalInput) met(id string) bool {
	switch id {
	case AchFirst:
		return true
	case AchDailyGoal:
		return in.TodayTotalMl >= in.DailyGoalMl
	case AchStreak3:
		return in.Streak >= 3
	case AchStreak7:
		return in.Streak >= 7
	case AchStreak30:
		return in.Streak >= 30
	case AchEarlyBird:
		return in.Hour < 8
	case AchNightOwl:
		return in.Hour >= 22
	case AchCustom:
		return in.Custom
	}
	return false
}

// Evaluate добавляет в состояние новые достижения и возвращает их id в порядке каталога.
// Уже открытое достижение повторно не добавляется и не возвращается.
func Evaluate(st *models.TrackerState, in EvalInput) []string {
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	unlocked := []string{}
	for _, a := range Catalog {
		if st.HasAchievement(a.ID) || !in.met(a.ID) {
			continue
		}
		st.Achievements = append(st.Achievements, a.ID)
		unlocked = append(unlocked, a.ID)
	}
	return unlocked
}

type AchievementView struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}
