package models

const (
	DefaultDailyGoal        = 1500
	DefaultReminderInterval = 60
	DefaultDisplayName      = "Друг"
)

type Theme string

const (
	ThemeDefault Theme = "default"
	ThemePink    Theme = "pink"
	ThemePurple  Theme = "purple"
	ThemeGreen   Theme = "green"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeDefault, ThemePink, ThemePurple, ThemeGreen:
		return true
	}
	return false
}

type Palette struct {
	Primary string `json:"primary"`
	Dark    string `json:"dark"`
	Light   string `json:"light"`
}

// Palette возвращает цвета темы; неизвестная тема даёт голубую по умолчанию.
func (t Theme) Palette() Palette {
	switch t {
	case ThemePink:
		return Palette{Primary: "#ff80ab", Dark: "#c94f7c", Light: "#ffe1ec"}
	case ThemePurple:
		return Palette{Primary: "#b388ff", Dark: "#805acb", Light: "#e9ddff"}
	case ThemeGreen:
		return Palette{Primary: "#69f0ae", Dark: "#2bbd7e", Light: "#e0f7ef"}
	default:
		return Palette{Primary: "#4fc3f7", Dark: "#0093c4", Light: "#e6f7ff"}
	}
}

// Settings — документ waterSettings.
type Settings struct {
	DisplayName             string `json:"name"`
	DailyGoalMl             int    `json:"dailyGoal"`
	ReminderEnabled         bool   `json:"reminder"`
	ReminderIntervalMinutes int    `json:"reminderInterval"`
	Theme                   Theme  `json:"theme"`
}

func DefaultSettings(name string) Settings {
	if name == "" {
		name = DefaultDisplayName
	}
	return Settings{
		DisplayName:             name,
		DailyGoalMl:             DefaultDailyGoal,
		ReminderEnabled:         true,
		ReminderIntervalMinutes: DefaultReminderInterval,
		Theme:                   ThemeDefault,
	}
}
