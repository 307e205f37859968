package models

// HistoryStore: дата (yyyy-MM-dd) -> час ("00".."23") -> объёмы в мл в порядке записи.
// Отсутствие ключа означает ноль; явных нулевых записей не бывает.
type HistoryStore map[string]map[string][]int

type BestDay struct {
	Date   string `json:"date"`
	Amount int    `json:"amount"`
}

// TrackerState — документ waterData. Имена полей совместимы с ранее сохранёнными данными.
type TrackerState struct {
	History      HistoryStore `json:"history"`
	Streak       int          `json:"streak"`
	BestDay      *BestDay     `json:"bestDay"`
	Achievements []string     `json:"achievements"`
}

func NewTrackerState() TrackerState {
	return TrackerState{
		History:      HistoryStore{},
		Streak:       0,
		BestDay:      nil,
		Achievements: []string{},
	}
}

// Clone возвращает глубокую копию, чтобы снимки не делили карты с живым состоянием.
func (s TrackerState) Clone() TrackerState {
	out := TrackerState{
		History:      make(HistoryStore, len(s.History)),
		Streak:       s.Streak,
		Achievements: append([]string{}, s.Achievements...),
	}
	for date, hours := range s.History {
		h := make(map[string][]int, len(hours))
		for hour, amounts := range hours {
			h[hour] = append([]int{}, amounts...)
		}
		out.History[date] = h
	}
	if s.BestDay != nil {
		bd := *s.BestDay
		out.BestDay = &bd
	}
	return out
}

func (s TrackerState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
