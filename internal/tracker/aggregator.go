package tracker

import (
	"fmt"
	"math"
	"sort"
	"time"

	"DailySipBot/internal/models"
)

const (
	dateLayout = "2006-01-02"
	hoursInDay = 24
)

func DateKey(t time.Time) string { return t.Format(dateLayout) }

func HourKey(t time.Time) string { return fmt.Sprintf("%02d", t.Hour()) }

type AllTimeStats struct {
	TotalMl    int `json:"totalMl"`
	ActiveDays int `json:"activeDays"`
	AverageMl  int `json:"averageMl"`
}

type HourPoint struct {
	Hour    string `json:"hour"`
	TotalMl int    `json:"totalMl"`
}

// Aggregator — чистые подсчёты поверх истории, без побочных эффектов.
type Aggregator struct {
	history models.HistoryStore
}

func NewAggregator(h models.HistoryStore) Aggregator {
	return Aggregator{history: h}
}

func (a Aggregator) HourTotal(date, hour string) int {
	return sum(a.history[date][hour])
}

func (a Aggregator) DayTotal(date string) int {
	total := 0
	for _, amounts := range a.history[date] {
		total += sum(amounts)
	}
	return total
}

func (a Aggregator) AllTimeStats() AllTimeStats {
	var st AllTimeStats
	for date := range a.history {
		dayTotal := a.DayTotal(date)
		if dayTotal > 0 {
			st.ActiveDays++
			st.TotalMl += dayTotal
		}
	}
	if st.ActiveDays > 0 {
		st.AverageMl = int(math.Round(float64(st.TotalMl) / float64(st.ActiveDays)))
	}
	return st
}

// HourlySeries — 24 корзины дня в формате "HH:00" для почасового графика.
func (a Aggregator) HourlySeries(date string) []HourPoint {
	out := make([]HourPoint, 0, hoursInDay)
	for i := 0; i < hoursInDay; i++ {
		hour := fmt.Sprintf("%02d", i)
		out = append(out, HourPoint{Hour: hour + ":00", TotalMl: a.HourTotal(date, hour)})
	}
	return out
}

// Dates возвращает все даты истории по возрастанию (yyyy-MM-dd сортируется лексикографически).
func (a Aggregator) Dates() []string {
	dates := make([]string, 0, len(a.history))
	for d := range a.history {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func sum(amounts []int) int {
	total := 0
	for _, v := range amounts {
		total += v
	}
	return total
}
