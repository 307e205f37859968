package tracker

import (
	"time"

	"DailySipBot/internal/models"
)

// UpdateStreak применяет правило серии к событию, записанному в момент now.
// todayHadBuckets — была ли у сегодняшнего дня хотя бы одна часовая корзина ДО вставки.
// Считается именно наличие корзины, а не валидность объёмов в ней.
func UpdateStreak(st *models.TrackerState, now time.Time, todayHadBuckets bool) {
	if st.Streak <= 0 {
		st.Streak = 1
		return
	}
	if todayHadBuckets {
		return
	}
	yesterday := DateKey(now.AddDate(0, 0, -1))
	if dayHasRecords(st.History[yesterday]) {
		st.Streak++
	} else {
		st.Streak = 1
	}
}

// UpdateBestDay вызывается после вставки; сегодняшний итог внутри дня только растёт.
func UpdateBestDay(st *models.TrackerState, date string, todayTotal int) {
	if st.BestDay == nil || todayTotal > st.BestDay.Amount {
		st.BestDay = &models.BestDay{Date: date, Amount: todayTotal}
	}
}

func dayHasRecords(hours map[string][]int) bool {
	for _, amounts := range hours {
		if len(amounts) > 0 {
			return true
		}
	}
	return false
}
