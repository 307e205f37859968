package tracker

import "math"

const (
	bottleNeckRatio = 0.7
	bottleNeckFill  = 65
	bottleMaxFill   = 70
)

// BottleFillPercent — косметическая нелинейная шкала бутылки: до 70% цели уровень растёт быстро,
// дальше медленно у горлышка и никогда не превышает 70%.
func BottleFillPercent(totalMl, goalMl int) int {
	if goalMl <= 0 || totalMl <= 0 {
		return 0
	}
	r := float64(totalMl) / float64(goalMl)
	var fill int
	if r <= bottleNeckRatio {
		fill = int(math.Round(r * (bottleNeckFill / bottleNeckRatio)))
	} else {
		fill = bottleNeckFill + int(math.Round((r-bottleNeckRatio)*((bottleMaxFill-bottleNeckFill)/(1-bottleNeckRatio))))
	}
	if fill > bottleMaxFill {
		fill = bottleMaxFill
	}
	return fill
}

// GoalPercent — процент выполнения цели, 0..100.
func GoalPercent(totalMl, goalMl int) int {
	if goalMl <= 0 {
		return 0
	}
	p := int(math.Round(float64(totalMl) / float64(goalMl) * 100))
	if p > 100 {
		return 100
	}
	return p
}
