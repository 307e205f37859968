package tracker

import "time"

var DefaultTips = []string{
	"Достаточно воды в течение дня — это увлажнённая кожа, бодрый обмен веществ и крепкий иммунитет!",
	"Исследования показывают: умеренное питьё помогает снять головную боль и усталость.",
	"Перед тем как пить, сделай маленький глоток, а потом пей спокойно.",
	"Стакан воды сразу после пробуждения помогает организму проснуться.",
	"Пей понемногу за полчаса до и после тренировки — так легче восстановиться.",
	"Долгая работа за экраном сушит глаза, вода помогает справиться с этим.",
	"Стакан воды перед едой даёт чувство сытости и помогает не переедать.",
	"Пей маленькими глотками и не выпивай много воды за один раз.",
}

// TipFor выбирает совет дня по номеру дня в году, чтобы каждый день совет менялся.
func TipFor(now time.Time, tips []string) string {
	if len(tips) == 0 {
		tips = DefaultTips
	}
	return tips[now.YearDay()%len(tips)]
}
