package tracker

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// MaxAmountMl — верхняя граница одного приёма воды
	MaxAmountMl = 5000
	// MaxDailyGoalMl — верхняя граница дневной цели
	MaxDailyGoalMl = 20000
)

var (
	ErrInvalidAmount   = errors.New("invalid amount: must be a positive integer of ml, at most 5000")
	ErrInvalidSettings = errors.New("invalid settings")
)

// ParseAmount разбирает ввод пользователя: "250", "250ml", "250 мл".
func ParseAmount(raw string) (int, error) {
	n, ok := parseMl(raw)
	if !ok || n > MaxAmountMl {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

// ParseGoal разбирает дневную цель в том же формате, что и объём.
func ParseGoal(raw string) (int, error) {
	n, ok := parseMl(raw)
	if !ok || n > MaxDailyGoalMl {
		return 0, ErrInvalidSettings
	}
	return n, nil
}

func parseMl(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "ml")
	s = strings.TrimSuffix(s, "мл")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func validAmount(amountMl int) bool {
	return amountMl > 0 && amountMl <= MaxAmountMl
}
