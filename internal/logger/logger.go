package logger

import (
	"os"

	"go.uber.org/zap"
)

var log *zap.Logger

// Init строит глобальный логгер. APP_ENV=dev включает человекочитаемый вывод.
func Init() error {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "dev" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L возвращает логгер; до Init отдаёт no-op, чтобы пакеты можно было тестировать без инициализации.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
