package db

import (
	"os"

	"DailySipBot/internal/models"

	"go.uber.org/zap"
)

func Migrate(log *zap.Logger) {
	if err := DB.AutoMigrate(&models.Document{}); err != nil {
		log.Error("Ошибка при миграции таблиц", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Автомиграция таблиц завершена успешно")
}
