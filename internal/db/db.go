package db

import (
	"os"
	"path/filepath"

	"DailySipBot/internal/config"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB(cfg *config.Config, log *zap.Logger) {
	if dir := filepath.Dir(cfg.DB.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("Не удалось создать каталог для базы", zap.String("dir", dir), zap.Error(err))
			os.Exit(1)
		}
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DB.Path), &gorm.Config{
		// поиск отсутствующего документа — обычный путь, не ошибка
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Error("Ошибка подключения к базе данных", zap.String("path", cfg.DB.Path), zap.Error(err))
		os.Exit(1)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Error("Ошибка получения sql.DB", zap.Error(err))
		os.Exit(1)
	}
	// sqlite пишет из одного соединения
	sqlDB.SetMaxOpenConns(1)

	log.Info("Подключение к базе данных успешно", zap.String("path", cfg.DB.Path))
}
