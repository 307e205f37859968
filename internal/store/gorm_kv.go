package store

import (
	"errors"

	"DailySipBot/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormKV хранит документы в таблице documents (одна строка на ключ).
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (g *GormKV) Get(key string) ([]byte, bool, error) {
	var doc models.Document
	err := g.db.Where(&models.Document{Key: key}).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (g *GormKV) Put(key string, value []byte) error {
	var doc models.Document
	err := g.db.Where(&models.Document{Key: key}).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Нет записи — создаём
		doc = models.Document{Key: key, Value: datatypes.JSON(value)}
		return g.db.Create(&doc).Error
	}
	if err != nil {
		return err
	}
	doc.Value = datatypes.JSON(value)
	return g.db.Save(&doc).Error
}
