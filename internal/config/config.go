package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

type Config struct {
	DB          DBConfig
	TGtoken     string
	OwnerChatID int64
	DisplayName string
	Location    *time.Location
	HTTPAddr    string
	Presets     Presets
}

type DBConfig struct {
	Driver  string
	Path    string
	DataDir string
}

func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system env")
	}

	cfg := &Config{
		DB: DBConfig{
			Driver:  getEnvDefault("STORE_DRIVER", DriverSQLite),
			Path:    getEnvDefault("DB_PATH", "dailysip.db"),
			DataDir: getEnvDefault("DATA_DIR", "data"),
		},
		TGtoken:     getEnv("TG_TOKEN", log),
		OwnerChatID: parseChatID(getEnv("OWNER_CHAT_ID", log), log),
		DisplayName: getEnvDefault("DISPLAY_NAME", ""),
		Location:    parseLocation(getEnvDefault("TIMEZONE", ""), log),
		HTTPAddr:    getEnvDefault("HTTP_ADDR", ":8080"),
		Presets:     DefaultPresets(),
	}

	if cfg.DB.Driver != DriverSQLite && cfg.DB.Driver != DriverFile {
		log.Warn("Неизвестный STORE_DRIVER, используем sqlite", zap.String("driver", cfg.DB.Driver))
		cfg.DB.Driver = DriverSQLite
	}

	if path := getEnvDefault("PRESETS_FILE", ""); path != "" {
		p, err := LoadPresets(path)
		if err != nil {
			log.Warn("Не удалось прочитать файл пресетов, используем стандартные", zap.String("path", path), zap.Error(err))
		} else {
			cfg.Presets = *p
		}
	}

	return cfg
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

// getEnvDefault отдаёт def только если переменная не задана; пустое значение сохраняется как есть.
func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func parseChatID(s string, log *zap.Logger) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Error("OWNER_CHAT_ID должен быть числом", zap.String("value", s), zap.Error(err))
		panic("invalid OWNER_CHAT_ID: " + s)
	}
	return id
}

func parseLocation(name string, log *zap.Logger) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("Неизвестная TIMEZONE, используем локальное время", zap.String("tz", name), zap.Error(err))
		return time.Local
	}
	return loc
}
