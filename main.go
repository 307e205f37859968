package main

import (
	"os"
	"os/signal"
	"syscall"

	"DailySipBot/internal/api"
	"DailySipBot/internal/bot"
	"DailySipBot/internal/clock"
	"DailySipBot/internal/config"
	"DailySipBot/internal/db"
	"DailySipBot/internal/handlers"
	"DailySipBot/internal/logger"
	"DailySipBot/internal/reminder"
	"DailySipBot/internal/store"
	"DailySipBot/internal/tracker"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}

	log := logger.L()
	log.Info("Инициализация логгера успешна")
	cfg := config.Load(log)

	kv := openStore(cfg, log)
	docs := store.NewDocuments(kv, log, cfg.DisplayName)

	svc, err := tracker.NewService(docs, clock.Real{Loc: cfg.Location}, log)
	if err != nil {
		log.Error("Не удалось загрузить данные трекера", zap.Error(err))
		os.Exit(1)
	}

	b := bot.BotInit(cfg, log, svc)
	if b == nil {
		os.Exit(1)
	}

	presets := cfg.Presets.Amounts
	notifier := handlers.NewReminderNotifier(b, cfg.OwnerChatID, presets[len(presets)/2])
	sched := reminder.New(svc, notifier, log, cron.WithLocation(cfg.Location))
	if err := sched.Reschedule(svc.Settings()); err != nil {
		log.Error("Не удалось запланировать напоминания", zap.Error(err))
	}
	if err := sched.AddWeeklySummary(handlers.SendWeeklyStats(b, cfg.OwnerChatID, svc, log)); err != nil {
		log.Error("Не удалось запланировать еженедельную сводку", zap.Error(err))
	}
	svc.OnSettingsChange(sched.OnSettingsChange)
	sched.Start()

	if cfg.HTTPAddr != "" {
		hub := api.NewHub(log)
		svc.AddRenderer(hub)
		router := api.NewRouter(api.NewController(svc, hub, cfg.Presets.Tips, log))
		go func() {
			log.Info("Widget API started", zap.String("addr", cfg.HTTPAddr))
			if err := router.Run(cfg.HTTPAddr); err != nil {
				log.Error("Widget API stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info("Остановка бота")
		sched.Stop()
		b.Stop()
	}()

	log.Info("Bot started")
	b.Start()
	_ = log.Sync()
}

func openStore(cfg *config.Config, log *zap.Logger) store.KV {
	if cfg.DB.Driver == config.DriverFile {
		kv, err := store.NewFileKV(cfg.DB.DataDir)
		if err != nil {
			log.Error("Не удалось открыть каталог данных", zap.String("dir", cfg.DB.DataDir), zap.Error(err))
			os.Exit(1)
		}
		log.Info("Хранилище: JSON-файлы", zap.String("dir", cfg.DB.DataDir))
		return kv
	}

	db.ConnectDB(cfg, log)
	db.Migrate(log)
	return store.NewGormKV(db.DB)
}
