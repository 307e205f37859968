package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"DailySipBot/internal/models"
	"DailySipBot/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	// виджет открывается локально из файла, Origin бывает любым
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	svc  *tracker.Service
	hub  *Hub
	tips []string
	log  *zap.Logger
}

func NewController(svc *tracker.Service, hub *Hub, tips []string, log *zap.Logger) *Controller {
	return &Controller{svc: svc, hub: hub, tips: tips, log: log}
}

func NewRouter(ctl *Controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(ctl.log))

	api := r.Group("/api")
	{
		api.GET("/today", ctl.Today)
		api.POST("/intake", ctl.RecordIntake)
		api.GET("/hours", ctl.Hours)
		api.GET("/week", ctl.Week)
		api.GET("/stats", ctl.Stats)
		api.GET("/achievements", ctl.Achievements)
		api.GET("/settings", ctl.GetSettings)
		api.PUT("/settings", ctl.UpdateSettings)
		api.DELETE("/data", ctl.Clear)
		api.GET("/tip", ctl.Tip)
		api.GET("/ws", ctl.WS)
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (ctl *Controller) Today(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.svc.Today(ctl.svc.Now()))
}

type intakeRequest struct {
	Amount json.RawMessage `json:"amount"`
	Custom bool            `json:"custom"`
}

// RecordIntake принимает amount числом или строкой, как его отдаёт поле ввода виджета.
func (ctl *Controller) RecordIntake(c *gin.Context) {
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := tracker.ParseAmount(strings.Trim(string(req.Amount), `"`))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := ctl.svc.Now()
	var snap tracker.Snapshot
	if req.Custom {
		snap, err = ctl.svc.RecordCustomIntake(amount, now)
	} else {
		snap, err = ctl.svc.RecordIntake(amount, now)
	}
	if errors.Is(err, tracker.ErrInvalidAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (ctl *Controller) Hours(c *gin.Context) {
	date := c.DefaultQuery("date", tracker.DateKey(ctl.svc.Now()))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-MM-dd"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "hours": ctl.svc.HourlySeries(date)})
}

func (ctl *Controller) Week(c *gin.Context) {
	days := tracker.DefaultSeriesDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}
	c.JSON(http.StatusOK, gin.H{"days": ctl.svc.WeeklySeries(days, ctl.svc.Now())})
}

func (ctl *Controller) Stats(c *gin.Context) {
	st := ctl.svc.State()
	c.JSON(http.StatusOK, gin.H{
		"stats":   ctl.svc.AllTimeStats(),
		"streak":  st.Streak,
		"bestDay": st.BestDay,
	})
}

func (ctl *Controller) Achievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": ctl.svc.Achievements()})
}

func (ctl *Controller) GetSettings(c *gin.Context) {
	s := ctl.svc.Settings()
	c.JSON(http.StatusOK, gin.H{"settings": s, "palette": s.Theme.Palette()})
}

func (ctl *Controller) UpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := ctl.svc.SaveSettings(req)
	if errors.Is(err, tracker.ErrInvalidSettings) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": saved, "palette": saved.Theme.Palette()})
}

func (ctl *Controller) Clear(c *gin.Context) {
	if err := ctl.svc.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (ctl *Controller) Tip(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tip": tracker.TipFor(ctl.svc.Now(), ctl.tips)})
}

// WS держит соединение виджета: сразу отдаёт текущий снимок, дальше снимки приходят через Hub.
func (ctl *Controller) WS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	first, err := snapshotEvent(ctl.svc.Today(ctl.svc.Now()))
	if err != nil {
		ctl.log.Error("Ошибка сериализации снимка", zap.Error(err))
		_ = conn.Close()
		return
	}

	cl := newWSClient(conn)
	cl.send <- first
	ctl.hub.register(cl)
	go ctl.hub.writePump(cl)

	// чтение заканчивается при закрытии клиента
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			ctl.hub.unregister(cl)
			return
		}
	}
}
