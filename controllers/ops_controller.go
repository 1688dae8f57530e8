package controllers

import (
	"net/http"
	"time"

	"cardProject/middleware"
	"cardProject/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OpsController обслуживает служебные эндпоинты: проверку
// работоспособности и метрики приложения
type OpsController struct {
	db      *gorm.DB
	metrics *utils.Metrics
	started time.Time
}

// NewOpsController создает новый экземпляр OpsController
func NewOpsController(db *gorm.DB, metrics *utils.Metrics) *OpsController {
	return &OpsController{
		db:      db,
		metrics: metrics,
		started: time.Now(),
	}
}

// Engine собирает gin-приложение со служебными маршрутами
func (c *OpsController) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RateLimit())
	engine.Use(middleware.CORSMiddleware())

	engine.GET("/health", c.health)
	engine.GET("/metrics", c.showMetrics)

	return engine
}

// health проверяет доступность базы данных
func (c *OpsController) health(ctx *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	if sqlDB, err := c.db.DB(); err != nil {
		status = "degraded"
		dbStatus = "unavailable"
	} else if err := sqlDB.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unavailable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(c.started).String(),
	})
}

// showMetrics возвращает снимок метрик приложения
func (c *OpsController) showMetrics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.metrics.GetMetricsSnapshot())
}
