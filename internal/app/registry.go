package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kashiee/HRMS/internal/messaging/kafka/producer"
	"github.com/kashiee/HRMS/internal/middleware"
	"github.com/kashiee/HRMS/internal/payroll"
	"github.com/kashiee/HRMS/internal/taxyear"
)

func registerModules(
	router *gin.Engine,
	years *taxyear.Registry,
	publisher producer.Publisher,
	rdb *redis.Client,
	workers int,
) {
	// --- Services ---
	payrollService := payroll.NewService(years, publisher, workers)

	// --- Handlers ---
	payrollHandler := payroll.NewHandler(payrollService)
	if rdb != nil {
		payrollHandler = payroll.NewHandlerWithRedis(payrollService, rdb)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)
	{
		if rdb != nil {
			payroll.RegisterRoutes(api, payrollHandler, rdb)
		} else {
			payroll.RegisterRoutes(api, payrollHandler)
		}
	}
}
