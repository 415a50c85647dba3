package app

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kashiee/HRMS/internal/messaging/kafka/producer"
	"github.com/kashiee/HRMS/internal/shared/connection"
	"github.com/kashiee/HRMS/internal/taxyear"
)

// BuildApp wires the payroll engine behind the HTTP API. Redis and
// Kafka are optional: without Redis the batch endpoint loses
// idempotency replay, without Kafka no events leave the process.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	years, err := buildTaxYears(logger)
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency replay disabled")
	}

	var publisher producer.Publisher = producer.NopPublisher{}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer, err := connection.ConnectKafkaWithRetry(broker, 5)
		if err != nil {
			return err
		}
		publisher = producer.NewKafkaPublisher(writer)
	} else {
		logger.Warn("KAFKA_BROKER not set, payroll events disabled")
	}

	registerModules(router, years, publisher, rdb, batchWorkers(logger))

	return nil
}

// buildTaxYears starts from the built-in tables and overlays any YAML
// tables found under TAX_YEAR_CONFIG_DIR. A file for an existing year
// replaces it, which is how rate corrections ship without a rebuild.
func buildTaxYears(logger *zap.Logger) (*taxyear.Registry, error) {
	registry := taxyear.NewRegistry()

	dir := os.Getenv("TAX_YEAR_CONFIG_DIR")
	if dir == "" {
		return registry, nil
	}

	configs, err := taxyear.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, cfg := range configs {
		if err := registry.Register(cfg); err != nil {
			return nil, err
		}
	}

	logger.Info("tax year tables loaded",
		zap.String("dir", dir),
		zap.Strings("years", registry.Years()),
	)
	return registry, nil
}

func batchWorkers(logger *zap.Logger) int {
	raw := os.Getenv("PAYROLL_BATCH_WORKERS")
	if raw == "" {
		return 0
	}
	workers, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("invalid PAYROLL_BATCH_WORKERS, using default", zap.String("value", raw))
		return 0
	}
	return workers
}
