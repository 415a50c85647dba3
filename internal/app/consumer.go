package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kashiee/HRMS/internal/events"
	"github.com/kashiee/HRMS/internal/messaging/kafka/consumer"
	"github.com/kashiee/HRMS/internal/messaging/kafka/producer"
	"github.com/kashiee/HRMS/internal/payroll"
	"github.com/kashiee/HRMS/internal/shared/connection"
)

// RunConsumer processes payroll batch requests arriving over Kafka.
// Completed runs are announced back through the same broker, so the
// consumer carries a writer alongside its reader.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	years, err := buildTaxYears(logger)
	if err != nil {
		return err
	}

	writer, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	payrollService := payroll.NewService(years, producer.NewKafkaPublisher(writer), batchWorkers(logger))

	topic := os.Getenv("KAFKA_BATCH_TOPIC")
	if topic == "" {
		topic = events.PayrollBatchRequestedTopic
	}
	groupID := os.Getenv("KAFKA_GROUP_ID")
	if groupID == "" {
		groupID = "hrms-payroll-batch"
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollBatchRequested(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
