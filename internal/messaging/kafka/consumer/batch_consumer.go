package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kashiee/HRMS/internal/events"
	"github.com/kashiee/HRMS/internal/payroll"
	"github.com/kashiee/HRMS/internal/shared/apperror"
)

// ConsumePayrollBatchRequested runs payroll batches requested over
// Kafka. Undecodable and permanently invalid messages are committed
// so they cannot poison the partition; transient failures stay
// uncommitted for redelivery.
func ConsumePayrollBatchRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_batch")
	log.Info("payroll batch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll batch consumer stopped")
				return
			}
			log.Error("fetch payroll batch message failed", zap.Error(err))
			continue
		}

		var event events.PayrollBatchRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll batch event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		var req payroll.BatchPayrollRequest
		if err := json.Unmarshal(event.Request, &req); err != nil {
			log.Error("decode batch request payload failed",
				zap.String("batch_id", event.BatchID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		summary, err := payrollService.RunBatch(ctx, event.BatchID, event.RequestedBy, req)
		if err != nil {
			if apperror.HasCode(err, apperror.CodeValidationError) || apperror.HasCode(err, apperror.CodeConfigError) {
				log.Warn("payroll batch rejected, skipping",
					zap.String("batch_id", event.BatchID),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("run payroll batch failed",
				zap.String("batch_id", event.BatchID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll batch message failed", zap.Error(err))
			continue
		}

		log.Info("payroll batch completed",
			zap.String("batch_id", summary.BatchID),
			zap.String("tax_year", summary.TaxYear),
			zap.Int("requested", summary.Requested),
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed),
		)
	}
}
