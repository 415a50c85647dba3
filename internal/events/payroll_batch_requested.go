package events

import (
	"encoding/json"
	"time"
)

const PayrollBatchRequestedTopic = "hr.payroll.batch.requested.v1"

// PayrollBatchRequestedEvent asks the consumer to run a payroll batch
// out of band. Request carries the same JSON body the synchronous
// batch endpoint accepts.
type PayrollBatchRequestedEvent struct {
	EventType   string          `json:"event_type"`
	BatchID     string          `json:"batch_id"`
	RequestedBy string          `json:"requested_by"`
	Request     json.RawMessage `json:"request"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
