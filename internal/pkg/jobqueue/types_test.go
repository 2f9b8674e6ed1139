package jobqueue

import (
	"testing"
	"time"
)

func TestJobLifecycleMarkers(t *testing.T) {
	job := &Job{
		ID:         "test-job",
		Type:       JobTypeBillingSweep,
		Status:     JobStatusPending,
		MaxRetries: DefaultMaxRetries,
	}

	job.MarkAsProcessing()
	if job.Status != JobStatusProcessing || job.ProcessedAt == nil {
		t.Errorf("after MarkAsProcessing: status=%s processedAt=%v", job.Status, job.ProcessedAt)
	}

	job.MarkAsFailed("boom")
	if job.Status != JobStatusFailed || job.ErrorMsg != "boom" {
		t.Errorf("after MarkAsFailed: status=%s err=%q", job.Status, job.ErrorMsg)
	}
	if !job.IsRetryable() {
		t.Error("fresh failure should be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		job.MarkAsRetrying()
	}
	if job.IsRetryable() {
		t.Errorf("exhausted job still retryable after %d retries", job.RetryCount)
	}

	job.MarkAsCompleted()
	if job.Status != JobStatusCompleted || job.CompletedAt == nil {
		t.Errorf("after MarkAsCompleted: status=%s completedAt=%v", job.Status, job.CompletedAt)
	}
}

func TestBillingSweepPayloadRoundTrip(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	payload := BillingSweepJobPayload{Day: day}

	restored, err := BillingSweepJobPayloadFromMap(payload.ToMap())
	if err != nil {
		t.Fatalf("BillingSweepJobPayloadFromMap() error = %v", err)
	}
	if !restored.Day.Equal(day) {
		t.Errorf("Day = %v, want %v", restored.Day, day)
	}
}

func TestPaymentNoticePayloadRoundTrip(t *testing.T) {
	payload := PaymentNoticeJobPayload{PaymentID: 42, Paid: true}
	restored, err := PaymentNoticeJobPayloadFromMap(payload.ToMap())
	if err != nil {
		t.Fatal(err)
	}
	if restored.PaymentID != 42 || !restored.Paid {
		t.Errorf("restored = %+v", restored)
	}
}
