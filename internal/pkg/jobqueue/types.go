package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeBillingSweep     JobType = "billing_sweep"
	JobTypeDeliveryReminder JobType = "delivery_reminder"
	JobTypePaymentNotice    JobType = "payment_notice"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// BillingSweepJobPayload asks a worker to bill every subscription due on or
// before the given day.
type BillingSweepJobPayload struct {
	Day time.Time `json:"day"`
}

// ToMap converts the payload to a map for storage
func (p BillingSweepJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"day": p.Day,
	}
}

// BillingSweepJobPayloadFromMap creates a payload from a map
func BillingSweepJobPayloadFromMap(data map[string]interface{}) (*BillingSweepJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload BillingSweepJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// PaymentNoticeJobPayload carries a settled payment whose outcome should be
// mailed to the customer.
type PaymentNoticeJobPayload struct {
	PaymentID uint `json:"payment_id"`
	Paid      bool `json:"paid"`
}

// ToMap converts the payload to a map for storage
func (p PaymentNoticeJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"payment_id": p.PaymentID,
		"paid":       p.Paid,
	}
}

// PaymentNoticeJobPayloadFromMap creates a payload from a map
func PaymentNoticeJobPayloadFromMap(data map[string]interface{}) (*PaymentNoticeJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload PaymentNoticeJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// DeliveryReminderJobPayload points at a delivery the customer should be
// reminded about.
type DeliveryReminderJobPayload struct {
	DeliveryID uint `json:"delivery_id"`
}

// ToMap converts the payload to a map for storage
func (p DeliveryReminderJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"delivery_id": p.DeliveryID,
	}
}

// DeliveryReminderJobPayloadFromMap creates a payload from a map
func DeliveryReminderJobPayloadFromMap(data map[string]interface{}) (*DeliveryReminderJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload DeliveryReminderJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks whether the job may be attempted again
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// MarkAsProcessing stamps the job as picked up by a worker
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted stamps the job as done
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed records the failure message
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errorMsg
	j.UpdatedAt = time.Now()
}

// MarkAsRetrying bumps the retry counter
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.RetryCount++
	j.UpdatedAt = time.Now()
}
