package models

import (
	"time"

	"gorm.io/datatypes"
)

type CollaboratorCallStatus string

const (
	CollaboratorCallStatusSucceeded CollaboratorCallStatus = "succeeded"
	CollaboratorCallStatusFailed    CollaboratorCallStatus = "failed"
)

// CollaboratorCallLog is the audit trail of one post-commit collaborator call attempt.
type CollaboratorCallLog struct {
	ID            string                 `gorm:"column:id;type:uuid;primary_key" json:"id"`
	PaymentID     int64                  `gorm:"column:payment_id;not null;index:idx_call_log_payment" json:"payment_id"`
	Collaborator  string                 `gorm:"column:collaborator;type:varchar(32);not null" json:"collaborator"`
	Event         string                 `gorm:"column:event;type:varchar(64);not null" json:"event"`
	CorrelationID string                 `gorm:"column:correlation_id;type:varchar(128)" json:"correlation_id"`
	Request       datatypes.JSON         `gorm:"column:request;type:jsonb" json:"request"`
	Status        CollaboratorCallStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Error         *string                `gorm:"column:error;type:text" json:"error"`
	DurationMs    int64                  `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (CollaboratorCallLog) TableName() string { return "collaborator_call_log" }
