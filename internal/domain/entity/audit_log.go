package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only trail of changes to a user's health data
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string            `gorm:"type:varchar(255);not null;index" json:"user_id"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionProfileSave       = "profile.save"
	AuditActionIntakeComplete    = "intake.complete"
	AuditActionDocumentCreate    = "document.create"
	AuditActionDocumentDelete    = "document.delete"
	AuditActionAppointmentCancel = "appointment.cancel"
)
