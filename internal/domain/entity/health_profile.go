package entity

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// HealthProfile is the server-side copy of a completed intake, one row per user.
type HealthProfile struct {
	UserID    string         `gorm:"type:varchar(255);primaryKey" json:"user_id"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthProfile) TableName() string {
	return "health_profiles"
}

// Profile decodes the stored JSON document.
func (h *HealthProfile) Profile() (*Profile, error) {
	p := NewProfile()
	if err := json.Unmarshal(h.Data, p); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}
