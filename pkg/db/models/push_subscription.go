package models

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription stores one browser's web push endpoint.
type PushSubscription struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PlayerID  *uuid.UUID `gorm:"column:player_id;type:uuid;index" json:"playerId,omitempty"`
	Endpoint  string     `gorm:"column:endpoint;not null;unique" json:"endpoint"`
	P256DH    string     `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string     `gorm:"column:auth;not null" json:"auth"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
