package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationCategoryAttendance = "attendance"
)

type NotificationModel struct {
	NotificationId uuid.UUID `gorm:"type:uuid;primaryKey;column:notification_id" json:"notification_id"`

	NotificationUserId   uuid.UUID         `gorm:"type:uuid;not null;index;column:notification_user_id" json:"notification_user_id"`
	NotificationCategory string            `gorm:"not null;column:notification_category"                json:"notification_category"`
	NotificationTitle    string            `gorm:"not null;column:notification_title"                   json:"notification_title"`
	NotificationBody     string            `gorm:"not null;column:notification_body"                    json:"notification_body"`
	NotificationMetadata datatypes.JSONMap `gorm:"column:notification_metadata"                         json:"notification_metadata,omitempty"`

	NotificationIsRead    bool      `gorm:"not null;default:false;column:notification_is_read" json:"notification_is_read"`
	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime"      json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationId == uuid.Nil {
		m.NotificationId = uuid.New()
	}
	return nil
}
