package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status kelas
const (
	ClassStatusUpcoming  = "upcoming"
	ClassStatusOngoing   = "ongoing"
	ClassStatusCompleted = "completed"
	ClassStatusCancelled = "cancelled"
)

type GymClassModel struct {
	GymClassId uuid.UUID `gorm:"type:uuid;primaryKey;column:gym_class_id" json:"gym_class_id"`

	GymClassName          string    `gorm:"not null;column:gym_class_name"                    json:"gym_class_name"`
	GymClassTrainerUserId uuid.UUID `gorm:"type:uuid;not null;column:gym_class_trainer_user_id" json:"gym_class_trainer_user_id"`

	// Jumlah sesi terjadwal (cap) dan progress sesi terakhir yang dibuka
	GymClassTotalSessions  int `gorm:"not null;column:gym_class_total_sessions"  json:"gym_class_total_sessions"`
	GymClassCurrentSession int `gorm:"not null;default:0;column:gym_class_current_session" json:"gym_class_current_session"`

	GymClassStatus string `gorm:"not null;default:'upcoming';column:gym_class_status" json:"gym_class_status"`

	GymClassCreatedAt time.Time      `gorm:"column:gym_class_created_at;autoCreateTime" json:"gym_class_created_at"`
	GymClassUpdatedAt *time.Time     `gorm:"column:gym_class_updated_at;autoUpdateTime" json:"gym_class_updated_at,omitempty"`
	GymClassDeletedAt gorm.DeletedAt `gorm:"column:gym_class_deleted_at;index"          json:"gym_class_deleted_at,omitempty"`
}

func (GymClassModel) TableName() string { return "gym_classes" }

func (m *GymClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.GymClassId == uuid.Nil {
		m.GymClassId = uuid.New()
	}
	return nil
}
