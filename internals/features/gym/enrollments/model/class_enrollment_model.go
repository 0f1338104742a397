package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCancelled = "cancelled"
)

type ClassEnrollmentModel struct {
	ClassEnrollmentId uuid.UUID `gorm:"type:uuid;primaryKey;column:class_enrollment_id" json:"class_enrollment_id"`

	ClassEnrollmentClassId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_enrollment_member;column:class_enrollment_class_id" json:"class_enrollment_class_id"`
	ClassEnrollmentUserId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_enrollment_member;column:class_enrollment_user_id"  json:"class_enrollment_user_id"`

	// Status pembayaran dimiliki layanan commerce; di sini hanya dibaca
	// untuk menentukan entitlement saat sesi dibuka.
	ClassEnrollmentPaymentStatus bool   `gorm:"not null;default:false;column:class_enrollment_payment_status" json:"class_enrollment_payment_status"`
	ClassEnrollmentStatus        string `gorm:"not null;default:'active';column:class_enrollment_status"        json:"class_enrollment_status"`

	ClassEnrollmentCreatedAt time.Time      `gorm:"column:class_enrollment_created_at;autoCreateTime" json:"class_enrollment_created_at"`
	ClassEnrollmentUpdatedAt *time.Time     `gorm:"column:class_enrollment_updated_at;autoUpdateTime" json:"class_enrollment_updated_at,omitempty"`
	ClassEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:class_enrollment_deleted_at;index"          json:"class_enrollment_deleted_at,omitempty"`
}

func (ClassEnrollmentModel) TableName() string { return "class_enrollments" }

func (m *ClassEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassEnrollmentId == uuid.Nil {
		m.ClassEnrollmentId = uuid.New()
	}
	return nil
}
