package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Jenis baris absensi. Placeholder dipakai saat sesi dibuka tanpa satu
// pun peserta berbayar (bookkeeping), dan tidak pernah ikut agregasi.
const (
	RowKindReal        = "real"
	RowKindPlaceholder = "placeholder"
)

// Metode check-in, untuk audit: ditandai trainer vs self-service QR.
const (
	CheckinMethodTrainer = "trainer"
	CheckinMethodQR      = "qr"
)

type ClassSessionAttendanceModel struct {
	ClassSessionAttendanceId uuid.UUID `gorm:"type:uuid;primaryKey;column:class_session_attendance_id" json:"class_session_attendance_id"`

	// Kunci komposit: satu baris per (kelas, user, nomor sesi).
	ClassSessionAttendanceClassId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_session_attendance_key;column:class_session_attendance_class_id"  json:"class_session_attendance_class_id"`
	ClassSessionAttendanceUserId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_session_attendance_key;column:class_session_attendance_user_id"   json:"class_session_attendance_user_id"`
	ClassSessionAttendanceSessionNumber int       `gorm:"not null;uniqueIndex:uq_class_session_attendance_key;column:class_session_attendance_session_number"      json:"class_session_attendance_session_number"`

	ClassSessionAttendanceSessionDate time.Time `gorm:"not null;column:class_session_attendance_session_date" json:"class_session_attendance_session_date"`

	ClassSessionAttendanceIsPresent   bool       `gorm:"not null;default:false;column:class_session_attendance_is_present" json:"class_session_attendance_is_present"`
	ClassSessionAttendanceCheckinTime *time.Time `gorm:"column:class_session_attendance_checkin_time"                      json:"class_session_attendance_checkin_time,omitempty"`
	ClassSessionAttendanceNotes       string     `gorm:"not null;default:'';column:class_session_attendance_notes"         json:"class_session_attendance_notes"`

	ClassSessionAttendanceRowKind       string `gorm:"not null;default:'real';column:class_session_attendance_row_kind"   json:"class_session_attendance_row_kind"`
	ClassSessionAttendanceCheckinMethod string `gorm:"not null;default:'';column:class_session_attendance_checkin_method" json:"class_session_attendance_checkin_method"`

	// isLocked = absensi difinalkan trainer; markedAt = waktu lock pertama
	// (tidak direset saat re-lock).
	ClassSessionAttendanceIsLocked bool       `gorm:"not null;default:false;column:class_session_attendance_is_locked" json:"class_session_attendance_is_locked"`
	ClassSessionAttendanceMarkedAt *time.Time `gorm:"column:class_session_attendance_marked_at"                        json:"class_session_attendance_marked_at,omitempty"`

	// Audit trail ringan (override admin, dsb.)
	ClassSessionAttendanceMeta datatypes.JSONMap `gorm:"column:class_session_attendance_meta" json:"class_session_attendance_meta,omitempty"`

	ClassSessionAttendanceCreatedAt time.Time      `gorm:"column:class_session_attendance_created_at;autoCreateTime" json:"class_session_attendance_created_at"`
	ClassSessionAttendanceUpdatedAt *time.Time     `gorm:"column:class_session_attendance_updated_at;autoUpdateTime" json:"class_session_attendance_updated_at,omitempty"`
	ClassSessionAttendanceDeletedAt gorm.DeletedAt `gorm:"column:class_session_attendance_deleted_at;index"          json:"class_session_attendance_deleted_at,omitempty"`
}

func (ClassSessionAttendanceModel) TableName() string { return "class_session_attendances" }

func (m *ClassSessionAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionAttendanceId == uuid.Nil {
		m.ClassSessionAttendanceId = uuid.New()
	}
	if m.ClassSessionAttendanceRowKind == "" {
		m.ClassSessionAttendanceRowKind = RowKindReal
	}
	return nil
}
