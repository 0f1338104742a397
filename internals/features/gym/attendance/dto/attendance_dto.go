// file: internals/features/gym/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "gymku_backend/internals/features/gym/attendance/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Open session (POST)
type OpenSessionRequest struct {
	ClassID       uuid.UUID `json:"class_id"       validate:"required"`
	SessionNumber int       `json:"session_number" validate:"required,min=1"`

	// "YYYY-MM-DD" atau RFC3339; dinormalisasi jadi tanggal saja
	SessionDate string `json:"session_date" validate:"required"`

	// Khusus admin: buka sesi kosong sebagai placeholder bookkeeping
	AllowEmpty bool `json:"allow_empty"`
}

// Mark attendance (POST, upsert)
type MarkAttendanceRequest struct {
	ClassID       uuid.UUID `json:"class_id"       validate:"required"`
	UserID        uuid.UUID `json:"user_id"        validate:"required"`
	SessionNumber int       `json:"session_number" validate:"required,min=1"`

	// Klien lama kadang kirim string "true"/"1"; dinormalisasi di
	// controller via helper.ParseBoolLoose sebelum menyentuh service.
	IsPresent any `json:"is_present" validate:"required"`

	SessionDate *string `json:"session_date" validate:"omitempty"`
	Notes       *string `json:"notes"        validate:"omitempty,max=500"`
}

// Override status (PATCH /:id/status) — jalur tembus lock
type OverrideStatusRequest struct {
	IsPresent any `json:"is_present" validate:"required"`
}

// Lock / unlock session (POST)
type LockSessionRequest struct {
	ClassID     uuid.UUID `json:"class_id"     validate:"required"`
	SessionDate string    `json:"session_date" validate:"required"`
}

// QR check-in (POST, member)
type QRCheckinRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
	QRToken string    `json:"qr_token" validate:"required"`
}

// Issue QR token (POST, trainer/admin)
type IssueQRTokenRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AttendanceResponse struct {
	ClassSessionAttendanceId            uuid.UUID  `json:"class_session_attendance_id"`
	ClassSessionAttendanceClassId       uuid.UUID  `json:"class_session_attendance_class_id"`
	ClassSessionAttendanceUserId        uuid.UUID  `json:"class_session_attendance_user_id"`
	ClassSessionAttendanceSessionNumber int        `json:"class_session_attendance_session_number"`
	ClassSessionAttendanceSessionDate   time.Time  `json:"class_session_attendance_session_date"`
	ClassSessionAttendanceIsPresent     bool       `json:"class_session_attendance_is_present"`
	ClassSessionAttendanceCheckinTime   *time.Time `json:"class_session_attendance_checkin_time,omitempty"`
	ClassSessionAttendanceNotes         string     `json:"class_session_attendance_notes"`
	ClassSessionAttendanceRowKind       string     `json:"class_session_attendance_row_kind"`
	ClassSessionAttendanceCheckinMethod string     `json:"class_session_attendance_checkin_method"`

	// isLocked/markedAt selalu ada di response (default false/null)
	ClassSessionAttendanceIsLocked bool       `json:"class_session_attendance_is_locked"`
	ClassSessionAttendanceMarkedAt *time.Time `json:"class_session_attendance_marked_at"`
}

type OpenSessionResponse struct {
	Created       int  `json:"created"`
	IsLastSession bool `json:"is_last_session"`
	Placeholder   bool `json:"placeholder,omitempty"`
}

type LockSessionResponse struct {
	Locked int64 `json:"locked"`
}

type IssueQRTokenResponse struct {
	QRToken   string    `json:"qr_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func FromAttendanceModel(mdl m.ClassSessionAttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ClassSessionAttendanceId:            mdl.ClassSessionAttendanceId,
		ClassSessionAttendanceClassId:       mdl.ClassSessionAttendanceClassId,
		ClassSessionAttendanceUserId:        mdl.ClassSessionAttendanceUserId,
		ClassSessionAttendanceSessionNumber: mdl.ClassSessionAttendanceSessionNumber,
		ClassSessionAttendanceSessionDate:   mdl.ClassSessionAttendanceSessionDate,
		ClassSessionAttendanceIsPresent:     mdl.ClassSessionAttendanceIsPresent,
		ClassSessionAttendanceCheckinTime:   mdl.ClassSessionAttendanceCheckinTime,
		ClassSessionAttendanceNotes:         mdl.ClassSessionAttendanceNotes,
		ClassSessionAttendanceRowKind:       mdl.ClassSessionAttendanceRowKind,
		ClassSessionAttendanceCheckinMethod: mdl.ClassSessionAttendanceCheckinMethod,
		ClassSessionAttendanceIsLocked:      mdl.ClassSessionAttendanceIsLocked,
		ClassSessionAttendanceMarkedAt:      mdl.ClassSessionAttendanceMarkedAt,
	}
}

func FromAttendanceModels(mdls []m.ClassSessionAttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, FromAttendanceModel(mdl))
	}
	return out
}
