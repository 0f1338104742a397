// file: internals/features/gym/attendance/service/report_service.go
package service

import (
	"time"

	"github.com/google/uuid"

	"gymku_backend/internals/features/gym/attendance/model"
)

/* ===================== VIEWS ===================== */

type SessionSummary struct {
	SessionNumber int       `json:"session_number"`
	SessionDate   time.Time `json:"session_date"`
	TotalStudents int64     `json:"total_students"`
	PresentCount  int64     `json:"present_count"`
}

type ClassReport struct {
	ClassID       uuid.UUID                           `json:"class_id"`
	TotalSessions int                                 `json:"total_sessions"`
	Sessions      []SessionSummary                    `json:"sessions"`
	Rows          []model.ClassSessionAttendanceModel `json:"rows"`
}

/* ===================== QUERIES ===================== */

// SessionSummaries mengelompokkan baris absensi per nomor sesi.
// Placeholder dikecualikan dari semua hitungan: baris itu cuma penanda
// "sesi pernah dibuka tanpa peserta berbayar".
func (s *Service) SessionSummaries(classID uuid.UUID) ([]SessionSummary, error) {
	var rows []SessionSummary
	err := s.DB.Model(&model.ClassSessionAttendanceModel{}).
		Select(`class_session_attendance_session_number AS session_number,
		        MIN(class_session_attendance_session_date) AS session_date,
		        COUNT(*) AS total_students,
		        SUM(CASE WHEN class_session_attendance_is_present THEN 1 ELSE 0 END) AS present_count`).
		Where("class_session_attendance_class_id = ?", classID).
		Where("class_session_attendance_row_kind = ?", model.RowKindReal).
		Group("class_session_attendance_session_number").
		Order("class_session_attendance_session_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		// kelas tanpa baris = laporan kosong, bukan error
		rows = []SessionSummary{}
	}
	return rows, nil
}

// BuildClassReport: ringkasan per sesi + baris mentah untuk drill-down.
// TotalSessions = jumlah nomor sesi yang pernah terobservasi (termasuk
// sesi placeholder), bukan cap kelas.
func (s *Service) BuildClassReport(classID uuid.UUID) (*ClassReport, error) {
	summaries, err := s.SessionSummaries(classID)
	if err != nil {
		return nil, err
	}

	var distinctSessions int64
	if err := s.DB.Model(&model.ClassSessionAttendanceModel{}).
		Where("class_session_attendance_class_id = ?", classID).
		Distinct("class_session_attendance_session_number").
		Count(&distinctSessions).Error; err != nil {
		return nil, err
	}

	rows, err := s.ListSessionRowsAll(classID)
	if err != nil {
		return nil, err
	}

	return &ClassReport{
		ClassID:       classID,
		TotalSessions: int(distinctSessions),
		Sessions:      summaries,
		Rows:          rows,
	}, nil
}

// ListSessionRows: baris real satu sesi (urut per user supaya stabil).
func (s *Service) ListSessionRows(classID uuid.UUID, sessionNumber int) ([]model.ClassSessionAttendanceModel, error) {
	var rows []model.ClassSessionAttendanceModel
	err := s.DB.
		Where("class_session_attendance_class_id = ?", classID).
		Where("class_session_attendance_session_number = ?", sessionNumber).
		Where("class_session_attendance_row_kind = ?", model.RowKindReal).
		Order("class_session_attendance_user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSessionRowsAll: semua baris real kelas, urut sesi lalu user.
func (s *Service) ListSessionRowsAll(classID uuid.UUID) ([]model.ClassSessionAttendanceModel, error) {
	var rows []model.ClassSessionAttendanceModel
	err := s.DB.
		Where("class_session_attendance_class_id = ?", classID).
		Where("class_session_attendance_row_kind = ?", model.RowKindReal).
		Order("class_session_attendance_session_number ASC, class_session_attendance_user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListClassRows: dump mentah semua baris (placeholder ikut, dengan
// row_kind tampak) untuk layar admin.
func (s *Service) ListClassRows(classID uuid.UUID) ([]model.ClassSessionAttendanceModel, error) {
	var rows []model.ClassSessionAttendanceModel
	err := s.DB.
		Where("class_session_attendance_class_id = ?", classID).
		Order("class_session_attendance_session_number ASC, class_session_attendance_user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
