// file: internals/features/gym/attendance/service/attendance_service.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/attendance/model"
	classModel "gymku_backend/internals/features/gym/classes/model"
	classService "gymku_backend/internals/features/gym/classes/service"
	enrollmentService "gymku_backend/internals/features/gym/enrollments/service"
	notificationModel "gymku_backend/internals/features/gym/notifications/model"
	notificationService "gymku_backend/internals/features/gym/notifications/service"
	"gymku_backend/internals/helpers/dbtime"
)

const bulkInsertBatchSize = 200

type Service struct {
	DB            *gorm.DB
	Classes       *classService.Service
	Enrollments   *enrollmentService.Service
	Notifications *notificationService.Service
}

func New(db *gorm.DB) *Service {
	return &Service{
		DB:            db,
		Classes:       classService.New(db),
		Enrollments:   enrollmentService.New(db),
		Notifications: notificationService.New(db),
	}
}

/* ===================== OPEN SESSION (materializer) ===================== */

type OpenSessionResult struct {
	Created       int  `json:"created"`
	IsLastSession bool `json:"is_last_session"`
	Placeholder   bool `json:"placeholder,omitempty"`
}

// OpenSession membuat satu baris absensi per peserta berbayar untuk
// (kelas, nomor sesi, tanggal). Snapshot entitlement diambil saat ini
// juga: peserta yang bayar belakangan tidak dapat baris untuk sesi yang
// sudah dibuka. allowEmpty (khusus admin) menulis satu baris placeholder
// alih-alih menolak sesi kosong.
func (s *Service) OpenSession(classID uuid.UUID, sessionNumber int, sessionDate time.Time, allowEmpty bool) (*OpenSessionResult, error) {
	var result OpenSessionResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 1) Kelas harus ada
		cls, err := s.Classes.GetClass(classID, tx)
		if err != nil {
			if errors.Is(err, classService.ErrClassNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		// 2) Kelas selesai → tolak
		if cls.GymClassStatus == classModel.ClassStatusCompleted {
			return ErrClassCompleted
		}

		// 3) Nomor sesi dalam jangkauan
		if sessionNumber < 1 || sessionNumber > cls.GymClassTotalSessions {
			return ErrSessionNumberOutOfRange
		}

		// 4) Belum pernah dibuka (placeholder ikut dihitung)
		var existing int64
		if err := tx.Model(&model.ClassSessionAttendanceModel{}).
			Where("class_session_attendance_class_id = ?", classID).
			Where("class_session_attendance_session_number = ?", sessionNumber).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrSessionAlreadyOpened
		}

		// 5) Snapshot peserta berbayar
		enrollees, err := s.Enrollments.ListPaidEnrollees(classID, tx)
		if err != nil {
			return err
		}

		sessionDate = dbtime.FloorDate(sessionDate)

		var rows []model.ClassSessionAttendanceModel
		if len(enrollees) == 0 {
			if !allowEmpty {
				return ErrNoPaidEnrollees
			}
			// Baris placeholder: sesi tercatat pernah dibuka, tapi tidak
			// pernah masuk hitungan agregat.
			rows = []model.ClassSessionAttendanceModel{{
				ClassSessionAttendanceClassId:       classID,
				ClassSessionAttendanceUserId:        uuid.New(), // slot sintetis, bukan user nyata
				ClassSessionAttendanceSessionNumber: sessionNumber,
				ClassSessionAttendanceSessionDate:   sessionDate,
				ClassSessionAttendanceRowKind:       model.RowKindPlaceholder,
			}}
			result.Placeholder = true
		} else {
			rows = make([]model.ClassSessionAttendanceModel, 0, len(enrollees))
			for _, userID := range enrollees {
				rows = append(rows, model.ClassSessionAttendanceModel{
					ClassSessionAttendanceClassId:       classID,
					ClassSessionAttendanceUserId:        userID,
					ClassSessionAttendanceSessionNumber: sessionNumber,
					ClassSessionAttendanceSessionDate:   sessionDate,
					ClassSessionAttendanceRowKind:       model.RowKindReal,
				})
			}
		}

		// Bulk insert dalam satu transaksi. Race dua pembukaan sesi yang
		// sama diselesaikan unique index komposit: yang kalah dapat 23505.
		if err := tx.CreateInBatches(&rows, bulkInsertBatchSize).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSessionAlreadyOpened
			}
			return err
		}
		result.Created = len(enrollees)

		// 6) Progress kelas: sesi terakhir → completed, selain itu majukan
		// current_session (upcoming → ongoing).
		if sessionNumber == cls.GymClassTotalSessions {
			result.IsLastSession = true
			if err := s.Classes.MarkCompleted(classID, sessionNumber, tx); err != nil {
				return err
			}
		} else if err := s.Classes.SetCurrentSession(classID, sessionNumber, tx); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

/* ===================== MARK (engine) ===================== */

// MarkAttendance menandai kehadiran satu peserta. Baris terkunci menolak
// perubahan (baris dikembalikan supaya pemanggil bisa menampilkan kondisi
// terakhir). Baris yang belum ada di-upsert — koreksi manual per peserta
// tanpa harus membuka ulang sesi.
func (s *Service) MarkAttendance(classID, userID uuid.UUID, sessionNumber int, isPresent bool, sessionDate *time.Time, notes *string) (*model.ClassSessionAttendanceModel, error) {
	// Race dua mark pertama untuk kunci yang sama: yang kalah insert
	// memuat ulang baris pemenang dan mencoba sekali lagi, tidak lebih.
	for attempt := 0; ; attempt++ {
		var row model.ClassSessionAttendanceModel
		err := s.DB.
			Where("class_session_attendance_class_id = ?", classID).
			Where("class_session_attendance_user_id = ?", userID).
			Where("class_session_attendance_session_number = ?", sessionNumber).
			Take(&row).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			date := time.Now()
			if sessionDate != nil {
				date = *sessionDate
			}
			row = model.ClassSessionAttendanceModel{
				ClassSessionAttendanceClassId:       classID,
				ClassSessionAttendanceUserId:        userID,
				ClassSessionAttendanceSessionNumber: sessionNumber,
				ClassSessionAttendanceSessionDate:   dbtime.FloorDate(date),
				ClassSessionAttendanceRowKind:       model.RowKindReal,
			}
		case err != nil:
			return nil, err
		default:
			if row.ClassSessionAttendanceIsLocked {
				return &row, ErrAttendanceLocked
			}
		}

		row.ClassSessionAttendanceIsPresent = isPresent
		if isPresent {
			now := time.Now()
			row.ClassSessionAttendanceCheckinTime = &now
			row.ClassSessionAttendanceCheckinMethod = model.CheckinMethodTrainer
		} else {
			// unmark bukan check-in; jejak metode ikut dibersihkan
			row.ClassSessionAttendanceCheckinTime = nil
			row.ClassSessionAttendanceCheckinMethod = ""
		}
		if notes != nil {
			row.ClassSessionAttendanceNotes = *notes
		} else {
			row.ClassSessionAttendanceNotes = ""
		}
		// isLocked tidak pernah disentuh di jalur ini

		saveErr := s.DB.Save(&row).Error
		if saveErr == nil {
			return &row, nil
		}
		if isUniqueViolation(saveErr) && attempt == 0 {
			continue
		}
		return nil, saveErr
	}
}

// GetAttendance: lookup satu baris by primary key.
func (s *Service) GetAttendance(attendanceID uuid.UUID) (*model.ClassSessionAttendanceModel, error) {
	var row model.ClassSessionAttendanceModel
	err := s.DB.Where("class_session_attendance_id = ?", attendanceID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// OverrideStatus: satu-satunya jalur yang boleh menembus lock — koreksi
// manual isPresent oleh trainer/admin dari layar detail, by primary key.
func (s *Service) OverrideStatus(attendanceID uuid.UUID, isPresent bool, actorID uuid.UUID) (*model.ClassSessionAttendanceModel, error) {
	var row model.ClassSessionAttendanceModel
	err := s.DB.Where("class_session_attendance_id = ?", attendanceID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendanceNotFound
	}
	if err != nil {
		return nil, err
	}

	row.ClassSessionAttendanceIsPresent = isPresent
	if isPresent {
		if row.ClassSessionAttendanceCheckinTime == nil {
			now := time.Now()
			row.ClassSessionAttendanceCheckinTime = &now
		}
	} else {
		row.ClassSessionAttendanceCheckinTime = nil
	}

	// catat jejak override di meta
	if row.ClassSessionAttendanceMeta == nil {
		row.ClassSessionAttendanceMeta = datatypes.JSONMap{}
	}
	row.ClassSessionAttendanceMeta["last_override_by"] = actorID.String()
	row.ClassSessionAttendanceMeta["last_override_at"] = time.Now().Format(time.RFC3339)

	if err := s.DB.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

/* ===================== LOCK MANAGER ===================== */

// LockSession mengunci semua baris (kelas, tanggal kalender). markedAt
// hanya diisi saat masih kosong — re-lock tidak mereset waktu finalisasi
// pertama.
func (s *Service) LockSession(classID uuid.UUID, sessionDate time.Time) (int64, error) {
	dayStart, dayEnd := dbtime.DayRange(sessionDate)
	now := time.Now()

	var locked int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		base := tx.Model(&model.ClassSessionAttendanceModel{}).
			Where("class_session_attendance_class_id = ?", classID).
			Where("class_session_attendance_session_date >= ? AND class_session_attendance_session_date < ?", dayStart, dayEnd)

		var total int64
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return ErrNothingToLock
		}

		// stempel marked_at hanya untuk baris yang belum pernah dikunci
		if err := base.Session(&gorm.Session{}).
			Where("class_session_attendance_marked_at IS NULL").
			Update("class_session_attendance_marked_at", now).Error; err != nil {
			return err
		}

		res := base.Session(&gorm.Session{}).
			Update("class_session_attendance_is_locked", true)
		if res.Error != nil {
			return res.Error
		}
		locked = total
		return nil
	})
	if err != nil {
		return 0, err
	}
	return locked, nil
}

// UnlockSession: operasi maintenance, owner-only di route. Melemahkan
// garansi "absensi terkunci itu final", makanya tidak pernah diekspos
// sebagai fitur biasa. markedAt sengaja dibiarkan sebagai jejak.
func (s *Service) UnlockSession(classID uuid.UUID, sessionDate time.Time) (int64, error) {
	dayStart, dayEnd := dbtime.DayRange(sessionDate)

	res := s.DB.Model(&model.ClassSessionAttendanceModel{}).
		Where("class_session_attendance_class_id = ?", classID).
		Where("class_session_attendance_session_date >= ? AND class_session_attendance_session_date < ?", dayStart, dayEnd).
		Where("class_session_attendance_is_locked = ?", true).
		Update("class_session_attendance_is_locked", false)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNothingToLock
	}
	return res.RowsAffected, nil
}

/* ===================== SELF CHECK-IN (QR bridge) ===================== */

// SelfCheckIn menandai hadir atas nama peserta sendiri. Token QR sudah
// diverifikasi dan dicocokkan kelasnya di boundary; di sini tinggal gate
// enrollment + sesi berjalan. Lock tidak pernah disentuh.
func (s *Service) SelfCheckIn(userID, classID uuid.UUID) (*model.ClassSessionAttendanceModel, error) {
	// Kelas harus ada
	if _, err := s.Classes.GetClass(classID, nil); err != nil {
		if errors.Is(err, classService.ErrClassNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	// Enrollment berbayar wajib
	paid, err := s.Enrollments.HasPaidEnrollment(userID, classID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, ErrNotEnrolled
	}

	// "Sesi berjalan" = nomor sesi tertinggi yang pernah dibuka
	currentSession, err := s.latestSessionNumber(classID)
	if err != nil {
		return nil, err
	}

	var row model.ClassSessionAttendanceModel
	err = s.DB.
		Where("class_session_attendance_class_id = ?", classID).
		Where("class_session_attendance_user_id = ?", userID).
		Where("class_session_attendance_session_number = ?", currentSession).
		Where("class_session_attendance_row_kind = ?", model.RowKindReal).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// trainer tidak memasukkan user ini saat sesi dibuka
		return nil, ErrNotInSession
	}
	if err != nil {
		return nil, err
	}

	// Double check-in ditolak eksplisit, bukan diterima diam-diam
	if row.ClassSessionAttendanceIsPresent {
		return &row, ErrAlreadyCheckedIn
	}

	// Baris yang sudah dikunci trainer bersifat final; hanya jalur
	// override yang boleh mengubahnya, token QR yang masih hidup
	// sekalipun tidak
	if row.ClassSessionAttendanceIsLocked {
		return &row, ErrAttendanceLocked
	}

	now := time.Now()
	row.ClassSessionAttendanceIsPresent = true
	row.ClassSessionAttendanceCheckinTime = &now
	row.ClassSessionAttendanceCheckinMethod = model.CheckinMethodQR
	if err := s.DB.Save(&row).Error; err != nil {
		return nil, err
	}

	// Notifikasi best-effort; gagal kirim tidak membatalkan absensi
	s.Notifications.Notify(userID,
		notificationModel.NotificationCategoryAttendance,
		"Check-in berhasil",
		"Kehadiranmu tercatat lewat QR check-in.",
		map[string]any{
			"class_id":       classID.String(),
			"session_number": currentSession,
			"checkin_time":   now.Format(time.RFC3339),
		})

	return &row, nil
}

// latestSessionNumber = max(session_number) semua baris kelas (real
// maupun placeholder). Gagal NotFound kalau belum ada sesi sama sekali.
func (s *Service) latestSessionNumber(classID uuid.UUID) (int, error) {
	var latest *int
	err := s.DB.Model(&model.ClassSessionAttendanceModel{}).
		Where("class_session_attendance_class_id = ?", classID).
		Select("MAX(class_session_attendance_session_number)").
		Scan(&latest).Error
	if err != nil {
		return 0, err
	}
	if latest == nil || *latest == 0 {
		return 0, ErrNoSessionOpened
	}
	return *latest, nil
}

/* ===================== RESET (maintenance) ===================== */

// ResetClassAttendance menghapus permanen seluruh absensi satu kelas.
// Pengganti "drop collection" lama: alat migrasi data bergate owner,
// selalu tercatat di log dengan jumlah baris. Harus hard delete —
// tombstone soft delete tetap menduduki unique index komposit dan
// membuat nomor sesi yang sama tidak pernah bisa dibuka ulang.
func (s *Service) ResetClassAttendance(classID uuid.UUID, actorID uuid.UUID) (int64, error) {
	res := s.DB.Unscoped().
		Where("class_session_attendance_class_id = ?", classID).
		Delete(&model.ClassSessionAttendanceModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	log.Printf("[AUDIT] reset absensi kelas %s oleh %s: %d baris", classID, actorID, res.RowsAffected)
	return res.RowsAffected, nil
}
