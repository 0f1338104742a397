// file: internals/features/gym/classes/service/class_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/classes/model"
)

var ErrClassNotFound = errors.New("kelas tidak ditemukan")

// Service mengekspos kontrak kelas yang dikonsumsi modul absensi.
// Katalog kelas (CRUD lengkap) dimiliki layanan lain; di sini hanya
// lookup + transisi status yang dipicu pembukaan sesi.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// GetClass: lookup kelas; tx boleh nil → pakai s.DB
func (s *Service) GetClass(classID uuid.UUID, tx *gorm.DB) (*model.GymClassModel, error) {
	db := s.DB
	if tx != nil {
		db = tx
	}
	var m model.GymClassModel
	err := db.Where("gym_class_id = ?", classID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkCompleted: transisi ke status completed + set current_session.
// Dipanggil materializer saat sesi terakhir dibuka (satu-satunya trigger
// otomatis penyelesaian kelas).
func (s *Service) MarkCompleted(classID uuid.UUID, sessionNumber int, tx *gorm.DB) error {
	db := s.DB
	if tx != nil {
		db = tx
	}
	res := db.Model(&model.GymClassModel{}).
		Where("gym_class_id = ?", classID).
		Updates(map[string]any{
			"gym_class_status":          model.ClassStatusCompleted,
			"gym_class_current_session": sessionNumber,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

// SetCurrentSession: majukan progress marker (dan upcoming → ongoing).
// Tidak pernah memundurkan current_session.
func (s *Service) SetCurrentSession(classID uuid.UUID, sessionNumber int, tx *gorm.DB) error {
	db := s.DB
	if tx != nil {
		db = tx
	}
	res := db.Model(&model.GymClassModel{}).
		Where("gym_class_id = ? AND gym_class_current_session < ?", classID, sessionNumber).
		Updates(map[string]any{
			"gym_class_status":          model.ClassStatusOngoing,
			"gym_class_current_session": sessionNumber,
		})
	return res.Error
}

// IsTrainerOfClass: gate "trainer kelas ini" untuk route trainer.
func (s *Service) IsTrainerOfClass(classID, userID uuid.UUID) (bool, error) {
	cls, err := s.GetClass(classID, nil)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			return false, nil
		}
		return false, err
	}
	return cls.GymClassTrainerUserId == userID, nil
}
