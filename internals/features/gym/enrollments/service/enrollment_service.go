// file: internals/features/gym/enrollments/service/enrollment_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/enrollments/model"
)

// Service = Enrollment Snapshot Provider: siapa saja yang berhak hadir
// di sebuah kelas. Murni baca; mutasi enrollment/pembayaran dimiliki
// layanan commerce.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// ListPaidEnrollees mengembalikan user_id semua enrollment aktif yang
// sudah lunas pada kelas ini. Slice kosong = hasil valid, bukan error;
// pemanggil yang memutuskan apakah itu kondisi gagal.
func (s *Service) ListPaidEnrollees(classID uuid.UUID, tx *gorm.DB) ([]uuid.UUID, error) {
	db := s.DB
	if tx != nil {
		db = tx
	}
	var userIDs []uuid.UUID
	err := db.Model(&model.ClassEnrollmentModel{}).
		Where("class_enrollment_class_id = ?", classID).
		Where("class_enrollment_payment_status = ?", true).
		Where("class_enrollment_status = ?", model.EnrollmentStatusActive).
		Order("class_enrollment_created_at ASC").
		Pluck("class_enrollment_user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// HasPaidEnrollment: cek satu user untuk gate QR check-in.
func (s *Service) HasPaidEnrollment(userID, classID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.Model(&model.ClassEnrollmentModel{}).
		Where("class_enrollment_class_id = ?", classID).
		Where("class_enrollment_user_id = ?", userID).
		Where("class_enrollment_payment_status = ?", true).
		Where("class_enrollment_status = ?", model.EnrollmentStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
