package gym

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "gymku_backend/internals/features/gym/classes/model"
	enrollmentModel "gymku_backend/internals/features/gym/enrollments/model"
)

type EnrollmentSeed struct {
	UserID        string `json:"user_id"`
	PaymentStatus bool   `json:"payment_status"`
}

type ClassSeed struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	TrainerUserID string           `json:"trainer_user_id"`
	TotalSessions int              `json:"total_sessions"`
	Status        string           `json:"status"`
	Enrollments   []EnrollmentSeed `json:"enrollments"`
}

func SeedClassesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kelas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []ClassSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		classID, err := uuid.Parse(data.ID)
		if err != nil {
			log.Printf("❌ ID kelas '%s' tidak valid, dilewati.", data.ID)
			continue
		}
		trainerID, err := uuid.Parse(data.TrainerUserID)
		if err != nil {
			log.Printf("❌ trainer_user_id kelas '%s' tidak valid, dilewati.", data.Name)
			continue
		}

		var existing classModel.GymClassModel
		if err := db.Where("gym_class_id = ?", classID).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Kelas '%s' sudah ada, dilewati.", data.Name)
			continue
		}

		status := data.Status
		if status == "" {
			status = classModel.ClassStatusUpcoming
		}

		cls := classModel.GymClassModel{
			GymClassId:            classID,
			GymClassName:          data.Name,
			GymClassTrainerUserId: trainerID,
			GymClassTotalSessions: data.TotalSessions,
			GymClassStatus:        status,
		}
		if err := db.Create(&cls).Error; err != nil {
			log.Printf("❌ Gagal insert kelas '%s': %v", data.Name, err)
			continue
		}

		for _, e := range data.Enrollments {
			userID, err := uuid.Parse(e.UserID)
			if err != nil {
				log.Printf("❌ user_id enrollment '%s' tidak valid, dilewati.", e.UserID)
				continue
			}
			enr := enrollmentModel.ClassEnrollmentModel{
				ClassEnrollmentClassId:       classID,
				ClassEnrollmentUserId:        userID,
				ClassEnrollmentPaymentStatus: e.PaymentStatus,
				ClassEnrollmentStatus:        enrollmentModel.EnrollmentStatusActive,
			}
			if err := db.Create(&enr).Error; err != nil {
				log.Printf("❌ Gagal insert enrollment %s → %s: %v", e.UserID, data.Name, err)
			}
		}

		log.Printf("✅ Berhasil insert kelas '%s' (%d enrollment)", data.Name, len(data.Enrollments))
	}
}
