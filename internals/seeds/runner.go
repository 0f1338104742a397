package seeds

import (
	"log"

	"gorm.io/gorm"

	gymSeed "gymku_backend/internals/seeds/gym"
	userSeed "gymku_backend/internals/seeds/users"
)

// RunAllSeeds mengisi data demo. Aman dipanggil berulang kali karena
// setiap seeder melewati baris yang sudah ada.
func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Menjalankan seeder...")

	userSeed.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	gymSeed.SeedClassesFromJSON(db, "internals/seeds/gym/data_classes.json")

	log.Println("🌱 Seeder selesai.")
}
