package users

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Tabel users dimiliki layanan auth; seeder ini hanya mengisi akun demo
// (owner/trainer/member) supaya environment dev langsung bisa login.
type userRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	UserName  string    `gorm:"column:user_name"`
	Email     string    `gorm:"column:email"`
	Password  string    `gorm:"column:password"`
	Role      string    `gorm:"column:role"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRow) TableName() string { return "users" }

type UserSeed struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if err := db.AutoMigrate(&userRow{}); err != nil {
		log.Fatalf("❌ Gagal migrate tabel users: %v", err)
	}

	for _, data := range inputs {
		var existing userRow
		if err := db.Where("email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}

		// 🔐 Hash password sebelum disimpan
		hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}

		id := uuid.New()
		if data.ID != "" {
			if parsed, err := uuid.Parse(data.ID); err == nil {
				id = parsed
			}
		}

		newUser := userRow{
			ID:        id,
			UserName:  data.UserName,
			Email:     data.Email,
			Password:  string(hashed),
			Role:      data.Role,
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", data.Email)
		}
	}
}
