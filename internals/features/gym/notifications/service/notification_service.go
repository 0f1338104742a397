// file: internals/features/gym/notifications/service/notification_service.go
package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/notifications/model"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// Notify mengirim notifikasi fire-and-forget. Kegagalan hanya dicatat di
// log; tidak pernah menggagalkan (apalagi me-rollback) operasi pemanggil.
func (s *Service) Notify(userID uuid.UUID, category, title, body string, metadata map[string]any) {
	n := model.NotificationModel{
		NotificationUserId:   userID,
		NotificationCategory: category,
		NotificationTitle:    title,
		NotificationBody:     body,
		NotificationMetadata: datatypes.JSONMap(metadata),
	}
	go func() {
		if err := s.DB.Create(&n).Error; err != nil {
			log.Printf("[WARN] Gagal kirim notifikasi ke %s: %v", userID, err)
		}
	}()
}

// ListByUser: feed notifikasi milik satu user (terbaru dulu).
func (s *Service) ListByUser(userID uuid.UUID, limit, offset int) ([]model.NotificationModel, int64, error) {
	var total int64
	if err := s.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.NotificationModel
	err := s.DB.
		Where("notification_user_id = ?", userID).
		Order("notification_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
