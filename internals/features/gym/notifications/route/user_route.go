package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifCtrl "gymku_backend/internals/features/gym/notifications/controller"
)

func NotificationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := notifCtrl.NewNotificationController(db)

	g := r.Group("/notifications")
	g.Get("/", ctrl.ListMine)
}
