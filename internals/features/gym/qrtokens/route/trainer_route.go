package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	qrCtrl "gymku_backend/internals/features/gym/qrtokens/controller"
)

func QRTokenTrainerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := qrCtrl.NewQRTokenController(db)

	g := r.Group("/class-qr")
	g.Post("/issue", ctrl.Issue)
}
