package wire

import (
	"pool-booking/internal/adaptor"
	"pool-booking/internal/data/repository"
	"pool-booking/pkg/middleware"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/user/profile - Own profile with QR code
		r.Get("/profile", userHandler.GetProfile)

		// PUT /api/user/profile - Update own profile
		r.Put("/profile", userHandler.UpdateProfile)

		// POST /api/user/qr-code - Issue a check-in code to a legacy
		// account that has none
		r.Post("/qr-code", userHandler.IssueQRCode)
	})
}
