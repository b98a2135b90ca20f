package wire

import (
	"pool-booking/internal/adaptor"
	"pool-booking/internal/data/repository"
	"pool-booking/pkg/middleware"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotice(
	r chi.Router,
	noticeHandler *adaptor.NoticeHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// GET /api/notices - Notices visible to the caller's role
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Get("/api/notices", noticeHandler.GetNotices)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/notices", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/notices - Publish a notice
		r.Post("/", noticeHandler.CreateNotice)

		// PUT /api/admin/notices/{id} - Edit a notice
		r.Put("/{id}", noticeHandler.UpdateNotice)

		// DELETE /api/admin/notices/{id} - Remove a notice
		r.Delete("/{id}", noticeHandler.DeleteNotice)
	})
}
