package wire

import (
	"pool-booking/internal/adaptor"
	"pool-booking/internal/data/repository"
	"pool-booking/pkg/middleware"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHoliday(
	r chi.Router,
	holidayHandler *adaptor.HolidayHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/holidays", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// ==================== PROTECTED ROUTES ====================
		// GET /api/holidays - Upcoming closures
		r.Get("/", holidayHandler.GetHolidays)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(log))

			// POST /api/holidays - Declare a closure date
			r.Post("/", holidayHandler.CreateHoliday)

			// DELETE /api/holidays/{id} - Remove a closure date
			r.Delete("/{id}", holidayHandler.DeleteHoliday)
		})
	})
}
