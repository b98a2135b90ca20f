package wire

import (
	"pool-booking/internal/adaptor"
	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/pkg/middleware"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	statsHandler *adaptor.StatsHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Book a slot
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - Own booking history
		r.Get("/", bookingHandler.GetUserBookings)

		// PUT /api/bookings/{id}/cancel - Cancel own booking
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)

		// POST /api/bookings/verify - QR check-in (staff, coach, admin)
		r.With(middleware.RequireRole(log, entity.RoleStaff, entity.RoleCoach, entity.RoleAdmin)).
			Post("/verify", bookingHandler.VerifyBooking)

		// GET /api/bookings/stats - Facility statistics (admin)
		r.With(middleware.Admin(log)).
			Get("/stats", statsHandler.GetStats)
	})
}
