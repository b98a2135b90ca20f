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

func wireSlot(
	r chi.Router,
	slotHandler *adaptor.SlotHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/slots?date=YYYY-MM-DD - Slots with live availability
		r.Get("/api/slots", slotHandler.GetSlots)

		// GET /api/slots/today - Today's roster with attendees (coach view)
		r.With(middleware.RequireRole(log, entity.RoleCoach, entity.RoleStaff, entity.RoleAdmin)).
			Get("/api/slots/today", slotHandler.GetTodayRoster)

		// GET /api/slots/{id} - Single slot detail
		r.Get("/api/slots/{id}", slotHandler.GetSlotByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/slots", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/slots - Create a single slot
		r.Post("/", slotHandler.CreateSlot)

		// POST /api/admin/slots/generate - Run the generator on demand
		r.Post("/generate", slotHandler.GenerateSlots)

		// PUT /api/admin/slots/{id} - Update slot
		r.Put("/{id}", slotHandler.UpdateSlot)

		// DELETE /api/admin/slots/{id} - Delete slot and its bookings
		r.Delete("/{id}", slotHandler.DeleteSlot)
	})
}
