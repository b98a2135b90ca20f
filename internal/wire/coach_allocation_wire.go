package wire

import (
	"pool-booking/internal/adaptor"
	"pool-booking/internal/data/repository"
	"pool-booking/pkg/middleware"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCoachAllocation(
	r chi.Router,
	allocationHandler *adaptor.CoachAllocationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/coaches - Coach directory
		r.Get("/api/coaches", allocationHandler.GetCoaches)

		// GET /api/coach-allocations?from=&to= - Allocation calendar
		r.Get("/api/coach-allocations", allocationHandler.GetAllocations)

		// GET /api/coach-allocations/by-date?date= - Coach on duty for a day
		r.Get("/api/coach-allocations/by-date", allocationHandler.GetAllocationByDate)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/coach-allocations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/coach-allocations - Assign a coach to a day
		r.Post("/", allocationHandler.CreateAllocation)

		// DELETE /api/admin/coach-allocations/{id} - Remove an assignment
		r.Delete("/{id}", allocationHandler.DeleteAllocation)
	})
}
