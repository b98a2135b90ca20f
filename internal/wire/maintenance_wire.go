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

func wireMaintenance(
	r chi.Router,
	maintenanceHandler *adaptor.MaintenanceHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/maintenance/pool-status - Current facility status, shown
	// before login
	r.Get("/api/maintenance/pool-status", maintenanceHandler.GetPoolStatus)

	// ==================== MAINTENANCE ROUTES ====================
	r.Route("/api/maintenance/reports", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(log, entity.RoleStaff, entity.RoleMaintenance, entity.RoleAdmin))

		// POST /api/maintenance/reports - File a maintenance report
		r.Post("/", maintenanceHandler.CreateReport)

		// GET /api/maintenance/reports?status= - List reports
		r.Get("/", maintenanceHandler.GetReports)

		// GET /api/maintenance/reports/{id} - Report detail
		r.Get("/{id}", maintenanceHandler.GetReport)

		// PUT /api/maintenance/reports/{id}/status - Progress an approved report
		r.Put("/{id}/status", maintenanceHandler.UpdateReportStatus)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// PUT /api/maintenance/pool-status - Set a manual status override
		r.Put("/api/maintenance/pool-status", maintenanceHandler.SetPoolStatus)

		// DELETE /api/maintenance/pool-status - Clear the override
		r.Delete("/api/maintenance/pool-status", maintenanceHandler.ClearPoolStatus)

		// PUT /api/admin/maintenance/reports/{id}/review - Approve or reject
		r.Put("/api/admin/maintenance/reports/{id}/review", maintenanceHandler.ReviewReport)
	})
}
