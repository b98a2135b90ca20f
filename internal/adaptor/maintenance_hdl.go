package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"pool-booking/internal/dto/request"
	"pool-booking/internal/usecase"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	service usecase.MaintenanceService
	log     *zap.Logger
}

func NewMaintenanceHandler(service usecase.MaintenanceService, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
		log:     log.With(zap.String("handler", "maintenance")),
	}
}

// GetPoolStatus handles GET /api/maintenance/pool-status (public)
func (h *MaintenanceHandler) GetPoolStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetPoolStatus(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get pool status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// SetPoolStatus handles PUT /api/maintenance/pool-status (admin only)
func (h *MaintenanceHandler) SetPoolStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetPoolStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	status, err := h.service.SetPoolStatus(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "set pool status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// ClearPoolStatus handles DELETE /api/maintenance/pool-status (admin only)
func (h *MaintenanceHandler) ClearPoolStatus(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearPoolStatus(r.Context()); err != nil {
		h.handleServiceError(w, err, "clear pool status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateReport handles POST /api/maintenance/reports (maintenance, admin)
func (h *MaintenanceHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	report, err := h.service.CreateReport(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create maintenance report")
		return
	}

	utils.ResponseCreated(w, "success", report)
}

// GetReports handles GET /api/maintenance/reports?status= (maintenance, admin)
func (h *MaintenanceHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.GetReports(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.handleServiceError(w, err, "get maintenance reports")
		return
	}

	utils.ResponseSuccess(w, "success", reports)
}

// GetReport handles GET /api/maintenance/reports/{id} (maintenance, admin)
func (h *MaintenanceHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		utils.ResponseBadRequest(w, "Report ID is required", nil)
		return
	}

	report, err := h.service.GetReport(r.Context(), reportID)
	if err != nil {
		h.handleServiceError(w, err, "get maintenance report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// ReviewReport handles PUT /api/admin/maintenance/reports/{id}/review (admin only)
func (h *MaintenanceHandler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		utils.ResponseBadRequest(w, "Report ID is required", nil)
		return
	}

	var req request.ReviewMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	report, err := h.service.ReviewReport(r.Context(), userID.String(), reportID, &req)
	if err != nil {
		h.handleServiceError(w, err, "review maintenance report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// UpdateReportStatus handles PUT /api/maintenance/reports/{id}/status (maintenance, admin)
func (h *MaintenanceHandler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		utils.ResponseBadRequest(w, "Report ID is required", nil)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	report, err := h.service.UpdateReportStatus(r.Context(), reportID, body.Status)
	if err != nil {
		h.handleServiceError(w, err, "update maintenance status")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// handleServiceError maps maintenance service errors to HTTP responses
func (h *MaintenanceHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already been reviewed"):
		h.log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "cannot"),
		strings.Contains(errMsg, "must be"):
		h.log.Warn(operation+" failed - bad input",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
