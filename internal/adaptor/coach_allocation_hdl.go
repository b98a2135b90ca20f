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

type CoachAllocationHandler struct {
	service usecase.CoachAllocationService
	log     *zap.Logger
}

func NewCoachAllocationHandler(service usecase.CoachAllocationService, log *zap.Logger) *CoachAllocationHandler {
	return &CoachAllocationHandler{
		service: service,
		log:     log.With(zap.String("handler", "coach_allocation")),
	}
}

// GetCoaches handles GET /api/coaches (protected)
func (h *CoachAllocationHandler) GetCoaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := h.service.GetCoaches(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get coaches")
		return
	}

	utils.ResponseSuccess(w, "success", coaches)
}

// GetAllocations handles GET /api/coach-allocations?from=&to= (protected)
func (h *CoachAllocationHandler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	allocations, err := h.service.GetAllocations(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		h.handleServiceError(w, err, "get coach allocations")
		return
	}

	utils.ResponseSuccess(w, "success", allocations)
}

// GetAllocationByDate handles GET /api/coach-allocations/by-date?date= (protected)
func (h *CoachAllocationHandler) GetAllocationByDate(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.service.GetAllocationByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.handleServiceError(w, err, "get coach allocation")
		return
	}

	utils.ResponseSuccess(w, "success", allocation)
}

// CreateAllocation handles POST /api/admin/coach-allocations (admin only)
func (h *CoachAllocationHandler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCoachAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	allocation, err := h.service.CreateAllocation(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create coach allocation")
		return
	}

	utils.ResponseCreated(w, "success", allocation)
}

// DeleteAllocation handles DELETE /api/admin/coach-allocations/{id} (admin only)
func (h *CoachAllocationHandler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	allocationID := chi.URLParam(r, "id")
	if allocationID == "" {
		utils.ResponseBadRequest(w, "Allocation ID is required", nil)
		return
	}

	if err := h.service.DeleteAllocation(r.Context(), allocationID); err != nil {
		h.handleServiceError(w, err, "delete coach allocation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps coach allocation service errors to HTTP responses
func (h *CoachAllocationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"),
		strings.Contains(errMsg, "no coach allocated"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already allocated"):
		h.log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "not a coach"):
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
