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

type HolidayHandler struct {
	service usecase.HolidayService
	log     *zap.Logger
}

func NewHolidayHandler(service usecase.HolidayService, log *zap.Logger) *HolidayHandler {
	return &HolidayHandler{
		service: service,
		log:     log.With(zap.String("handler", "holiday")),
	}
}

// GetHolidays handles GET /api/holidays (protected)
func (h *HolidayHandler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.service.GetHolidays(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get holidays")
		return
	}

	utils.ResponseSuccess(w, "success", holidays)
}

// CreateHoliday handles POST /api/holidays (admin only)
func (h *HolidayHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	holiday, err := h.service.CreateHoliday(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create holiday")
		return
	}

	utils.ResponseCreated(w, "success", holiday)
}

// DeleteHoliday handles DELETE /api/holidays/{id} (admin only)
func (h *HolidayHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	holidayID := chi.URLParam(r, "id")
	if holidayID == "" {
		utils.ResponseBadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), holidayID); err != nil {
		h.handleServiceError(w, err, "delete holiday")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps holiday service errors to HTTP responses
func (h *HolidayHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already exists"):
		h.log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
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
