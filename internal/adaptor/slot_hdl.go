package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pool-booking/internal/dto/request"
	"pool-booking/internal/usecase"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// GetSlots handles GET /api/slots?date=YYYY-MM-DD (protected)
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.GetSlotsByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.handleServiceError(w, err, "get slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetSlotByID handles GET /api/slots/{id} (protected)
func (h *SlotHandler) GetSlotByID(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	slot, err := h.service.GetSlotByID(r.Context(), slotID)
	if err != nil {
		h.handleServiceError(w, err, "get slot by ID")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// GetTodayRoster handles GET /api/slots/today (coach, staff, admin)
func (h *SlotHandler) GetTodayRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.GetTodayRoster(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get today roster")
		return
	}

	utils.ResponseSuccess(w, "success", roster)
}

// ==================== ADMIN METHODS ====================

// CreateSlot handles POST /api/admin/slots (admin only)
func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// UpdateSlot handles PUT /api/admin/slots/{id} (admin only)
func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	var req request.UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	slot, err := h.service.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// DeleteSlot handles DELETE /api/admin/slots/{id} (admin only)
func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		h.handleServiceError(w, err, "delete slot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GenerateSlots handles POST /api/admin/slots/generate (admin only)
func (h *SlotHandler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.GenerateSlots(r.Context(), time.Now())
	if err != nil {
		h.handleServiceError(w, err, "generate slots")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int{"created": created})
}

// handleServiceError maps slot service errors to HTTP responses
func (h *SlotHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "must be"),
		strings.Contains(errMsg, "must start"),
		strings.Contains(errMsg, "cannot be lower"):
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
