package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/dto/request"
	"pool-booking/internal/usecase"
	"pool-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NoticeHandler struct {
	service usecase.NoticeService
	log     *zap.Logger
}

func NewNoticeHandler(service usecase.NoticeService, log *zap.Logger) *NoticeHandler {
	return &NoticeHandler{
		service: service,
		log:     log.With(zap.String("handler", "notice")),
	}
}

// GetNotices handles GET /api/notices (protected)
func (h *NoticeHandler) GetNotices(w http.ResponseWriter, r *http.Request) {
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	notices, err := h.service.GetNotices(r.Context(), entity.UserRole(role))
	if err != nil {
		h.handleServiceError(w, err, "get notices")
		return
	}

	utils.ResponseSuccess(w, "success", notices)
}

// CreateNotice handles POST /api/admin/notices (admin only)
func (h *NoticeHandler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	notice, err := h.service.CreateNotice(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create notice")
		return
	}

	utils.ResponseCreated(w, "success", notice)
}

// UpdateNotice handles PUT /api/admin/notices/{id} (admin only)
func (h *NoticeHandler) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	noticeID := chi.URLParam(r, "id")
	if noticeID == "" {
		utils.ResponseBadRequest(w, "Notice ID is required", nil)
		return
	}

	var req request.UpdateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	notice, err := h.service.UpdateNotice(r.Context(), noticeID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update notice")
		return
	}

	utils.ResponseSuccess(w, "success", notice)
}

// DeleteNotice handles DELETE /api/admin/notices/{id} (admin only)
func (h *NoticeHandler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	noticeID := chi.URLParam(r, "id")
	if noticeID == "" {
		utils.ResponseBadRequest(w, "Notice ID is required", nil)
		return
	}

	if err := h.service.DeleteNotice(r.Context(), noticeID); err != nil {
		h.handleServiceError(w, err, "delete notice")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps notice service errors to HTTP responses
func (h *NoticeHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

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
