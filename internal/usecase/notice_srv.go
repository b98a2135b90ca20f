package usecase

import (
	"context"
	"fmt"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/dto/request"
	"pool-booking/internal/dto/response"
	"pool-booking/pkg/utils"

	"go.uber.org/zap"
)

type NoticeService interface {
	GetNotices(ctx context.Context, role entity.UserRole) ([]response.NoticeResponse, error)
	CreateNotice(ctx context.Context, authorID string, req *request.CreateNoticeRequest) (*response.NoticeResponse, error)
	UpdateNotice(ctx context.Context, noticeID string, req *request.UpdateNoticeRequest) (*response.NoticeResponse, error)
	DeleteNotice(ctx context.Context, noticeID string) error
}

type noticeService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewNoticeService(repo *repository.Repository, log *zap.Logger) NoticeService {
	return &noticeService{
		repo: repo,
		log:  log.With(zap.String("service", "notice")),
		now:  time.Now,
	}
}

// audienceForRole maps a user role to the notice audience it may read in
// addition to the "all" audience
func audienceForRole(role entity.UserRole) entity.NoticeAudience {
	switch role {
	case entity.RoleCoach:
		return entity.NoticeAudienceCoaches
	case entity.RoleStaff, entity.RoleMaintenance:
		return entity.NoticeAudienceStaff
	default:
		return entity.NoticeAudienceStudents
	}
}

func (s *noticeService) GetNotices(ctx context.Context, role entity.UserRole) ([]response.NoticeResponse, error) {
	notices, err := s.repo.Notice.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get notices: %w", err)
	}

	audience := audienceForRole(role)
	noticeResponses := make([]response.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		// Admins see everything
		if role != entity.RoleAdmin && n.Audience != entity.NoticeAudienceAll && n.Audience != audience {
			continue
		}
		noticeResponses = append(noticeResponses, response.NoticeToResponse(n))
	}

	return noticeResponses, nil
}

func (s *noticeService) CreateNotice(ctx context.Context, authorID string, req *request.CreateNoticeRequest) (*response.NoticeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	author, err := utils.ParseUUID(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", authorID, err)
	}

	audience := entity.NoticeAudienceAll
	if req.Audience != "" {
		audience = entity.NoticeAudience(req.Audience)
	}

	now := s.now()
	notice := &entity.Notice{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:     req.Title,
		Body:      req.Body,
		Audience:  audience,
		Pinned:    req.Pinned,
		CreatedBy: author,
	}

	if err := s.repo.Notice.Create(ctx, notice); err != nil {
		s.log.Error("Failed to create notice", zap.Error(err))
		return nil, fmt.Errorf("create notice: %w", err)
	}

	s.log.Info("Notice created",
		zap.String("notice_id", notice.ID.String()),
		zap.String("audience", string(audience)),
	)

	resp := response.NoticeToResponse(notice)
	return &resp, nil
}

func (s *noticeService) UpdateNotice(ctx context.Context, noticeID string, req *request.UpdateNoticeRequest) (*response.NoticeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(noticeID)
	if err != nil {
		return nil, fmt.Errorf("invalid notice ID format %s: %w", noticeID, err)
	}

	notice, err := s.repo.Notice.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notice: %w", err)
	}
	if notice == nil {
		return nil, fmt.Errorf("notice %s not found", noticeID)
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Body != nil {
		notice.Body = *req.Body
	}
	if req.Audience != nil {
		notice.Audience = entity.NoticeAudience(*req.Audience)
	}
	if req.Pinned != nil {
		notice.Pinned = *req.Pinned
	}
	notice.UpdatedAt = s.now()

	if err := s.repo.Notice.Update(ctx, notice); err != nil {
		return nil, fmt.Errorf("update notice %s: %w", noticeID, err)
	}

	s.log.Info("Notice updated", zap.String("notice_id", noticeID))

	resp := response.NoticeToResponse(notice)
	return &resp, nil
}

func (s *noticeService) DeleteNotice(ctx context.Context, noticeID string) error {
	id, err := utils.ParseUUID(noticeID)
	if err != nil {
		return fmt.Errorf("invalid notice ID format %s: %w", noticeID, err)
	}

	if err := s.repo.Notice.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete notice %s: %w", noticeID, err)
	}

	s.log.Info("Notice deleted", zap.String("notice_id", noticeID))
	return nil
}
