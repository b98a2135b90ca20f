package repository

import (
	"context"
	"fmt"

	"pool-booking/internal/data/entity"
	"pool-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *entity.Notice) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error)
	FindAll(ctx context.Context) ([]*entity.Notice, error)
	Update(ctx context.Context, notice *entity.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noticeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNoticeRepository(db database.PgxIface, log *zap.Logger) NoticeRepository {
	return &noticeRepository{
		db:  db,
		log: log.With(zap.String("repository", "notice")),
	}
}

const noticeColumns = `id, title, body, audience, pinned, created_by, created_at, updated_at`

func scanNotice(row pgx.Row) (*entity.Notice, error) {
	var notice entity.Notice
	err := row.Scan(
		&notice.ID,
		&notice.Title,
		&notice.Body,
		&notice.Audience,
		&notice.Pinned,
		&notice.CreatedBy,
		&notice.CreatedAt,
		&notice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepository) Create(ctx context.Context, notice *entity.Notice) error {
	query := `
		INSERT INTO notices (id, title, body, audience, pinned, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		notice.ID,
		notice.Title,
		notice.Body,
		notice.Audience,
		notice.Pinned,
		notice.CreatedBy,
		notice.CreatedAt,
		notice.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notice",
			zap.Error(err),
			zap.String("title", notice.Title),
		)
		return fmt.Errorf("create notice: %w", err)
	}

	return nil
}

func (r *noticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id = $1`

	notice, err := scanNotice(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find notice",
			zap.Error(err),
			zap.String("notice_id", id.String()),
		)
		return nil, fmt.Errorf("find notice %s: %w", id.String(), err)
	}

	return notice, nil
}

func (r *noticeRepository) FindAll(ctx context.Context) ([]*entity.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY pinned DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list notices", zap.Error(err))
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	var notices []*entity.Notice
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			r.log.Error("Failed to scan notice row", zap.Error(err))
			return nil, fmt.Errorf("scan notice row: %w", err)
		}
		notices = append(notices, notice)
	}

	return notices, nil
}

func (r *noticeRepository) Update(ctx context.Context, notice *entity.Notice) error {
	query := `
		UPDATE notices
		SET title = $2, body = $3, audience = $4, pinned = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		notice.ID,
		notice.Title,
		notice.Body,
		notice.Audience,
		notice.Pinned,
		notice.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update notice",
			zap.Error(err),
			zap.String("notice_id", notice.ID.String()),
		)
		return fmt.Errorf("update notice %s: %w", notice.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notice %s not found", notice.ID.String())
	}

	return nil
}

func (r *noticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notices WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete notice",
			zap.Error(err),
			zap.String("notice_id", id.String()),
		)
		return fmt.Errorf("delete notice %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notice %s not found", id.String())
	}

	return nil
}
