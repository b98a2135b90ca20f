package usecase

import (
	"context"
	"testing"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNoticeAudienceFiltering(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv()
	svc := NewNoticeService(env.repo, zap.NewNop()).(*noticeService)
	admin := env.addUser(entity.RoleAdmin)

	create := func(title, audience string, pinned bool) {
		_, err := svc.CreateNotice(ctx, admin.ID.String(), &request.CreateNoticeRequest{
			Title:    title,
			Body:     "body",
			Audience: audience,
			Pinned:   pinned,
		})
		require.NoError(t, err)
	}

	create("Everyone", "all", false)
	create("Students only", "students", true)
	create("Coaches only", "coaches", false)

	titles := func(role entity.UserRole) []string {
		notices, err := svc.GetNotices(ctx, role)
		require.NoError(t, err)
		var out []string
		for _, n := range notices {
			out = append(out, n.Title)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Everyone", "Students only"}, titles(entity.RoleStudent))
	assert.ElementsMatch(t, []string{"Everyone", "Coaches only"}, titles(entity.RoleCoach))
	assert.ElementsMatch(t, []string{"Everyone", "Students only", "Coaches only"}, titles(entity.RoleAdmin))

	// Pinned notices sort first for readers who can see them
	studentNotices, err := svc.GetNotices(ctx, entity.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, studentNotices)
	assert.Equal(t, "Students only", studentNotices[0].Title)
}

func TestUpdateNotice(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv()
	svc := NewNoticeService(env.repo, zap.NewNop()).(*noticeService)
	svc.now = func() time.Time { return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local) }
	admin := env.addUser(entity.RoleAdmin)

	created, err := svc.CreateNotice(ctx, admin.ID.String(), &request.CreateNoticeRequest{
		Title: "Pool hours", Body: "8-17",
	})
	require.NoError(t, err)

	pinned := true
	title := "Pool hours (updated)"
	updated, err := svc.UpdateNotice(ctx, created.ID, &request.UpdateNoticeRequest{Title: &title, Pinned: &pinned})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.Pinned)
	assert.Equal(t, "8-17", updated.Body)

	require.NoError(t, svc.DeleteNotice(ctx, created.ID))
	notices, err := svc.GetNotices(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, notices)
}
