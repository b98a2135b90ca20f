package usecase

import (
	"context"
	"testing"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/dto/request"
	"pool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMaintenanceServiceForTest(env *testEnv, now time.Time) *maintenanceService {
	s := NewMaintenanceService(env.repo, zap.NewNop()).(*maintenanceService)
	s.now = func() time.Time { return now }
	return s
}

func TestPoolStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

	t.Run("defaults to open", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)

		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateOpen, status.Status)
		assert.False(t, status.ManualOverride)
	})

	t.Run("reports closed on a holiday", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)

		holiday := &entity.Holiday{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Date:        utils.DayStart(now),
			Description: "Semester break",
			Type:        entity.HolidayTypeHoliday,
		}
		require.NoError(t, env.holidays.Create(ctx, holiday))

		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateClosed, status.Status)
		require.NotNil(t, status.Message)
		assert.Equal(t, "Semester break", *status.Message)
	})

	t.Run("manual override beats the holiday", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)

		holiday := &entity.Holiday{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Date:        utils.DayStart(now),
			Description: "Semester break",
			Type:        entity.HolidayTypeHoliday,
		}
		require.NoError(t, env.holidays.Create(ctx, holiday))

		message := "Open for the swim meet"
		_, err := svc.SetPoolStatus(ctx, admin.ID.String(), &request.SetPoolStatusRequest{
			Status:  "open",
			Message: &message,
		})
		require.NoError(t, err)

		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateOpen, status.Status)
		assert.True(t, status.ManualOverride)
	})

	t.Run("expired override falls back", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)

		until := now.Add(time.Hour).Format(time.RFC3339)
		_, err := svc.SetPoolStatus(ctx, admin.ID.String(), &request.SetPoolStatusRequest{
			Status:         "closed",
			EffectiveUntil: &until,
		})
		require.NoError(t, err)

		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateClosed, status.Status)

		// Past the expiry the computed status wins again
		svc.now = func() time.Time { return now.Add(2 * time.Hour) }
		status, err = svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateOpen, status.Status)
	})

	t.Run("clearing the override restores the computed status", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)

		_, err := svc.SetPoolStatus(ctx, admin.ID.String(), &request.SetPoolStatusRequest{Status: "restricted"})
		require.NoError(t, err)

		require.NoError(t, svc.ClearPoolStatus(ctx))

		// Expiry lands exactly at the clear timestamp, query a moment later
		svc.now = func() time.Time { return now.Add(time.Second) }
		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateOpen, status.Status)
	})
}

func TestMaintenanceReview(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

	createReport := func(t *testing.T, env *testEnv, svc *maintenanceService, impact string) string {
		reporter := env.addUser(entity.RoleMaintenance)
		report, err := svc.CreateReport(ctx, reporter.ID.String(), &request.CreateMaintenanceRequest{
			Type:          "Pump replacement",
			Priority:      "high",
			ScheduledDate: "2026-03-05",
			PoolImpact:    impact,
			Details: entity.MaintenanceDetails{
				Equipment: []entity.EquipmentCheck{{Name: "Main pump", Condition: "failing"}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.MaintenanceStatusPending, report.Status)
		return report.ID
	}

	t.Run("approval with pool impact creates a status override", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)
		reportID := createReport(t, env, svc, "closed")

		reviewed, err := svc.ReviewReport(ctx, admin.ID.String(), reportID, &request.ReviewMaintenanceRequest{Approve: true})
		require.NoError(t, err)
		assert.Equal(t, entity.MaintenanceStatusApproved, reviewed.Status)

		// The linked override closes the pool on the scheduled day
		svc.now = func() time.Time { return time.Date(2026, time.March, 5, 10, 0, 0, 0, time.Local) }
		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateClosed, status.Status)
		require.NotNil(t, status.MaintenanceID)
		assert.Equal(t, reportID, *status.MaintenanceID)
	})

	t.Run("rejection leaves the pool status alone", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)
		reportID := createReport(t, env, svc, "closed")

		reviewed, err := svc.ReviewReport(ctx, admin.ID.String(), reportID, &request.ReviewMaintenanceRequest{Approve: false})
		require.NoError(t, err)
		assert.Equal(t, entity.MaintenanceStatusRejected, reviewed.Status)

		status, err := svc.GetPoolStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.PoolStateOpen, status.Status)
	})

	t.Run("double review is rejected", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)
		reportID := createReport(t, env, svc, "none")

		_, err := svc.ReviewReport(ctx, admin.ID.String(), reportID, &request.ReviewMaintenanceRequest{Approve: true})
		require.NoError(t, err)

		_, err = svc.ReviewReport(ctx, admin.ID.String(), reportID, &request.ReviewMaintenanceRequest{Approve: false})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already been reviewed")
	})

	t.Run("status transitions are ordered", func(t *testing.T) {
		env := newTestEnv()
		svc := newMaintenanceServiceForTest(env, now)
		admin := env.addUser(entity.RoleAdmin)
		reportID := createReport(t, env, svc, "none")

		// Pending reports cannot jump straight to in_progress
		_, err := svc.UpdateReportStatus(ctx, reportID, "in_progress")
		require.Error(t, err)

		_, err = svc.ReviewReport(ctx, admin.ID.String(), reportID, &request.ReviewMaintenanceRequest{Approve: true})
		require.NoError(t, err)

		report, err := svc.UpdateReportStatus(ctx, reportID, "in_progress")
		require.NoError(t, err)
		assert.Equal(t, entity.MaintenanceStatusInProgress, report.Status)

		report, err = svc.UpdateReportStatus(ctx, reportID, "completed")
		require.NoError(t, err)
		assert.Equal(t, entity.MaintenanceStatusCompleted, report.Status)
	})
}
