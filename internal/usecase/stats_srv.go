package usecase

import (
	"context"
	"fmt"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/dto/response"

	"go.uber.org/zap"
)

const (
	topOffenderLimit   = 5
	trendingSlotsLimit = 5
)

type StatsService interface {
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	totalSlots, err := s.repo.Slot.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}

	totalBookings, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	attended, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusAttended)
	if err != nil {
		return nil, fmt.Errorf("count attended bookings: %w", err)
	}

	cancelled, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("count cancelled bookings: %w", err)
	}

	missed, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusMissed)
	if err != nil {
		return nil, fmt.Errorf("count missed bookings: %w", err)
	}

	// No-show rate over concluded sessions only
	var noShowRate float64
	if concluded := attended + missed; concluded > 0 {
		noShowRate = float64(missed) / float64(concluded)
	}

	offenders, err := s.repo.Booking.TopOffenders(ctx, topOffenderLimit)
	if err != nil {
		return nil, fmt.Errorf("get top offenders: %w", err)
	}

	offenderResponses := make([]response.OffenderResponse, 0, len(offenders))
	for _, o := range offenders {
		offenderResponses = append(offenderResponses, response.OffenderResponse{
			UserID: o.UserID.String(),
			Name:   o.Name,
			Missed: o.Missed,
		})
	}

	heatmap, err := s.repo.Booking.OccupancyHeatmap(ctx)
	if err != nil {
		return nil, fmt.Errorf("get occupancy heatmap: %w", err)
	}

	buckets := make([]response.HeatmapBucket, 0, len(heatmap))
	for _, h := range heatmap {
		var occupancy float64
		if h.Capacity > 0 {
			occupancy = float64(h.Bookings) / float64(h.Capacity)
		}
		buckets = append(buckets, response.HeatmapBucket{
			Weekday:   h.Weekday,
			Hour:      h.Hour,
			Bookings:  h.Bookings,
			Capacity:  h.Capacity,
			Occupancy: occupancy,
		})
	}

	trending, err := s.repo.Booking.TrendingSlots(ctx, trendingSlotsLimit)
	if err != nil {
		return nil, fmt.Errorf("get trending slots: %w", err)
	}

	trendingResponses := make([]response.TrendingSlot, 0, len(trending))
	for _, t := range trending {
		trendingResponses = append(trendingResponses, response.TrendingSlot{
			SlotID:    t.SlotID.String(),
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
			Bookings:  t.Bookings,
		})
	}

	return &response.StatsResponse{
		TotalUsers:        totalUsers,
		TotalSlots:        totalSlots,
		TotalBookings:     totalBookings,
		AttendedBookings:  attended,
		CancelledBookings: cancelled,
		MissedBookings:    missed,
		NoShowRate:        noShowRate,
		TopOffenders:      offenderResponses,
		OccupancyHeatmap:  buckets,
		TrendingSlots:     trendingResponses,
	}, nil
}
