package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/repository/mocks"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/service"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestHeatmap(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewStatsService(habitsRepo, checksRepo)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("fills habit total into every cell", func(t *testing.T) {
		checksRepo.EXPECT().CountPerDay(gomock.Any(), userID).Return([]entity.HeatmapCell{
			{Date: "2025-03-10", Completed: 2},
			{Date: "2025-03-11", Completed: 3},
		}, nil)
		habitsRepo.EXPECT().CountByUserID(gomock.Any(), userID).Return(3, nil)
		cells, err := s.Heatmap(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, []entity.HeatmapCell{
			{Date: "2025-03-10", Completed: 2, Total: 3},
			{Date: "2025-03-11", Completed: 3, Total: 3},
		}, cells)
	})
	t.Run("zero habits never yields a zero total", func(t *testing.T) {
		checksRepo.EXPECT().CountPerDay(gomock.Any(), userID).Return([]entity.HeatmapCell{
			{Date: "2025-03-10", Completed: 1},
		}, nil)
		habitsRepo.EXPECT().CountByUserID(gomock.Any(), userID).Return(0, nil)
		cells, err := s.Heatmap(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 1, cells[0].Total)
	})
	t.Run("db error", func(t *testing.T) {
		checksRepo.EXPECT().CountPerDay(gomock.Any(), userID).Return(nil, errors.New("db error"))
		_, err := s.Heatmap(ctx, userID)
		assert.Error(t, err)
	})
}

func TestLeaderboard(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewStatsService(habitsRepo, checksRepo)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		entries := []entity.LeaderboardEntry{
			{Username: "first_user", MaxStreak: 30},
			{Username: "second_user", MaxStreak: 12},
		}
		habitsRepo.EXPECT().TopStreaks(gomock.Any(), 50).Return(entries, nil)
		result, err := s.Leaderboard(ctx)
		assert.NoError(t, err)
		assert.Equal(t, entries, result)
	})
	t.Run("db error", func(t *testing.T) {
		habitsRepo.EXPECT().TopStreaks(gomock.Any(), 50).Return(nil, errors.New("db error"))
		_, err := s.Leaderboard(ctx)
		assert.Error(t, err)
	})
}
