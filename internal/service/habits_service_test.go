package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/error_values"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/repository/mocks"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/service"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestCreateHabit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewHabitsService(habitsRepo, checksRepo)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()
	stored := &entity.Habit{
		ID:            habitID,
		UserID:        userID,
		Title:         "test_habit",
		FrequencyType: entity.FrequencyWeekly,
		FrequencyData: []int{1, 3, 5},
	}
	testCases := []struct {
		Desc         string
		Req          *service.CreateHabitRequest
		Error        error
		WantErr      bool
		MockPrepFunc func()
	}{
		{
			Desc: "success",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyWeekly,
				FrequencyData: []int{1, 3, 5},
			},
			MockPrepFunc: func() {
				habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(habitID, nil)
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(stored, nil)
			},
		},
		{
			Desc: "error unknown frequency type",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: "hourly",
			},
			WantErr:      true,
			MockPrepFunc: func() {},
		},
		{
			Desc: "error weekly without weekdays",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyWeekly,
			},
			Error:        errorvalues.ErrInvalidFrequency,
			WantErr:      true,
			MockPrepFunc: func() {},
		},
		{
			Desc: "error weekday out of range",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyWeekly,
				FrequencyData: []int{1, 9},
			},
			Error:        errorvalues.ErrInvalidFrequency,
			WantErr:      true,
			MockPrepFunc: func() {},
		},
		{
			Desc: "error custom interval below one",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyCustom,
				FrequencyData: []int{0},
			},
			Error:        errorvalues.ErrInvalidFrequency,
			WantErr:      true,
			MockPrepFunc: func() {},
		},
		{
			Desc: "error daily with frequency data",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyDaily,
				FrequencyData: []int{1},
			},
			Error:        errorvalues.ErrInvalidFrequency,
			WantErr:      true,
			MockPrepFunc: func() {},
		},
		{
			Desc: "error owner not found",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyDaily,
			},
			Error:   errorvalues.ErrUserNotFound,
			WantErr: true,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errorvalues.ErrOwnerNotFound)
			},
		},
		{
			Desc: "error habit duplication",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyDaily,
			},
			Error:   errorvalues.ErrUserHasHabit,
			WantErr: true,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errorvalues.ErrUserHasHabit)
			},
		},
		{
			Desc: "db error",
			Req: &service.CreateHabitRequest{
				Title:         "test_habit",
				FrequencyType: entity.FrequencyDaily,
			},
			WantErr: true,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errors.New("db error"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			h, err := s.CreateHabit(ctx, userID, tc.Req)
			if tc.WantErr {
				assert.Error(t, err)
				if tc.Error != nil {
					assert.ErrorIs(t, err, tc.Error)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, stored, h)
		})
	}
}

func TestGetUserHabits(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewHabitsService(habitsRepo, checksRepo)
	ctx := context.Background()
	userID := uuid.New()
	today := day(2025, time.March, 12)
	pagination := service.PaginationOpts{Limit: 10, Offset: 0}

	t.Run("flags completion and dueness", func(t *testing.T) {
		completed := day(2025, time.March, 11)
		habit := &entity.Habit{
			ID:                uuid.New(),
			UserID:            userID,
			Title:             "test_habit",
			FrequencyType:     entity.FrequencyDaily,
			Streak:            2,
			LastCompletedDate: &completed,
		}
		habitsRepo.EXPECT().GetByUserID(gomock.Any(), userID, 10, 0).Return([]*entity.Habit{habit}, nil)
		checksRepo.EXPECT().Exists(gomock.Any(), habit.ID, today).Return(false, nil)
		result, err := s.GetUserHabits(ctx, userID, today, pagination)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, 2, result[0].Streak)
		assert.False(t, result[0].CompletedToday)
		assert.True(t, result[0].IsDueToday)
	})

	t.Run("stale streak is reset and persisted", func(t *testing.T) {
		completed := day(2025, time.March, 7)
		habit := &entity.Habit{
			ID:                uuid.New(),
			UserID:            userID,
			Title:             "test_habit",
			FrequencyType:     entity.FrequencyDaily,
			Streak:            5,
			LastCompletedDate: &completed,
		}
		habitsRepo.EXPECT().GetByUserID(gomock.Any(), userID, 10, 0).Return([]*entity.Habit{habit}, nil)
		habitsRepo.EXPECT().UpdateStreak(gomock.Any(), habit.ID, 0, &completed).Return(nil)
		checksRepo.EXPECT().Exists(gomock.Any(), habit.ID, today).Return(false, nil)
		result, err := s.GetUserHabits(ctx, userID, today, pagination)
		assert.NoError(t, err)
		assert.Equal(t, 0, result[0].Streak)
	})

	t.Run("streak completed yesterday survives the read", func(t *testing.T) {
		completed := day(2025, time.March, 11)
		habit := &entity.Habit{
			ID:                uuid.New(),
			UserID:            userID,
			Title:             "test_habit",
			FrequencyType:     entity.FrequencyDaily,
			Streak:            4,
			LastCompletedDate: &completed,
		}
		habitsRepo.EXPECT().GetByUserID(gomock.Any(), userID, 10, 0).Return([]*entity.Habit{habit}, nil)
		checksRepo.EXPECT().Exists(gomock.Any(), habit.ID, today).Return(true, nil)
		result, err := s.GetUserHabits(ctx, userID, today, pagination)
		assert.NoError(t, err)
		assert.Equal(t, 4, result[0].Streak)
		assert.True(t, result[0].CompletedToday)
	})

	t.Run("weekly habit not due keeps its streak", func(t *testing.T) {
		completed := day(2025, time.March, 10) // Monday
		habit := &entity.Habit{
			ID:                uuid.New(),
			UserID:            userID,
			Title:             "test_habit",
			FrequencyType:     entity.FrequencyWeekly,
			FrequencyData:     []int{1}, // Mondays only
			Streak:            3,
			LastCompletedDate: &completed,
		}
		// Wednesday: previous due date is the completed Monday, nothing stale
		habitsRepo.EXPECT().GetByUserID(gomock.Any(), userID, 10, 0).Return([]*entity.Habit{habit}, nil)
		checksRepo.EXPECT().Exists(gomock.Any(), habit.ID, today).Return(false, nil)
		result, err := s.GetUserHabits(ctx, userID, today, pagination)
		assert.NoError(t, err)
		assert.Equal(t, 3, result[0].Streak)
		assert.False(t, result[0].IsDueToday)
	})

	t.Run("db error", func(t *testing.T) {
		habitsRepo.EXPECT().GetByUserID(gomock.Any(), userID, 10, 0).Return(nil, errors.New("db error"))
		_, err := s.GetUserHabits(ctx, userID, today, pagination)
		assert.Error(t, err)
	})
}

func TestGetHabitByID(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewHabitsService(habitsRepo, checksRepo)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()
	stored := &entity.Habit{
		ID:            habitID,
		UserID:        userID,
		Title:         "test_habit",
		FrequencyType: entity.FrequencyDaily,
	}
	t.Run("success", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(stored, nil)
		h, err := s.GetHabit(ctx, habitID, userID)
		assert.NoError(t, err)
		assert.Equal(t, stored, h)
	})
	t.Run("wrong owner", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
			ID:     habitID,
			UserID: uuid.New(),
		}, nil)
		_, err := s.GetHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("habit not found", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(nil, errorvalues.ErrHabitNotFound)
		_, err := s.GetHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewHabitsService(habitsRepo, checksRepo)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()
	req := &service.CreateHabitRequest{
		Title:         "renamed_habit",
		FrequencyType: entity.FrequencyCustom,
		FrequencyData: []int{2},
	}
	t.Run("success", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
			ID:            habitID,
			UserID:        userID,
			Title:         "test_habit",
			FrequencyType: entity.FrequencyDaily,
		}, nil)
		habitsRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		h, err := s.UpdateHabit(ctx, habitID, userID, req)
		assert.NoError(t, err)
		assert.Equal(t, req.Title, h.Title)
		assert.Equal(t, entity.FrequencyCustom, h.FrequencyType)
		assert.Equal(t, []int{2}, h.FrequencyData)
	})
	t.Run("invalid frequency rejected before any repo call", func(t *testing.T) {
		_, err := s.UpdateHabit(ctx, habitID, userID, &service.CreateHabitRequest{
			Title:         "renamed_habit",
			FrequencyType: entity.FrequencyWeekly,
			FrequencyData: []int{-1},
		})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidFrequency)
	})
	t.Run("wrong owner", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
			ID:     habitID,
			UserID: uuid.New(),
		}, nil)
		_, err := s.UpdateHabit(ctx, habitID, userID, req)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	s := service.NewHabitsService(habitsRepo, checksRepo)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()
	stored := &entity.Habit{
		ID:            habitID,
		UserID:        userID,
		Title:         "test_habit",
		FrequencyType: entity.FrequencyDaily,
	}
	t.Run("success deletes ledger first", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(stored, nil)
		checksRepo.EXPECT().DeleteByHabitID(gomock.Any(), habitID).Return(nil)
		habitsRepo.EXPECT().Delete(gomock.Any(), habitID).Return(nil)
		assert.NoError(t, s.DeleteHabit(ctx, habitID, userID))
	})
	t.Run("wrong owner", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
			ID:     habitID,
			UserID: uuid.New(),
		}, nil)
		assert.ErrorIs(t, s.DeleteHabit(ctx, habitID, userID), errorvalues.ErrWrongOwner)
	})
	t.Run("habit not found", func(t *testing.T) {
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(nil, errorvalues.ErrHabitNotFound)
		assert.ErrorIs(t, s.DeleteHabit(ctx, habitID, userID), errorvalues.ErrHabitNotFound)
	})
}
