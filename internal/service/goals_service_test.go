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

func newGoalsService(t *testing.T) (*service.GoalsService, *mocks.MockGoalsRepositoryI, *mocks.MockHabitsRepositoryI, *mocks.MockHabitChecksRepositoryI) {
	ctrl := gomock.NewController(t)
	goalsRepo := mocks.NewMockGoalsRepositoryI(ctrl)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	checksRepo := mocks.NewMockHabitChecksRepositoryI(ctrl)
	return service.NewGoalsService(goalsRepo, habitsRepo, checksRepo), goalsRepo, habitsRepo, checksRepo
}

func TestSyncGoalsForHabit(t *testing.T) {
	t.Parallel()
	now := day(2025, time.March, 12)
	habitID := uuid.New()
	habit := &entity.Habit{
		ID:            habitID,
		UserID:        uuid.New(),
		Title:         "test_habit",
		FrequencyType: entity.FrequencyDaily,
		Streak:        4,
	}
	ctx := context.Background()

	t.Run("streak goal mirrors the habit streak", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goal := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalStreak,
			TargetValue:   7,
			CurrentValue:  3,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{goal}, nil)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), goal.ID, 4, entity.GoalActive, nil).Return(nil)
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("count goal completes exactly at its target", func(t *testing.T) {
		serv, goalsRepo, _, checksRepo := newGoalsService(t)
		goal := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalTotalCount,
			TargetValue:   5,
			CurrentValue:  4,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{goal}, nil)
		checksRepo.EXPECT().CountByHabitID(gomock.Any(), habitID).Return(5, nil)
		goalsRepo.EXPECT().
			UpdateProgress(gomock.Any(), goal.ID, 5, entity.GoalCompleted, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, _ entity.GoalStatus, completedAt *time.Time) error {
				assert.NotNil(t, completedAt)
				assert.Equal(t, now, *completedAt)
				return nil
			})
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("deadline goal reached after its deadline fails", func(t *testing.T) {
		serv, goalsRepo, _, checksRepo := newGoalsService(t)
		deadline := day(2025, time.March, 11)
		goal := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalDeadlineCount,
			TargetValue:   5,
			CurrentValue:  4,
			LinkedHabitID: habitID,
			Deadline:      &deadline,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{goal}, nil)
		checksRepo.EXPECT().CountByHabitID(gomock.Any(), habitID).Return(5, nil)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), goal.ID, 5, entity.GoalFailed, nil).Return(nil)
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("deadline on the sync day still completes", func(t *testing.T) {
		serv, goalsRepo, _, checksRepo := newGoalsService(t)
		deadline := day(2025, time.March, 12)
		goal := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalDeadlineCount,
			TargetValue:   5,
			CurrentValue:  4,
			LinkedHabitID: habitID,
			Deadline:      &deadline,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{goal}, nil)
		checksRepo.EXPECT().CountByHabitID(gomock.Any(), habitID).Return(5, nil)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), goal.ID, 5, entity.GoalCompleted, gomock.Any()).Return(nil)
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("unchanged goal is not written", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goal := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalStreak,
			TargetValue:   7,
			CurrentValue:  4,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{goal}, nil)
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("ledger counted once for several count goals", func(t *testing.T) {
		serv, goalsRepo, _, checksRepo := newGoalsService(t)
		first := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalTotalCount,
			TargetValue:   20,
			CurrentValue:  5,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		second := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalTotalCount,
			TargetValue:   10,
			CurrentValue:  5,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{first, second}, nil)
		checksRepo.EXPECT().CountByHabitID(gomock.Any(), habitID).Return(6, nil).Times(1)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), first.ID, 6, entity.GoalActive, nil).Return(nil)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), second.ID, 6, entity.GoalActive, nil).Return(nil)
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("no active goals is a no-op", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{}, nil)
		assert.NoError(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})

	t.Run("one failing write does not stop the others", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		first := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalStreak,
			TargetValue:   10,
			CurrentValue:  3,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		second := &entity.Goal{
			ID:            uuid.New(),
			Type:          entity.GoalStreak,
			TargetValue:   20,
			CurrentValue:  3,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{first, second}, nil)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), first.ID, 4, entity.GoalActive, nil).Return(errors.New("db error"))
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), second.ID, 4, entity.GoalActive, nil).Return(nil)
		assert.Error(t, serv.SyncGoalsForHabit(ctx, habit, now))
	})
}

func TestCreateGoal(t *testing.T) {
	t.Parallel()
	now := day(2025, time.March, 12)
	userID := uuid.New()
	habitID := uuid.New()
	goalID := uuid.New()
	habit := &entity.Habit{
		ID:            habitID,
		UserID:        userID,
		Title:         "test_habit",
		FrequencyType: entity.FrequencyDaily,
		Streak:        2,
	}
	req := &service.CreateGoalRequest{
		Title:         "reach a week",
		Type:          entity.GoalStreak,
		TargetValue:   7,
		LinkedHabitID: habitID,
	}
	ctx := context.Background()

	t.Run("success with immediate sync", func(t *testing.T) {
		serv, goalsRepo, habitsRepo, _ := newGoalsService(t)
		stored := &entity.Goal{
			ID:            goalID,
			UserID:        userID,
			Title:         req.Title,
			Type:          entity.GoalStreak,
			TargetValue:   7,
			CurrentValue:  2,
			LinkedHabitID: habitID,
			Status:        entity.GoalActive,
		}
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(habit, nil)
		goalsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(goalID, nil)
		goalsRepo.EXPECT().GetActiveByHabitID(gomock.Any(), habitID).Return([]*entity.Goal{
			{
				ID:            goalID,
				Type:          entity.GoalStreak,
				TargetValue:   7,
				CurrentValue:  0,
				LinkedHabitID: habitID,
				Status:        entity.GoalActive,
			},
		}, nil)
		goalsRepo.EXPECT().UpdateProgress(gomock.Any(), goalID, 2, entity.GoalActive, nil).Return(nil)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(stored, nil)
		goal, err := serv.CreateGoal(ctx, userID, req, now)
		assert.NoError(t, err)
		assert.Equal(t, stored, goal)
	})

	t.Run("error linked habit not found", func(t *testing.T) {
		serv, _, habitsRepo, _ := newGoalsService(t)
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(nil, errorvalues.ErrHabitNotFound)
		_, err := serv.CreateGoal(ctx, userID, req, now)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})

	t.Run("error linked habit owned by someone else", func(t *testing.T) {
		serv, _, habitsRepo, _ := newGoalsService(t)
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
			ID:     habitID,
			UserID: uuid.New(),
		}, nil)
		_, err := serv.CreateGoal(ctx, userID, req, now)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})

	t.Run("validation error: non-positive target", func(t *testing.T) {
		serv, _, _, _ := newGoalsService(t)
		_, err := serv.CreateGoal(ctx, userID, &service.CreateGoalRequest{
			Title:         "reach a week",
			Type:          entity.GoalStreak,
			TargetValue:   0,
			LinkedHabitID: habitID,
		}, now)
		assert.Error(t, err)
	})

	t.Run("validation error: unknown goal type", func(t *testing.T) {
		serv, _, _, _ := newGoalsService(t)
		_, err := serv.CreateGoal(ctx, userID, &service.CreateGoalRequest{
			Title:         "reach a week",
			Type:          "weekly_count",
			TargetValue:   7,
			LinkedHabitID: habitID,
		}, now)
		assert.Error(t, err)
	})

	t.Run("validation error: missing habit link", func(t *testing.T) {
		serv, _, _, _ := newGoalsService(t)
		_, err := serv.CreateGoal(ctx, userID, &service.CreateGoalRequest{
			Title:       "reach a week",
			Type:        entity.GoalStreak,
			TargetValue: 7,
		}, now)
		assert.Error(t, err)
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	goalID := uuid.New()
	req := &service.UpdateGoalRequest{
		Title:       "renamed_goal",
		Description: "new description",
		TargetValue: 10,
	}
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(&entity.Goal{
			ID:          goalID,
			UserID:      userID,
			Title:       "old_goal",
			TargetValue: 5,
			Status:      entity.GoalActive,
		}, nil)
		goalsRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		goal, err := serv.UpdateGoal(ctx, goalID, userID, req)
		assert.NoError(t, err)
		assert.Equal(t, req.Title, goal.Title)
		assert.Equal(t, req.TargetValue, goal.TargetValue)
	})
	t.Run("wrong owner", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(&entity.Goal{
			ID:     goalID,
			UserID: uuid.New(),
		}, nil)
		_, err := serv.UpdateGoal(ctx, goalID, userID, req)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("goal not found", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(nil, errorvalues.ErrGoalNotFound)
		_, err := serv.UpdateGoal(ctx, goalID, userID, req)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotFound)
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	goalID := uuid.New()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(&entity.Goal{
			ID:     goalID,
			UserID: userID,
		}, nil)
		goalsRepo.EXPECT().Delete(gomock.Any(), goalID).Return(nil)
		assert.NoError(t, serv.DeleteGoal(ctx, goalID, userID))
	})
	t.Run("wrong owner", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(&entity.Goal{
			ID:     goalID,
			UserID: uuid.New(),
		}, nil)
		assert.ErrorIs(t, serv.DeleteGoal(ctx, goalID, userID), errorvalues.ErrWrongOwner)
	})
	t.Run("goal not found", func(t *testing.T) {
		serv, goalsRepo, _, _ := newGoalsService(t)
		goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(nil, errorvalues.ErrGoalNotFound)
		assert.ErrorIs(t, serv.DeleteGoal(ctx, goalID, userID), errorvalues.ErrGoalNotFound)
	})
}
