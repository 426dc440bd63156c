package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/error_values"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/repository"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/schedule"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

type GoalsService struct {
	goalsRepo  repository.GoalsRepositoryI
	habitsRepo repository.HabitsRepositoryI
	checksRepo repository.HabitChecksRepositoryI
}

func NewGoalsService(goalsRepo repository.GoalsRepositoryI, habitsRepo repository.HabitsRepositoryI, checksRepo repository.HabitChecksRepositoryI) *GoalsService {
	if goalsRepo == nil || habitsRepo == nil || checksRepo == nil {
		log.Fatal("on goals service provided nil repos")
	}
	return &GoalsService{
		goalsRepo:  goalsRepo,
		habitsRepo: habitsRepo,
		checksRepo: checksRepo,
	}
}

// CreateGoal validates the link to an owned habit, stores the goal and runs
// one immediate synchronization. A goal created against an already qualifying
// habit is returned completed
func (gs *GoalsService) CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest, now time.Time) (*entity.Goal, error) {
	if err := validateGoalRequest(req); err != nil {
		return nil, err
	}
	habit, err := gs.habitsRepo.GetByID(ctx, req.LinkedHabitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	id, err := gs.goalsRepo.Create(ctx, &entity.Goal{
		UserID:        uid,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		TargetValue:   req.TargetValue,
		LinkedHabitID: req.LinkedHabitID,
		Deadline:      req.Deadline,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if err = gs.SyncGoalsForHabit(ctx, habit, now); err != nil {
		return nil, errors.New("initial goal sync error: " + err.Error())
	}
	goal, err := gs.goalsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goal, nil
}

// SyncGoalsForHabit recomputes progress of every active goal linked to the
// habit. Streak goals mirror the habit's streak, count goals recount the
// ledger. Only goals whose value or status actually changed are written,
// so re-running the sync without an underlying change is a no-op.
// Paused, completed and failed goals are outside the active fetch and are
// never touched
func (gs *GoalsService) SyncGoalsForHabit(ctx context.Context, habit *entity.Habit, now time.Time) error {
	goals, err := gs.goalsRepo.GetActiveByHabitID(ctx, habit.ID)
	if err != nil {
		return errors.New("goals repository error: " + err.Error())
	}
	var totalChecks int
	counted := false
	var syncErrs error
	for _, goal := range goals {
		current := goal.CurrentValue
		switch goal.Type {
		case entity.GoalStreak:
			current = habit.Streak
		case entity.GoalTotalCount, entity.GoalDeadlineCount:
			if !counted {
				totalChecks, err = gs.checksRepo.CountByHabitID(ctx, habit.ID)
				if err != nil {
					return errors.New("checks repository error: " + err.Error())
				}
				counted = true
			}
			current = totalChecks
		}
		status := goal.Status
		completedAt := goal.CompletedAt
		if current >= goal.TargetValue {
			if goal.Deadline != nil && schedule.DayOf(now).After(schedule.DayOf(*goal.Deadline)) {
				status = entity.GoalFailed
			} else {
				status = entity.GoalCompleted
				at := now
				completedAt = &at
			}
		}
		if current == goal.CurrentValue && status == goal.Status {
			continue
		}
		if err = gs.goalsRepo.UpdateProgress(ctx, goal.ID, current, status, completedAt); err != nil {
			syncErrs = errors.Join(syncErrs, errors.New("syncing goal "+goal.ID.String()+" error: "+err.Error()))
		}
	}
	return syncErrs
}

func (gs *GoalsService) GetUserGoals(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Goal, error) {
	goals, err := gs.goalsRepo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goals, nil
}

func (gs *GoalsService) UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, req *UpdateGoalRequest) (*entity.Goal, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	goal, err := gs.goalsRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	goal.Title = req.Title
	goal.Description = req.Description
	goal.TargetValue = req.TargetValue
	if err = gs.goalsRepo.Update(ctx, goal); err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goal, nil
}

func (gs *GoalsService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	goal, err := gs.goalsRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = gs.goalsRepo.Delete(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	return nil
}

func validateGoalRequest(req *CreateGoalRequest) error {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	if req.LinkedHabitID == (uuid.UUID{}) {
		return errors.New("validation error: goal must be linked to a habit")
	}
	return nil
}
