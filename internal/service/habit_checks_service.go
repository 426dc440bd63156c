package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/error_values"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/repository"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/schedule"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

type HabitChecksService struct {
	habitsRepo repository.HabitsRepositoryI
	checksRepo repository.HabitChecksRepositoryI
	goalsSync  GoalSyncI
	locks      *habitLocks
}

func NewHabitChecksService(habitsRepo repository.HabitsRepositoryI, checksRepo repository.HabitChecksRepositoryI, goalsSync GoalSyncI) *HabitChecksService {
	if habitsRepo == nil || checksRepo == nil || goalsSync == nil {
		log.Fatal("on habit checks service provided nil dependencies")
	}
	return &HabitChecksService{
		habitsRepo: habitsRepo,
		checksRepo: checksRepo,
		goalsSync:  goalsSync,
		locks:      newHabitLocks(),
	}
}

// ToggleHabit flips the completion state of a habit for the given day.
// The ledger mutation and the streak update run under a per-habit lock so
// concurrent toggles cannot leave the streak inconsistent with the ledger.
// Goal synchronization runs after the toggle and its failure never rolls
// the toggle back
func (serv *HabitChecksService) ToggleHabit(ctx context.Context, habitID, userID uuid.UUID, today time.Time) (bool, *entity.Habit, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return false, nil, err
		}
		return false, nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return false, nil, errorvalues.ErrWrongOwner
	}
	today = schedule.DayOf(today)

	unlock := serv.locks.Lock(habitID)
	defer unlock()

	// The pre-lock read only proves ownership. Streak and last completed
	// date must come from a read inside the lock, or a concurrent toggle's
	// recount lands between our read and our write
	habit, err = serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return false, nil, err
		}
		return false, nil, errors.New("repository error: " + err.Error())
	}

	exists, err := serv.checksRepo.Exists(ctx, habitID, today)
	if err != nil {
		return false, nil, errors.New("repository error: " + err.Error())
	}
	var checked bool
	if exists {
		checked = false
		if err = serv.uncheck(ctx, habit, today); err != nil {
			return false, nil, err
		}
	} else {
		checked = true
		if err = serv.check(ctx, habit, today); err != nil {
			return false, nil, err
		}
	}
	if err = serv.goalsSync.SyncGoalsForHabit(ctx, habit, today); err != nil {
		slog.Error("goal sync after toggle failed",
			slog.String("habit_id", habitID.String()),
			slog.String("error", err.Error()))
	}
	return checked, habit, nil
}

// check appends the day's record and advances the streak: the streak grows
// when the previous due date was completed, otherwise it restarts at 1
func (serv *HabitChecksService) check(ctx context.Context, habit *entity.Habit, today time.Time) error {
	err := serv.checksRepo.Create(ctx, habit.UserID, habit.ID, today)
	if err != nil {
		// A concurrent request already checked the day, nothing to recount
		if errors.Is(err, errorvalues.ErrCheckExist) {
			return nil
		}
		return errors.New("repository error: " + err.Error())
	}
	prev := schedule.PreviousDueDate(habit, today)
	completedPrev, err := serv.checksRepo.Exists(ctx, habit.ID, prev)
	if err != nil {
		return errors.New("repository error: " + err.Error())
	}
	if completedPrev {
		habit.Streak++
	} else {
		habit.Streak = 1
	}
	habit.LastCompletedDate = &today
	if err = serv.habitsRepo.UpdateStreak(ctx, habit.ID, habit.Streak, habit.LastCompletedDate); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

// uncheck removes the day's record and re-derives the streak from the ledger
func (serv *HabitChecksService) uncheck(ctx context.Context, habit *entity.Habit, today time.Time) error {
	err := serv.checksRepo.Delete(ctx, habit.ID, today)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCheckNotFound) {
			return nil
		}
		return errors.New("repository error: " + err.Error())
	}
	streak, err := serv.recomputeStreak(ctx, habit, today)
	if err != nil {
		return err
	}
	habit.Streak = streak
	last, err := serv.checksRepo.GetLastCheckDate(ctx, habit.ID)
	if err != nil {
		return errors.New("repository error: " + err.Error())
	}
	habit.LastCompletedDate = last
	if err = serv.habitsRepo.UpdateStreak(ctx, habit.ID, habit.Streak, habit.LastCompletedDate); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

// recomputeStreak walks backward through consecutive due dates, counting
// while each one has a completion record. The walk stops at the first gap
func (serv *HabitChecksService) recomputeStreak(ctx context.Context, habit *entity.Habit, today time.Time) (int, error) {
	streak := 0
	cursor := schedule.PreviousDueDate(habit, today)
	for {
		exists, err := serv.checksRepo.Exists(ctx, habit.ID, cursor)
		if err != nil {
			return 0, errors.New("repository error: " + err.Error())
		}
		if !exists {
			return streak, nil
		}
		streak++
		cursor = schedule.PreviousDueDate(habit, cursor)
	}
}

func (serv *HabitChecksService) GetHabitChecks(ctx context.Context, habitID, userID uuid.UUID, from, to time.Time) ([]entity.HabitCheck, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	checks, err := serv.checksRepo.GetByHabitAndDateRange(ctx, habitID, schedule.DayOf(from), schedule.DayOf(to))
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return checks, nil
}
