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

type HabitsService struct {
	repo       repository.HabitsRepositoryI
	checksRepo repository.HabitChecksRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, checksRepo repository.HabitChecksRepositoryI) *HabitsService {
	if habitsRepo == nil || checksRepo == nil {
		log.Fatal("on habits service provided nil repos")
	}
	return &HabitsService{
		repo:       habitsRepo,
		checksRepo: checksRepo,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	if err := validateHabitRequest(req); err != nil {
		return nil, err
	}
	h := entity.Habit{
		UserID:        uid,
		Title:         req.Title,
		FrequencyType: req.FrequencyType,
		FrequencyData: req.FrequencyData,
	}
	id, err := hs.repo.Create(ctx, &h)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		case errors.Is(err, errorvalues.ErrUserHasHabit):
			return nil, errorvalues.ErrUserHasHabit
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

// GetUserHabits is the read path of the streak state machine: any habit whose
// last completion predates its most recent due date has its streak lazily
// reset here before the list is returned
func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID, today time.Time, pagination PaginationOpts) ([]*entity.HabitWithStatus, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	today = schedule.DayOf(today)
	result := make([]*entity.HabitWithStatus, 0, len(habits))
	for _, habit := range habits {
		if habit.Streak > 0 && streakExpired(habit, today) {
			habit.Streak = 0
			if err = hs.repo.UpdateStreak(ctx, habit.ID, 0, habit.LastCompletedDate); err != nil {
				return nil, errors.New("resetting stale streak error: " + err.Error())
			}
		}
		completed, err := hs.checksRepo.Exists(ctx, habit.ID, today)
		if err != nil {
			return nil, errors.New("checks repository error: " + err.Error())
		}
		result = append(result, &entity.HabitWithStatus{
			Habit:          habit,
			CompletedToday: completed,
			IsDueToday:     schedule.IsDue(habit, today),
		})
	}
	return result, nil
}

// streakExpired reports whether a positive streak went stale: the habit was
// due since the last completion and nothing was checked
func streakExpired(habit *entity.Habit, today time.Time) bool {
	if habit.LastCompletedDate == nil {
		return true
	}
	prevDue := schedule.PreviousDueDate(habit, today)
	return schedule.DayOf(*habit.LastCompletedDate).Before(prevDue)
}

func (hs *HabitsService) UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	if err := validateHabitRequest(req); err != nil {
		return nil, err
	}
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	habit.Title = req.Title
	habit.FrequencyType = req.FrequencyType
	habit.FrequencyData = req.FrequencyData
	err = hs.repo.Update(ctx, habit)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

// DeleteHabit removes the habit together with its whole check ledger.
// Goals linked to the habit are deliberately left alone
func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	if err = hs.checksRepo.DeleteByHabitID(ctx, habitID); err != nil {
		return errors.New("checks repository error: " + err.Error())
	}
	err = hs.repo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return habit, nil
}

func validateHabitRequest(req *CreateHabitRequest) error {
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
	return validateFrequency(req.FrequencyType, req.FrequencyData)
}
