package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mocks.go -package=mocks

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Title         string               `validate:"required,min=1,max=200"`
	FrequencyType entity.FrequencyType `validate:"required,oneof=daily weekly custom"`
	FrequencyData []int
}

type CreateGoalRequest struct {
	Title         string          `validate:"required,min=1,max=200"`
	Description   string          `validate:"max=1000"`
	Type          entity.GoalType `validate:"required,oneof=streak total_count deadline_count"`
	TargetValue   int             `validate:"required,gt=0"`
	LinkedHabitID uuid.UUID       `validate:"required"`
	Deadline      *time.Time
}

type UpdateGoalRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=1000"`
	TargetValue int    `validate:"required,gt=0"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	// Lists habits with completedToday/isDueToday flags for the given day.
	// Repairs stale streaks before returning
	GetUserHabits(ctx context.Context, uid uuid.UUID, today time.Time, pagination PaginationOpts) ([]*entity.HabitWithStatus, error)
	UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	// Deletes habit and every check in its ledger. Linked goals stay untouched
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error
}

type HabitChecksServiceI interface {
	// Flips the completion state of a habit for the given day and maintains
	// its streak. Returns the resulting checked state and the updated habit
	ToggleHabit(ctx context.Context, habitID, userID uuid.UUID, today time.Time) (bool, *entity.Habit, error)
	GetHabitChecks(ctx context.Context, habitID, userID uuid.UUID, from, to time.Time) ([]entity.HabitCheck, error)
}

// GoalSyncI is the part of the goals service the toggle path depends on
type GoalSyncI interface {
	SyncGoalsForHabit(ctx context.Context, habit *entity.Habit, now time.Time) error
}

type GoalsServiceI interface {
	GoalSyncI
	CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest, now time.Time) (*entity.Goal, error)
	GetUserGoals(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Goal, error)
	UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, req *UpdateGoalRequest) (*entity.Goal, error)
	DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error
}

type StatsServiceI interface {
	Heatmap(ctx context.Context, uid uuid.UUID) ([]entity.HeatmapCell, error)
	Leaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error)
}
