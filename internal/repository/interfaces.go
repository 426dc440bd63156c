package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/repository_mocks.go -package=mocks

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type HabitsRepositoryI interface {
	// Creates new habit in database. Only Title, UserID and frequency fields are necessary
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error)
	// Updates title and frequency of habit by ID
	Update(ctx context.Context, habit *entity.Habit) error
	// Persists derived streak state. The only write path for streak and last_completed_date
	UpdateStreak(ctx context.Context, id uuid.UUID, streak int, lastCompleted *time.Time) error
	// Deletes habit with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Counts habits owned by user
	CountByUserID(ctx context.Context, uid uuid.UUID) (int, error)
	// Provides top streak per user ordered descending, for the leaderboard
	TopStreaks(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type HabitChecksRepositoryI interface {
	// Creates new check on habit with habitID
	Create(ctx context.Context, userID, habitID uuid.UUID, date time.Time) error
	// Deletes check on habit with habitID (uncheck)
	Delete(ctx context.Context, habitID uuid.UUID, date time.Time) error
	// Deletes every check of a habit. Cascade cleanup on habit deletion
	DeleteByHabitID(ctx context.Context, habitID uuid.UUID) error
	// Inspects if completed check exists
	Exists(ctx context.Context, habitID uuid.UUID, date time.Time) (bool, error)
	// Provides checks of habitID for a period
	GetByHabitAndDateRange(ctx context.Context, habitID uuid.UUID, from, to time.Time) ([]entity.HabitCheck, error)
	// Returns date of last check on habitID
	GetLastCheckDate(ctx context.Context, habitID uuid.UUID) (*time.Time, error)
	// Returns count of completed checks for habitID
	CountByHabitID(ctx context.Context, habitID uuid.UUID) (int, error)
	// Aggregates user's completed checks per calendar day, for the heatmap
	CountPerDay(ctx context.Context, userID uuid.UUID) ([]entity.HeatmapCell, error)
}

type GoalsRepositoryI interface {
	// Creates new goal in database, returns its id
	Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error)
	// Searches goal with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists goals owned by user with uid
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Goal, error)
	// Lists active goals linked to habit, synchronization scope
	GetActiveByHabitID(ctx context.Context, habitID uuid.UUID) ([]*entity.Goal, error)
	// Updates title, description and target of goal by ID
	Update(ctx context.Context, goal *entity.Goal) error
	// Persists derived progress state. The only write path for current_value, status and completed_at
	UpdateProgress(ctx context.Context, id uuid.UUID, currentValue int, status entity.GoalStatus, completedAt *time.Time) error
	// Deletes goal with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
